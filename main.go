package main

import (
	"fmt"
	"os"

	"fjacquet/spendlens/cmd/batch"
	"fjacquet/spendlens/cmd/budget"
	"fjacquet/spendlens/cmd/categories"
	"fjacquet/spendlens/cmd/categorize"
	"fjacquet/spendlens/cmd/datasets"
	"fjacquet/spendlens/cmd/ingest"
	"fjacquet/spendlens/cmd/report"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/config"
)

func init() {
	// SPENDLENS_* variables from .env feed the configuration
	config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(datasets.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
