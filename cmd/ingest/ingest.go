// Package ingest handles the import of a single statement file
package ingest

import (
	"context"
	"fmt"
	"io"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/ingest"
	"fjacquet/spendlens/internal/report"

	"github.com/spf13/cobra"
)

// Options are the inputs of one ingest run.
type Options struct {
	Input        string
	Output       string
	Save         string
	ShowRejected bool
	Columns      common.ColumnFlags
}

var opts Options

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a bank statement file",
	Long: `Import a CSV, TSV or XLSX bank statement.

The header row is located automatically, even below a preamble of account
details. Date, description and amount columns are guessed from the header
names; use the --*-col flags when a guess is wrong. Every accepted row is
categorized by keyword, or by a saved override for its description.

Example:
  spendlens ingest -i statement.xlsx --save checking-2024
  spendlens ingest -i export.csv -o ledger.csv --amount-col Betrag`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.Input = root.SharedFlags.Input
		opts.Output = root.SharedFlags.Output
		return Run(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	opts.Columns.Register(Cmd)
	Cmd.Flags().StringVar(&opts.Save, "save", "", "Save the transactions as a dataset with this name")
	Cmd.Flags().BoolVar(&opts.ShowRejected, "show-rejected", false, "List every rejected row and the reason")
}

// Run ingests o.Input, then exports and saves the result as requested.
func Run(ctx context.Context, c *container.Container, out io.Writer, o Options) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	if o.Input == "" {
		return fmt.Errorf("an input file is required (-i)")
	}

	outcome, err := c.GetPipeline().IngestFile(ctx, o.Input, o.Columns.Mapping())
	if err != nil {
		return err
	}
	common.PrintOutcome(out, outcome, o.ShowRejected)

	if o.Output != "" {
		if err := report.WriteLedgerFile(o.Output, outcome.Transactions, common.LedgerFormat(c.GetConfig()), c.GetLogger()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Ledger written to %s\n", o.Output)
	}

	if o.Save != "" {
		if err := save(ctx, c, o.Save, outcome); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Saved dataset %q\n", o.Save)
	}
	return nil
}

func save(ctx context.Context, c *container.Container, name string, outcome *ingest.Outcome) error {
	store, err := c.GetDatasets()
	if err != nil {
		return err
	}
	_, err = store.Save(ctx, name, outcome.Transactions)
	return err
}
