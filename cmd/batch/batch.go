// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/ingest"
	"fjacquet/spendlens/internal/report"
	"fjacquet/spendlens/internal/tabular"

	"github.com/spf13/cobra"
)

// Options are the inputs of one batch run.
type Options struct {
	InputDir     string
	OutputDir    string
	Files        []string
	Concurrency  int
	NoSave       bool
	ShowRejected bool
}

var opts Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Import many statement files at once",
	Long: `Import every statement file given as argument, or every supported file
found under the input directory. Files are processed concurrently and each is
saved as a dataset named after the file.

Example:
  spendlens batch -i statements/ -o ledgers/
  spendlens batch jan.csv feb.csv mar.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.InputDir = root.SharedFlags.Input
		opts.OutputDir = root.SharedFlags.Output
		opts.Files = args
		return Run(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	Cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "Files processed at once (default from config)")
	Cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not save the results as datasets")
	Cmd.Flags().BoolVar(&opts.ShowRejected, "show-rejected", false, "List every rejected row and the reason")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}

// Run ingests every selected file and saves or exports the results.
func Run(ctx context.Context, c *container.Container, out io.Writer, o Options) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	paths, err := inputFiles(o)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported files found (expected %v)", tabular.SupportedExtensions())
	}

	if o.OutputDir != "" {
		if err := fileutils.EnsureDirectoryExists(o.OutputDir); err != nil {
			return err
		}
	}

	limit := o.Concurrency
	if limit < 1 {
		limit = c.GetConfig().Batch.Concurrency
	}

	save, err := saveFunc(c, o)
	if err != nil {
		return err
	}

	logger := c.GetLogger()
	logger.Info(fmt.Sprintf("Batch processing %d files", len(paths)))

	outcomes, err := c.GetPipeline().Batch(ctx, paths, limit, save)
	if err != nil {
		return err
	}

	accepted, rejected := 0, 0
	for _, outcome := range outcomes {
		common.PrintOutcome(out, outcome, o.ShowRejected)
		accepted += outcome.Stats.Accepted
		rejected += outcome.Stats.Rejected
	}
	_, _ = fmt.Fprintf(out, "Processed %d files: %d transactions, %d rejected\n", len(outcomes), accepted, rejected)
	return nil
}

func inputFiles(o Options) ([]string, error) {
	if len(o.Files) > 0 {
		if o.InputDir != "" {
			return nil, fmt.Errorf("give either file arguments or an input directory, not both")
		}
		return o.Files, nil
	}
	if o.InputDir == "" {
		return nil, fmt.Errorf("an input directory (-i) or file arguments are required")
	}
	return fileutils.ListFilesWithExtensions(o.InputDir, tabular.SupportedExtensions()...)
}

func saveFunc(c *container.Container, o Options) (ingest.SaveFunc, error) {
	format := common.LedgerFormat(c.GetConfig())
	logger := c.GetLogger()

	if o.NoSave {
		if o.OutputDir == "" {
			return nil, nil
		}
		return func(ctx context.Context, name string, outcome *ingest.Outcome) error {
			return report.WriteLedgerFile(filepath.Join(o.OutputDir, name+".csv"), outcome.Transactions, format, logger)
		}, nil
	}

	store, err := c.GetDatasets()
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, name string, outcome *ingest.Outcome) error {
		if o.OutputDir != "" {
			if err := report.WriteLedgerFile(filepath.Join(o.OutputDir, name+".csv"), outcome.Transactions, format, logger); err != nil {
				return err
			}
		}
		_, err := store.Save(ctx, name, outcome.Transactions)
		return err
	}, nil
}
