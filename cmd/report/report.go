// Package report renders analytics reports over saved datasets
package report

import (
	"context"
	"fmt"
	"io"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/report"

	"github.com/spf13/cobra"
)

// Options are the inputs of one report run.
type Options struct {
	Source common.Source
	Period common.PeriodFlags
	Format string
	Output string
}

var opts Options

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show monthly totals, category breakdown, budgets and forecast",
	Long: `Report on a saved dataset, a statement file, or by default every saved
dataset together.

The report lists income, expenses and net per month, the spending per
category, the status of each budget and a three-month forecast based on the
average of the last three months.

Example:
  spendlens report --dataset checking-2024 --month 2024-03
  spendlens report --from 2024-01 --to 2024-06 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.Source.Input = root.SharedFlags.Input
		opts.Output = root.SharedFlags.Output
		return Run(root.Context(cmd), root.GetContainer(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Source.Dataset, "dataset", "d", "", "Saved dataset to report on")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	opts.Period.Register(Cmd)
}

// Run builds the report and writes it to o.Output, or to out when unset.
func Run(ctx context.Context, c *container.Container, out io.Writer, o Options) error {
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	name, txs, err := common.LoadTransactions(ctx, c, o.Source)
	if err != nil {
		return err
	}
	txs, period, err := o.Period.Apply(txs)
	if err != nil {
		return err
	}

	r := report.Build(name, txs, c.LoadBudgets(ctx))
	if period != "" {
		r.Period = period
	}

	format := o.Format
	if format == "" {
		format = c.GetConfig().Report.Format
	}
	rendered, err := c.GetReportGenerator().Generate(r, format)
	if err != nil {
		return err
	}

	if o.Output == "" {
		_, err = out.Write(rendered)
		return err
	}
	if err := fileutils.WriteFile(o.Output, rendered, models.PermissionReportFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Report written to %s\n", o.Output)
	return nil
}
