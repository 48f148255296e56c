// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"sort"

	"fjacquet/spendlens/internal/analytics"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/datasets"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/ingest"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/report"

	"github.com/spf13/cobra"
)

// ColumnFlags holds the --*-col flags that override the guessed mapping.
type ColumnFlags struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
}

// Register adds the column flags to cmd.
func (f *ColumnFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Date, "date-col", "", "Header of the date column")
	cmd.Flags().StringVar(&f.Description, "desc-col", "", "Header of the description column")
	cmd.Flags().StringVar(&f.Amount, "amount-col", "", "Header of the signed amount column")
	cmd.Flags().StringVar(&f.Debit, "debit-col", "", "Header of the debit (money out) column")
	cmd.Flags().StringVar(&f.Credit, "credit-col", "", "Header of the credit (money in) column")
}

// Mapping returns the override mapping. Unset flags stay empty.
func (f ColumnFlags) Mapping() models.ColumnMapping {
	return models.ColumnMapping{
		Date:        f.Date,
		Description: f.Description,
		Amount:      f.Amount,
		Debit:       f.Debit,
		Credit:      f.Credit,
	}
}

// Source selects the transactions a command works on.
type Source struct {
	Dataset string // a saved dataset by name
	Input   string // a statement file ingested on the fly
}

// LoadTransactions resolves src to a label and its transactions. With neither
// field set it merges every saved dataset.
func LoadTransactions(ctx context.Context, c *container.Container, src Source) (string, []models.Transaction, error) {
	switch {
	case src.Dataset != "" && src.Input != "":
		return "", nil, fmt.Errorf("--dataset and --input cannot be combined")

	case src.Input != "":
		outcome, err := c.GetPipeline().IngestFile(ctx, src.Input, models.ColumnMapping{})
		if err != nil {
			return "", nil, err
		}
		return outcome.Source, outcome.Transactions, nil

	case src.Dataset != "":
		store, err := c.GetDatasets()
		if err != nil {
			return "", nil, err
		}
		ds, err := store.Load(ctx, src.Dataset)
		if err != nil {
			return "", nil, err
		}
		return ds.Name, ds.Transactions, nil
	}

	store, err := c.GetDatasets()
	if err != nil {
		return "", nil, err
	}
	var txs []models.Transaction
	for _, ds := range datasets.LoadAllOrEmpty(ctx, store, c.GetLogger()) {
		txs = append(txs, ds.Transactions...)
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	return "all datasets", txs, nil
}

// PeriodFlags restricts a command to a month or an inclusive month range.
type PeriodFlags struct {
	Month string
	From  string
	To    string
}

// Register adds the period flags to cmd.
func (f *PeriodFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Month, "month", "", "Only this month (YYYY-MM)")
	cmd.Flags().StringVar(&f.From, "from", "", "First month of the range (YYYY-MM)")
	cmd.Flags().StringVar(&f.To, "to", "", "Last month of the range (YYYY-MM)")
}

// Apply filters txs to the selected period and returns a label for it, empty
// when no period was selected.
func (f PeriodFlags) Apply(txs []models.Transaction) ([]models.Transaction, string, error) {
	if f.Month != "" {
		if f.From != "" || f.To != "" {
			return nil, "", fmt.Errorf("--month cannot be combined with --from/--to")
		}
		if _, err := dateutils.ParseMonthKey(f.Month); err != nil {
			return nil, "", err
		}
		return analytics.FilterMonth(txs, f.Month), f.Month, nil
	}
	if f.From == "" && f.To == "" {
		return txs, "", nil
	}

	var r analytics.DateRange
	if f.From != "" {
		start, err := dateutils.ParseMonthKey(f.From)
		if err != nil {
			return nil, "", err
		}
		r.Start = dateutils.StartOfMonth(start)
	}
	if f.To != "" {
		end, err := dateutils.ParseMonthKey(f.To)
		if err != nil {
			return nil, "", err
		}
		r.End = dateutils.EndOfMonth(end)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return nil, "", fmt.Errorf("--to %s is before --from %s", f.To, f.From)
	}
	return analytics.FilterRange(txs, r), f.From + ".." + f.To, nil
}

// PrintOutcome writes a one-file ingestion summary followed by its rejected
// records.
func PrintOutcome(w io.Writer, outcome *ingest.Outcome, showRejected bool) {
	origin := fmt.Sprintf("header row %d", outcome.HeaderRow+1)
	if outcome.HeaderFallback {
		origin = "no header row found, first row used"
	}
	_, _ = fmt.Fprintf(w, "%s: %d transactions, %d rejected (%s)\n",
		outcome.Source, outcome.Stats.Accepted, outcome.Stats.Rejected, origin)
	_, _ = fmt.Fprintf(w, "  mapping: %s\n", outcome.Mapping)

	if !showRejected {
		return
	}
	for _, r := range outcome.Rejected {
		_, _ = fmt.Fprintf(w, "  rejected: %s\n", r.Error())
	}
}

// LedgerFormat reads the csv section of the configuration.
func LedgerFormat(cfg *config.Config) report.LedgerFormat {
	if cfg == nil {
		return report.DefaultLedgerFormat
	}
	return report.LedgerFormat{
		Delimiter:      cfg.DelimiterRune(),
		IncludeHeaders: cfg.CSV.IncludeHeaders,
	}
}
