package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"fjacquet/spendlens/internal/analytics"
	"fjacquet/spendlens/internal/currencyutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the analytics view over one set of transactions.
type Report struct {
	Dataset      string                    `json:"dataset" yaml:"dataset"`
	Period       string                    `json:"period,omitempty" yaml:"period,omitempty"`
	Transactions int                       `json:"transactions" yaml:"transactions"`
	Monthly      []models.MonthlyAggregate `json:"monthly" yaml:"monthly"`
	Breakdown    []models.CategoryTotal    `json:"breakdown" yaml:"breakdown"`
	Budgets      []analytics.BudgetLine    `json:"budgets,omitempty" yaml:"budgets,omitempty"`
	Forecast     []models.ForecastPoint    `json:"forecast" yaml:"forecast"`
}

// Build computes every section of the report. The forecast always uses the
// monthly history of txs; budgets compare against the breakdown.
func Build(dataset string, txs []models.Transaction, budgets models.Budgets) *Report {
	monthly := analytics.Monthly(txs)
	breakdown := analytics.CategoryBreakdown(txs)

	r := &Report{
		Dataset:      dataset,
		Period:       analytics.Span(txs).String(),
		Transactions: len(txs),
		Monthly:      monthly,
		Breakdown:    breakdown,
		Forecast:     analytics.Forecast(monthly),
	}
	if len(budgets) > 0 {
		r.Budgets = analytics.BudgetStatus(breakdown, budgets)
	}
	return r
}

// Generator renders reports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger)}
}

// Generate renders r in the given format.
func (g *Generator) Generate(r *Report, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return g.generateText(r)
	case FormatJSON:
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateText(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dataset: %s\n", r.Dataset)
	if r.Period != "" {
		fmt.Fprintf(&buf, "Period: %s\n", r.Period)
	}
	fmt.Fprintf(&buf, "Transactions: %d\n", r.Transactions)

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(&buf, "\nMonthly")
	fmt.Fprintln(w, "Month\tIncome\tExpenses\tNet\t")
	for _, m := range r.Monthly {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", m.Month, currencyutils.FormatAmount(m.Income, ""), currencyutils.FormatAmount(m.Expenses, ""), currencyutils.FormatAmount(m.Net, ""))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintln(&buf, "\nSpending by category")
	for _, c := range r.Breakdown {
		fmt.Fprintf(w, "%s\t%s\t\n", c.Category, currencyutils.FormatAmount(c.Amount, ""))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if len(r.Budgets) > 0 {
		fmt.Fprintln(&buf, "\nBudgets")
		fmt.Fprintln(w, "Category\tLimit\tSpent\tRemaining\t\t")
		for _, b := range r.Budgets {
			flag := ""
			if b.OverBudget {
				flag = "OVER"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", b.Category, currencyutils.FormatAmount(b.Limit, ""), currencyutils.FormatAmount(b.Spent, ""), currencyutils.FormatAmount(b.Remaining, ""), flag)
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(&buf, "\nForecast")
	if len(r.Forecast) == 0 {
		fmt.Fprintln(&buf, "  not enough history (need at least 2 months)")
		return buf.Bytes(), nil
	}
	fmt.Fprintln(w, "Month\tIncome\tExpenses\tNet\t")
	for _, p := range r.Forecast {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", p.Month, p.Income.String(), p.Expenses.String(), p.Net.String())
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
