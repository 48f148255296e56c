// Package analytics rolls transactions up into monthly aggregates, category
// breakdowns and budget status, and projects the next months.
package analytics

import (
	"sort"

	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// Monthly groups transactions by calendar month, ascending. Income sums the
// positive amounts and Expenses the magnitudes of the negative ones.
func Monthly(txs []models.Transaction) []models.MonthlyAggregate {
	byMonth := make(map[string]*models.MonthlyAggregate)
	for _, tx := range txs {
		key := tx.MonthKey()
		agg, ok := byMonth[key]
		if !ok {
			agg = &models.MonthlyAggregate{
				Month:    key,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			byMonth[key] = agg
		}
		switch {
		case tx.IsInflow():
			agg.Income = agg.Income.Add(tx.Amount)
		case tx.IsOutflow():
			agg.Expenses = agg.Expenses.Add(tx.Amount.Abs())
		}
	}

	out := make([]models.MonthlyAggregate, 0, len(byMonth))
	for _, agg := range byMonth {
		agg.Net = agg.Income.Sub(agg.Expenses)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryBreakdown sums expense magnitudes per category, largest first. Ties
// are ordered by category name. Inflows are ignored.
func CategoryBreakdown(txs []models.Transaction) []models.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsOutflow() {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount.Abs())
	}

	out := make([]models.CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, models.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// FilterMonth keeps the transactions of one "YYYY-MM" month.
func FilterMonth(txs []models.Transaction, month string) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if tx.MonthKey() == month {
			out = append(out, tx)
		}
	}
	return out
}

// FilterRange keeps transactions whose calendar date lies within r, bounds
// included. A zero bound is open.
func FilterRange(txs []models.Transaction, r DateRange) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
