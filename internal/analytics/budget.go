package analytics

import (
	"sort"

	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetLine compares spending in a budgeted category with its limit.
type BudgetLine struct {
	Category   string          `json:"category" yaml:"category"`
	Limit      decimal.Decimal `json:"limit" yaml:"limit"`
	Spent      decimal.Decimal `json:"spent" yaml:"spent"`
	Remaining  decimal.Decimal `json:"remaining" yaml:"remaining"`
	OverBudget bool            `json:"over_budget" yaml:"over_budget"`
}

// BudgetStatus reports one line per budgeted category, sorted by name.
// Categories without a budget are left out.
func BudgetStatus(breakdown []models.CategoryTotal, budgets models.Budgets) []BudgetLine {
	spent := make(map[string]decimal.Decimal, len(breakdown))
	for _, total := range breakdown {
		spent[total.Category] = spent[total.Category].Add(total.Amount)
	}

	lines := make([]BudgetLine, 0, len(budgets))
	for category, limit := range budgets {
		s := spent[category]
		remaining := limit.Sub(s)
		lines = append(lines, BudgetLine{
			Category:   category,
			Limit:      limit,
			Spent:      s,
			Remaining:  remaining,
			OverBudget: remaining.IsNegative(),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Category < lines[j].Category })
	return lines
}
