package analytics

import (
	"sort"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// ForecastWindow is the number of trailing months averaged.
	ForecastWindow = 3
	// ForecastHorizon is the number of months projected.
	ForecastHorizon = 3
	// MinForecastMonths is the history needed before anything is projected.
	MinForecastMonths = 2
)

// Forecast projects the months after the latest aggregate from the average of
// the trailing window. Values are rounded half away from zero to whole units.
// Fewer than MinForecastMonths aggregates yield no projection.
func Forecast(aggs []models.MonthlyAggregate) []models.ForecastPoint {
	if len(aggs) < MinForecastMonths {
		return []models.ForecastPoint{}
	}

	history := make([]models.MonthlyAggregate, len(aggs))
	copy(history, aggs)
	sort.Slice(history, func(i, j int) bool { return history[i].Month < history[j].Month })

	window := history
	if len(window) > ForecastWindow {
		window = window[len(window)-ForecastWindow:]
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, agg := range window {
		income = income.Add(agg.Income)
		expenses = expenses.Add(agg.Expenses)
	}
	n := decimal.NewFromInt(int64(len(window)))
	avgIncome := income.Div(n)
	avgExpenses := expenses.Div(n)

	latest := window[len(window)-1].Month
	points := make([]models.ForecastPoint, 0, ForecastHorizon)
	for i := 1; i <= ForecastHorizon; i++ {
		month, err := dateutils.AddMonths(latest, i)
		if err != nil {
			return []models.ForecastPoint{}
		}
		points = append(points, models.ForecastPoint{
			Month:        month,
			Income:       avgIncome.Round(0),
			Expenses:     avgExpenses.Round(0),
			Net:          avgIncome.Sub(avgExpenses).Round(0),
			IsProjection: true,
		})
	}
	return points
}
