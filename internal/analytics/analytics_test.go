package analytics

import (
	"testing"
	"time"

	"fjacquet/spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(id int, date, amount, category string) models.Transaction {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{ID: id, Date: day, Description: "t", Amount: d(amount), Category: category}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestMonthly(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "2024-02-03", "-20", models.CategoryDiningOut),
		tx(1, "2024-01-10", "1000", models.CategoryIncome),
		tx(2, "2024-01-15", "-300.50", models.CategoryHousing),
		tx(3, "2024-01-20", "-50", models.CategoryGroceries),
		tx(4, "2024-02-01", "0", models.CategoryOther),
	}

	aggs := Monthly(txs)
	require.Len(t, aggs, 2)

	assert.Equal(t, "2024-01", aggs[0].Month)
	assertDecimal(t, "1000", aggs[0].Income)
	assertDecimal(t, "350.50", aggs[0].Expenses)
	assertDecimal(t, "649.50", aggs[0].Net)

	assert.Equal(t, "2024-02", aggs[1].Month)
	assertDecimal(t, "0", aggs[1].Income)
	assertDecimal(t, "20", aggs[1].Expenses)
	assertDecimal(t, "-20", aggs[1].Net)
}

func TestMonthly_Empty(t *testing.T) {
	assert.Empty(t, Monthly(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "2024-01-01", "-40", models.CategoryGroceries),
		tx(1, "2024-01-02", "-60", models.CategoryGroceries),
		tx(2, "2024-01-03", "-100", models.CategoryDiningOut),
		tx(3, "2024-01-04", "-250", models.CategoryHousing),
		tx(4, "2024-01-05", "2000", models.CategoryIncome),
	}

	breakdown := CategoryBreakdown(txs)
	require.Len(t, breakdown, 3)
	assert.Equal(t, models.CategoryHousing, breakdown[0].Category)
	assertDecimal(t, "250", breakdown[0].Amount)
	// equal totals fall back to name order
	assert.Equal(t, models.CategoryDiningOut, breakdown[1].Category)
	assert.Equal(t, models.CategoryGroceries, breakdown[2].Category)
	assertDecimal(t, "100", breakdown[2].Amount)
}

func TestFilters(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "2023-12-31", "-1", models.CategoryOther),
		tx(1, "2024-01-01", "-2", models.CategoryOther),
		tx(2, "2024-01-31", "-3", models.CategoryOther),
		tx(3, "2024-02-01", "-4", models.CategoryOther),
	}

	january := FilterMonth(txs, "2024-01")
	require.Len(t, january, 2)
	assert.Equal(t, 1, january[0].ID)
	assert.Equal(t, 2, january[1].ID)
	assert.Empty(t, FilterMonth(txs, "2030-01"))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Len(t, FilterRange(txs, DateRange{Start: from, End: to}), 3)
	assert.Len(t, FilterRange(txs, DateRange{Start: from}), 3)
	assert.Len(t, FilterRange(txs, DateRange{End: from}), 2)
	assert.Len(t, FilterRange(txs, DateRange{}), 4)
}

func TestSpan(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "2024-03-05", "-1", models.CategoryOther),
		tx(1, "2024-01-09", "-1", models.CategoryOther),
		tx(2, "2024-02-20", "-1", models.CategoryOther),
	}
	span := Span(txs)
	assert.Equal(t, "2024-01-09_2024-03-05", span.String())
	assert.Equal(t, "", Span(nil).String())
}

func TestBudgetStatus(t *testing.T) {
	breakdown := []models.CategoryTotal{
		{Category: models.CategoryGroceries, Amount: d("420")},
		{Category: models.CategoryDiningOut, Amount: d("80")},
		{Category: models.CategoryTravel, Amount: d("900")},
	}
	budgets := models.Budgets{
		models.CategoryGroceries: d("400"),
		models.CategoryDiningOut: d("150"),
		models.CategoryHealth:    d("50"),
	}

	lines := BudgetStatus(breakdown, budgets)
	require.Len(t, lines, 3)

	assert.Equal(t, models.CategoryDiningOut, lines[0].Category)
	assertDecimal(t, "70", lines[0].Remaining)
	assert.False(t, lines[0].OverBudget)

	assert.Equal(t, models.CategoryGroceries, lines[1].Category)
	assertDecimal(t, "-20", lines[1].Remaining)
	assert.True(t, lines[1].OverBudget)

	assert.Equal(t, models.CategoryHealth, lines[2].Category)
	assertDecimal(t, "0", lines[2].Spent)
	assertDecimal(t, "50", lines[2].Remaining)
}

func agg(month, income, expenses string) models.MonthlyAggregate {
	return models.MonthlyAggregate{
		Month:    month,
		Income:   d(income),
		Expenses: d(expenses),
		Net:      d(income).Sub(d(expenses)),
	}
}

func TestForecast(t *testing.T) {
	aggs := []models.MonthlyAggregate{
		agg("2024-01", "1000", "500"),
		agg("2024-02", "1100", "600"),
		agg("2024-03", "900", "550"),
	}

	points := Forecast(aggs)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-04", points[0].Month)
	assert.Equal(t, "2024-05", points[1].Month)
	assert.Equal(t, "2024-06", points[2].Month)
	for _, p := range points {
		assertDecimal(t, "1000", p.Income)
		assertDecimal(t, "550", p.Expenses)
		assertDecimal(t, "450", p.Net)
		assert.True(t, p.IsProjection)
	}
}

func TestForecast_UsesTrailingWindow(t *testing.T) {
	aggs := []models.MonthlyAggregate{
		agg("2024-01", "99999", "99999"),
		agg("2024-02", "1000", "500"),
		agg("2024-03", "1100", "600"),
		agg("2024-04", "900", "550"),
	}

	points := Forecast(aggs)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-05", points[0].Month)
	assertDecimal(t, "1000", points[0].Income)
	assertDecimal(t, "450", points[0].Net)
}

func TestForecast_YearRollover(t *testing.T) {
	aggs := []models.MonthlyAggregate{
		agg("2024-11", "100", "40"),
		agg("2024-12", "101", "41"),
	}

	points := Forecast(aggs)
	require.Len(t, points, 3)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"},
		[]string{points[0].Month, points[1].Month, points[2].Month})
	// 100.5 and 40.5 round away from zero
	assertDecimal(t, "101", points[0].Income)
	assertDecimal(t, "41", points[0].Expenses)
	assertDecimal(t, "60", points[0].Net)
}

func TestForecast_NotEnoughHistory(t *testing.T) {
	assert.Empty(t, Forecast(nil))
	assert.Empty(t, Forecast([]models.MonthlyAggregate{agg("2024-01", "1", "1")}))
}

func TestForecast_FromTransactions(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "2024-05-01", "2000", models.CategoryIncome),
		tx(1, "2024-05-02", "-1500", models.CategoryHousing),
		tx(2, "2024-06-01", "2000", models.CategoryIncome),
		tx(3, "2024-06-02", "-1700", models.CategoryHousing),
	}

	points := Forecast(Monthly(txs))
	require.Len(t, points, 3)
	assert.Equal(t, "2024-07", points[0].Month)
	assertDecimal(t, "2000", points[0].Income)
	assertDecimal(t, "1600", points[0].Expenses)
	assertDecimal(t, "400", points[0].Net)
}
