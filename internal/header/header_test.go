package header

import (
	"testing"
	"time"

	"fjacquet/spendlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(values ...[]string) []models.RawRow {
	out := make([]models.RawRow, len(values))
	for i, v := range values {
		out[i] = models.RowFromStrings(v...)
	}
	return out
}

func TestScoreRow(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		want     Score
		accepted bool
	}{
		{
			name:     "plain header",
			row:      []string{"Date", "Description", "Amount"},
			want:     Score{NonEmpty: 3, Hits: 3},
			accepted: true,
		},
		{
			name:     "one blank column tolerated",
			row:      []string{"Posted Date", "", "Payee", "Debit", "Credit"},
			want:     Score{NonEmpty: 4, Hits: 4, Empties: 1},
			accepted: true,
		},
		{
			name:     "two synthetic columns rejected",
			row:      []string{"Date", "__EMPTY", "__EMPTY_1", "Amount"},
			want:     Score{NonEmpty: 4, Hits: 2, Empties: 2},
			accepted: false,
		},
		{
			name:     "too few values",
			row:      []string{"Date", "Amount"},
			want:     Score{NonEmpty: 2, Hits: 2},
			accepted: false,
		},
		{
			name:     "preamble line",
			row:      []string{"Account", "123-456", "Checking"},
			want:     Score{NonEmpty: 3},
			accepted: false,
		},
		{
			name:     "trailing blanks count as empties",
			row:      []string{"Date", "Memo", "Amount", "", ""},
			want:     Score{NonEmpty: 3, Hits: 3, Empties: 2},
			accepted: false,
		},
		{
			name:     "repeated names score once",
			row:      []string{"Date", "Date", "Memo"},
			want:     Score{NonEmpty: 2, Hits: 2},
			accepted: false,
		},
		{
			name:     "repeated synthetic names are each empty",
			row:      []string{"Date", "Payee", "Amount", "_", "_"},
			want:     Score{NonEmpty: 4, Hits: 3, Empties: 2},
			accepted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreRow(models.RowFromStrings(tt.row...))
			assert.Equal(t, tt.want, score)
			assert.Equal(t, tt.accepted, score.Accepted())
		})
	}
}

func TestLocate_SkipsPreamble(t *testing.T) {
	input := rows(
		[]string{"Big Bank Statement"},
		[]string{"Account", "****1234"},
		[]string{"Period", "2024-01-01", "2024-01-31"},
		[]string{"Date", "Description", "", "Amount"},
		[]string{"2024-01-02", "Coffee", "x", "-3.50", "overflow"},
		[]string{"", "", ""},
		[]string{"2024-01-03", "Salary"},
	)

	result, ok := Locate(input)
	require.True(t, ok)
	assert.Equal(t, 3, result.HeaderRow)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, result.Headers)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Len(t, first, 3)
	assert.Equal(t, "2024-01-02", first.Get("Date").Text)
	assert.Equal(t, "Coffee", first.Get("Description").Text)
	assert.Equal(t, "-3.50", first.Get("Amount").Text)

	short := result.Records[1]
	assert.Equal(t, "Salary", short.Get("Description").Text)
	assert.True(t, short.Get("Amount").IsBlank())
}

func TestLocate_ScanWindowIsBounded(t *testing.T) {
	input := make([]models.RawRow, 0, ScanWindow+2)
	for i := 0; i < ScanWindow; i++ {
		input = append(input, models.RowFromStrings("junk"))
	}
	input = append(input,
		models.RowFromStrings("Date", "Description", "Amount"),
		models.RowFromStrings("2024-01-02", "Coffee", "-3.50"),
	)

	_, ok := Locate(input)
	assert.False(t, ok)
}

func TestLocate_HeaderOnLastScannedRow(t *testing.T) {
	input := make([]models.RawRow, 0, ScanWindow+1)
	for i := 0; i < ScanWindow-1; i++ {
		input = append(input, models.RowFromStrings("junk"))
	}
	input = append(input,
		models.RowFromStrings("Date", "Description", "Amount"),
		models.RowFromStrings("2024-01-02", "Coffee", "-3.50"),
	)

	result, ok := Locate(input)
	require.True(t, ok)
	assert.Equal(t, ScanWindow-1, result.HeaderRow)
	assert.Len(t, result.Records, 1)
}

func TestLocate_Empty(t *testing.T) {
	_, ok := Locate(nil)
	assert.False(t, ok)
	assert.Equal(t, Result{}, FirstRow(nil))
}

func TestLocateOrFirst_Fallback(t *testing.T) {
	input := rows(
		[]string{"When", "What", "How much"},
		[]string{"2024-01-02", "Coffee", "-3.50"},
	)

	result, fallback := LocateOrFirst(input)
	assert.True(t, fallback)
	assert.Equal(t, 0, result.HeaderRow)
	assert.Equal(t, []string{"When", "What", "How much"}, result.Headers)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Coffee", result.Records[0].Get("What").Text)
}

func TestLocate_DuplicateHeaderKeepsFirst(t *testing.T) {
	input := rows(
		[]string{"Date", "Description", "Amount", "Amount"},
		[]string{"2024-01-02", "Coffee", "-3.50", "999"},
	)

	result, ok := Locate(input)
	require.True(t, ok)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, result.Headers)
	assert.Equal(t, "-3.50", result.Records[0].Get("Amount").Text)
}

func TestLocate_KeepsNativeDates(t *testing.T) {
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	input := []models.RawRow{
		models.RowFromStrings("Posted", "Memo", "Amount"),
		{models.TimeCell(day), models.TextCell("Rent"), models.TextCell("-1200")},
	}

	result, ok := Locate(input)
	require.True(t, ok)
	cell := result.Records[0].Get("Posted")
	assert.True(t, cell.IsTime)
	assert.Equal(t, day, cell.Time)
}

func TestLocate_Idempotent(t *testing.T) {
	input := rows(
		[]string{"Statement for John Doe"},
		[]string{"Transaction Date", "Merchant", "Debit", "Credit"},
		[]string{"01/02/2024", "Shell Oil", "45.00", ""},
		[]string{"01/03/2024", "Payroll", "", "2500.00"},
		[]string{"01/04/2024", "Netflix", "15.99", ""},
	)

	first, ok := Locate(input)
	require.True(t, ok)

	rewrapped := []models.RawRow{models.RowFromStrings(first.Headers...)}
	for _, record := range first.Records {
		row := make(models.RawRow, len(first.Headers))
		for i, h := range first.Headers {
			row[i] = record.Get(h)
		}
		rewrapped = append(rewrapped, row)
	}

	second, ok := Locate(rewrapped)
	require.True(t, ok)
	assert.Equal(t, 0, second.HeaderRow)
	assert.Equal(t, first.Headers, second.Headers)
	assert.Equal(t, first.Records, second.Records)

	_, found := Locate(rewrapped[1:])
	assert.False(t, found, "data rows must not qualify as a header")
}
