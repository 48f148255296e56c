package analytics

import (
	"fmt"
	"time"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"
)

// DateRange is an inclusive span of calendar dates. A zero Start or End leaves
// that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range as "YYYY-MM-DD_YYYY-MM-DD".
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Contains reports whether the calendar date of t falls within the range.
func (dr DateRange) Contains(t time.Time) bool {
	if !dr.Start.IsZero() && dateutils.CompareDates(t, dr.Start) < 0 {
		return false
	}
	if !dr.End.IsZero() && dateutils.CompareDates(t, dr.End) > 0 {
		return false
	}
	return true
}

// Merge combines this date range with another, returning the overall range.
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Span returns the range covered by the transactions.
func Span(txs []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range txs {
		dr = dr.Merge(DateRange{Start: tx.Date, End: tx.Date})
	}
	return dr
}
