// Package dateutils parses the date notations found in bank exports and
// provides calendar-month arithmetic on "YYYY-MM" month keys.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date layouts.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthKeyLayout     = "2006-01"
)

// CommonFormats lists the layouts ParseDate tries, in order. Slash dates are
// read month-first, as US exports write them; day-first slash dates are only
// accepted when the month-first reading is impossible.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	DateLayoutUS,
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"02/01/2006",
	"2/1/2006",
	DateLayoutEuropean,
	"2.1.2006",
	"02-01-2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"20060102",
}

var whitespace = regexp.MustCompile(`\s+`)

// Spreadsheet serial dates count days from 1899-12-30.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a date cell and returns the calendar date at UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("unable to parse date: empty value")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return TruncateToDate(t), nil
		}
	}

	if t, ok := parseSerial(clean); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// parseSerial accepts spreadsheet serial day numbers written as text, limited
// to the range 1950-2100 so plain amounts are not mistaken for dates.
func parseSerial(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 18264 || f > 73415 {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(f)), true
}

// TruncateToDate drops the time of day, keeping the calendar date as written.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthKey returns the "YYYY-MM" key of a date.
func MonthKey(date time.Time) string {
	return date.Format(MonthKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// AddMonths shifts a month key by n calendar months, rolling over years.
func AddMonths(key string, n int) (string, error) {
	start, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	return MonthKey(start.AddDate(0, n, 0)), nil
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// CompareDates compares the calendar dates of two times, ignoring the time of
// day: -1 if date1 is earlier, 0 if equal, 1 if later.
func CompareDates(date1, date2 time.Time) int {
	date1 = TruncateToDate(date1)
	date2 = TruncateToDate(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}
