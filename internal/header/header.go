// Package header finds the true header row of a statement export, skipping the
// bank name, account number and period lines many exports put first.
package header

import (
	"strings"

	"fjacquet/spendlens/internal/models"
)

// Detection thresholds, calibrated against real bank exports.
const (
	ScanWindow     = 15
	MinNonEmpty    = 3
	MinKeywordHits = 2
	MaxEmpties     = 1
)

// Keywords is the header vocabulary. A cell counts as a hit when its
// lower-cased text contains any of them.
var Keywords = []string{
	"date", "posted", "trans", "desc", "memo", "merchant", "payee",
	"amount", "debit", "credit", "withdrawal", "deposit", "detail", "narr",
}

// Result is a located header and the records projected under it.
type Result struct {
	Headers   []string
	Records   []models.Record
	HeaderRow int
}

// Score is the evaluation of one candidate row.
type Score struct {
	NonEmpty int
	Hits     int
	Empties  int
}

// Accepted reports whether the score qualifies the row as a header.
func (s Score) Accepted() bool {
	return s.NonEmpty >= MinNonEmpty && s.Hits >= MinKeywordHits && s.Empties <= MaxEmpties
}

// ScoreRow evaluates a candidate row. NonEmpty and Hits count distinct
// trimmed values, so a repeated name scores once. Empties counts every blank
// cell and every synthetic placeholder name such as "__EMPTY" or "_1".
func ScoreRow(row models.RawRow) Score {
	var s Score
	seen := make(map[string]bool, len(row))
	for _, cell := range row {
		text := cell.Trimmed()
		if text == "" || isSynthetic(text) {
			s.Empties++
		}
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		s.NonEmpty++
		if containsKeyword(strings.ToLower(text)) {
			s.Hits++
		}
	}
	return s
}

// Locate returns the first row within the scan window that qualifies as a
// header, with every later non-blank row projected onto it.
func Locate(rows []models.RawRow) (Result, bool) {
	limit := len(rows)
	if limit > ScanWindow {
		limit = ScanWindow
	}
	for i := 0; i < limit; i++ {
		if ScoreRow(rows[i]).Accepted() {
			return project(rows, i), true
		}
	}
	return Result{}, false
}

// FirstRow treats row 0 as the header unconditionally.
func FirstRow(rows []models.RawRow) Result {
	if len(rows) == 0 {
		return Result{}
	}
	return project(rows, 0)
}

// LocateOrFirst locates the header, falling back to the first row. The
// boolean reports whether the fallback was used.
func LocateOrFirst(rows []models.RawRow) (Result, bool) {
	if result, ok := Locate(rows); ok {
		return result, false
	}
	return FirstRow(rows), true
}

func project(rows []models.RawRow, headerRow int) Result {
	names := make([]string, len(rows[headerRow]))
	headers := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for i, cell := range rows[headerRow] {
		name := cell.Trimmed()
		if name == "" || seen[name] {
			// blank or repeated names drop the column
			continue
		}
		seen[name] = true
		names[i] = name
		headers = append(headers, name)
	}

	records := make([]models.Record, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		if row.IsBlank() {
			continue
		}
		record := make(models.Record, len(headers))
		for i, name := range names {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = models.TextCell("")
			}
		}
		records = append(records, record)
	}

	return Result{Headers: headers, Records: records, HeaderRow: headerRow}
}

func isSynthetic(text string) bool {
	return strings.HasPrefix(text, "_")
}

func containsKeyword(lower string) bool {
	for _, k := range Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
