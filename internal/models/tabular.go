package models

import (
	"fmt"
	"strings"
	"time"
)

// Cell is a single untyped value read from a tabular source. It holds either
// a string or, for spreadsheet cells encoded as dates, a native time.Time.
type Cell struct {
	Text string
	Time time.Time
	// IsTime marks a native date cell; Text then holds its ISO rendering.
	IsTime bool
}

// TextCell builds a string cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// TimeCell builds a native date cell.
func TimeCell(t time.Time) Cell {
	return Cell{Text: t.Format("2006-01-02"), Time: t, IsTime: true}
}

// String returns the textual value of the cell.
func (c Cell) String() string { return c.Text }

// Trimmed returns the cell text without surrounding whitespace.
func (c Cell) Trimmed() string { return strings.TrimSpace(c.Text) }

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool { return !c.IsTime && c.Trimmed() == "" }

// RawRow is one row of a tabular source, positioned by column index, with no
// header association.
type RawRow []Cell

// RowFromStrings builds a RawRow of string cells.
func RowFromStrings(values ...string) RawRow {
	row := make(RawRow, len(values))
	for i, v := range values {
		row[i] = TextCell(v)
	}
	return row
}

// IsBlank reports whether every cell of the row is blank.
func (r RawRow) IsBlank() bool {
	for _, c := range r {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// Strings returns the text of each cell.
func (r RawRow) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text
	}
	return out
}

// Record maps header names to the cell values of one data row.
type Record map[string]Cell

// Get returns the cell for a header, or an empty cell when the header is not
// mapped or absent.
func (r Record) Get(header string) Cell {
	if header == "" {
		return Cell{}
	}
	return r[header]
}

// ColumnMapping assigns pipeline roles to header names. Empty means unmapped.
type ColumnMapping struct {
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Debit       string `json:"debit" yaml:"debit"`
	Credit      string `json:"credit" yaml:"credit"`
}

// HasAmountPath reports whether an amount can be resolved, either from a
// single signed column or from debit/credit columns.
func (m ColumnMapping) HasAmountPath() bool {
	return m.Amount != "" || m.Debit != "" || m.Credit != ""
}

// MissingRoles lists the roles that prevent normalization.
func (m ColumnMapping) MissingRoles() []string {
	var missing []string
	if m.Date == "" {
		missing = append(missing, "date")
	}
	if m.Description == "" {
		missing = append(missing, "description")
	}
	if !m.HasAmountPath() {
		missing = append(missing, "amount|debit|credit")
	}
	return missing
}

// IsComplete reports whether normalization may proceed with this mapping.
func (m ColumnMapping) IsComplete() bool {
	return len(m.MissingRoles()) == 0
}

func (m ColumnMapping) String() string {
	return fmt.Sprintf("date=%q description=%q amount=%q debit=%q credit=%q",
		m.Date, m.Description, m.Amount, m.Debit, m.Credit)
}
