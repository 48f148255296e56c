package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one canonical ledger entry. Amount is positive for inflows
// and negative for outflows. ID is the 0-based position of the source record
// in its ingestion batch and is never renumbered.
type Transaction struct {
	ID          int             `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
}

// OverrideKey is the key under which a category override for this
// transaction's description is stored.
func (t Transaction) OverrideKey() string {
	return OverrideKey(t.Description)
}

// OverrideKey normalizes a description into an override map key.
func OverrideKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// MonthKey returns the "YYYY-MM" month of the transaction date.
func (t Transaction) MonthKey() string {
	return t.Date.Format(MonthKeyLayout)
}

// IsInflow reports whether the amount is strictly positive.
func (t Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// IsOutflow reports whether the amount is strictly negative.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// CategoryOverrides maps lowercase descriptions to category names.
type CategoryOverrides map[string]string

// Lookup returns the override for a description, if any.
func (o CategoryOverrides) Lookup(description string) (string, bool) {
	if o == nil {
		return "", false
	}
	c, ok := o[OverrideKey(description)]
	return c, ok
}
