// Package mapping infers which header holds each transaction field and lets
// the user override the guess before normalization.
package mapping

import (
	"strings"

	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parsererror"
)

// Role is a transaction field a column can feed.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
)

type roleKeywords struct {
	role     Role
	keywords []string
}

// roles in priority order
var roleTable = []roleKeywords{
	{RoleDate, []string{"date", "posted", "trans"}},
	{RoleDescription, []string{"desc", "memo", "narr", "merchant", "payee", "name", "detail"}},
	{RoleAmount, []string{"amount"}},
	{RoleDebit, []string{"debit", "withdrawal", "out"}},
	{RoleCredit, []string{"credit", "deposit", "in"}},
}

// Guess assigns roles to headers in column order. A header fills at most one
// role, the first unfilled one whose keywords it contains; a filled role is
// never overwritten. The result may be incomplete.
func Guess(headers []string) models.ColumnMapping {
	var m models.ColumnMapping
	for _, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))
		if lower == "" {
			continue
		}
		for _, rk := range roleTable {
			slot := field(&m, rk.role)
			if *slot != "" || !containsAny(lower, rk.keywords) {
				continue
			}
			*slot = header
			break
		}
	}
	return m
}

// Apply overlays the non-empty fields of override on guess. Every mapped name
// must be one of headers.
func Apply(guess, override models.ColumnMapping, headers []string) (models.ColumnMapping, error) {
	result := guess
	for _, rk := range roleTable {
		if v := strings.TrimSpace(*field(&override, rk.role)); v != "" {
			*field(&result, rk.role) = v
		}
	}

	known := make(map[string]bool, len(headers))
	for _, h := range headers {
		known[h] = true
	}
	var unknown []string
	for _, rk := range roleTable {
		if v := *field(&result, rk.role); v != "" && !known[v] {
			unknown = append(unknown, string(rk.role)+"="+v)
		}
	}
	if len(unknown) > 0 {
		return result, &parsererror.MappingError{Unknown: unknown}
	}
	return result, nil
}

// Validate rejects a mapping that cannot drive normalization.
func Validate(m models.ColumnMapping) error {
	if m.IsComplete() {
		return nil
	}
	return &parsererror.MappingError{Missing: m.MissingRoles()}
}

func field(m *models.ColumnMapping, role Role) *string {
	switch role {
	case RoleDate:
		return &m.Date
	case RoleDescription:
		return &m.Description
	case RoleAmount:
		return &m.Amount
	case RoleDebit:
		return &m.Debit
	default:
		return &m.Credit
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
