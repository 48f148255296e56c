// Package normalizer converts header-keyed records into canonical
// transactions: dates and amounts are parsed, debit/credit pairs folded into a
// signed amount, and every transaction categorized.
package normalizer

import (
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/currencyutils"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/mapping"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Rejection reasons.
const (
	ReasonMissingDate   = "missing date"
	ReasonInvalidDate   = "invalid date"
	ReasonInvalidAmount = "invalid amount"
	ReasonNoAmount      = "no amount"
)

// Rejection explains why a record produced no transaction.
type Rejection = parsererror.RowError

// Result is the outcome of one normalization run.
type Result struct {
	Transactions []models.Transaction
	Rejected     []Rejection
	Stats        models.IngestStats
}

// Normalizer is stateless apart from its immutable keyword index and may be
// shared between goroutines.
type Normalizer struct {
	index  *categorizer.KeywordIndex
	logger logging.Logger
}

// NewNormalizer creates a Normalizer. A nil index uses the default rules.
func NewNormalizer(index *categorizer.KeywordIndex, logger logging.Logger) *Normalizer {
	if index == nil {
		index = categorizer.NewKeywordIndex(categorizer.DefaultRules())
	}
	return &Normalizer{
		index:  index,
		logger: logging.OrDefault(logger),
	}
}

// Normalize converts records in order. Each transaction's ID is the 0-based
// position of its record, so IDs skip over rejected records. An incomplete
// mapping returns a *parsererror.MappingError and no result.
func (n *Normalizer) Normalize(records []models.Record, m models.ColumnMapping, overrides models.CategoryOverrides) (Result, error) {
	if err := mapping.Validate(m); err != nil {
		return Result{}, err
	}

	result := Result{
		Transactions: make([]models.Transaction, 0, len(records)),
		Stats:        models.IngestStats{Records: len(records)},
	}

	for i, record := range records {
		tx, rejection := n.convert(i, record, m)
		if rejection != nil {
			n.logger.Debug("Record rejected",
				logging.Field{Key: logging.FieldRow, Value: rejection.Row},
				logging.Field{Key: logging.FieldReason, Value: rejection.Reason},
			)
			result.Rejected = append(result.Rejected, *rejection)
			continue
		}

		if category, ok := overrides.Lookup(tx.Description); ok {
			tx.Category = category
			result.Stats.Overridden++
		} else {
			tx.Category = n.index.Classify(tx.Description)
		}
		if tx.Category == models.CategoryOther {
			result.Stats.Other++
		}
		result.Transactions = append(result.Transactions, tx)
	}

	result.Stats.Accepted = len(result.Transactions)
	result.Stats.Rejected = len(result.Rejected)
	return result, nil
}

func (n *Normalizer) convert(row int, record models.Record, m models.ColumnMapping) (models.Transaction, *Rejection) {
	tx := models.Transaction{ID: row}

	dateCell := record.Get(m.Date)
	switch {
	case dateCell.IsTime:
		tx.Date = dateutils.TruncateToDate(dateCell.Time)
	case dateCell.Trimmed() == "":
		return tx, &Rejection{Row: row, Field: m.Date, Reason: ReasonMissingDate}
	default:
		date, err := dateutils.ParseDate(dateCell.Trimmed())
		if err != nil {
			return tx, &Rejection{Row: row, Field: m.Date, Value: dateCell.Trimmed(), Reason: ReasonInvalidDate}
		}
		tx.Date = date
	}

	amount, rejection := resolveAmount(row, record, m)
	if rejection != nil {
		return tx, rejection
	}
	tx.Amount = amount

	tx.Description = record.Get(m.Description).Trimmed()
	if tx.Description == "" {
		tx.Description = models.UnknownDescription
	}
	return tx, nil
}

// resolveAmount prefers the signed amount column. Otherwise a positive credit
// is an inflow and anything else is the negated debit magnitude.
func resolveAmount(row int, record models.Record, m models.ColumnMapping) (decimal.Decimal, *Rejection) {
	if m.Amount != "" {
		cell := record.Get(m.Amount).Trimmed()
		amount, err := currencyutils.ParseAmount(cell)
		if err != nil {
			return decimal.Zero, &Rejection{Row: row, Field: m.Amount, Value: cell, Reason: ReasonInvalidAmount}
		}
		return amount, nil
	}

	debitText := record.Get(m.Debit).Trimmed()
	debit, err := currencyutils.ParseMagnitude(debitText)
	if err != nil {
		return decimal.Zero, &Rejection{Row: row, Field: m.Debit, Value: debitText, Reason: ReasonInvalidAmount}
	}
	creditText := record.Get(m.Credit).Trimmed()
	credit, err := currencyutils.ParseMagnitude(creditText)
	if err != nil {
		return decimal.Zero, &Rejection{Row: row, Field: m.Credit, Value: creditText, Reason: ReasonInvalidAmount}
	}

	switch {
	case credit.IsPositive():
		return credit, nil
	case debit.IsPositive():
		return debit.Neg(), nil
	default:
		return decimal.Zero, &Rejection{Row: row, Field: "debit|credit", Reason: ReasonNoAmount}
	}
}
