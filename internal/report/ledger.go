// Package report exports the transaction ledger as CSV and renders analytics
// reports as text, JSON or YAML.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/gocarina/gocsv"
)

// LedgerRow is the CSV layout of one exported transaction.
type LedgerRow struct {
	ID          int    `csv:"ID"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// LedgerRows converts transactions to export rows. Amounts keep two decimals.
func LedgerRows(txs []models.Transaction) []LedgerRow {
	rows := make([]LedgerRow, len(txs))
	for i, tx := range txs {
		rows[i] = LedgerRow{
			ID:          tx.ID,
			Date:        dateutils.ToISODate(tx.Date),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category,
		}
	}
	return rows
}

// LedgerFormat controls the CSV dialect of an exported ledger.
type LedgerFormat struct {
	Delimiter      rune
	IncludeHeaders bool
}

// DefaultLedgerFormat is comma-delimited with a header line.
var DefaultLedgerFormat = LedgerFormat{Delimiter: ',', IncludeHeaders: true}

// WriteLedger writes txs as CSV in the given format.
func WriteLedger(w io.Writer, txs []models.Transaction, format LedgerFormat) error {
	if txs == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	csvWriter := csv.NewWriter(w)
	if format.Delimiter != 0 {
		csvWriter.Comma = format.Delimiter
	}
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	marshal := gocsv.MarshalCSV
	if !format.IncludeHeaders {
		marshal = gocsv.MarshalCSVWithoutHeaders
	}
	if err := marshal(LedgerRows(txs), safe); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteLedgerFile writes txs to path, creating parent directories.
func WriteLedgerFile(path string, txs []models.Transaction, format LedgerFormat, logger logging.Logger) error {
	logger = logging.OrDefault(logger)
	log := logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	)
	log.Info("Writing transactions to CSV file")

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- path supplied by the user
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteLedger(file, txs, format); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}

	log.Info("Successfully wrote transactions to CSV file")
	return nil
}
