// Package export writes ingested receipts to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"spendlens/internal/dateutils"
	"spendlens/internal/logging"
	"spendlens/internal/models"
)

// Row is the CSV shape of one exported receipt. Amounts are rendered
// with two decimal places; missing amounts stay blank rather than zero.
type Row struct {
	ID              string `csv:"id"`
	Source          string `csv:"source"`
	Date            string `csv:"date"`
	Merchant        string `csv:"merchant"`
	Amount          string `csv:"amount"`
	Tax             string `csv:"tax"`
	Tip             string `csv:"tip"`
	Subtotal        string `csv:"subtotal"`
	CardLastFour    string `csv:"card_last_four"`
	Category        string `csv:"category"`
	AutoCategorized bool   `csv:"auto_categorized"`
	Status          string `csv:"status"`
}

// Writer exports receipts with a configurable delimiter.
type Writer struct {
	Delimiter rune
	logger    logging.Logger
}

// NewWriter creates a CSV writer. A zero delimiter defaults to comma.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{Delimiter: delimiter, logger: logger}
}

// WriteFile writes the receipts to csvFile, creating parent directories
// as needed.
func (w *Writer) WriteFile(receipts []models.Receipt, csvFile string) error {
	if receipts == nil {
		return fmt.Errorf("cannot write nil receipts to CSV")
	}

	w.logger.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(receipts)},
	).Info("writing receipts to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("failed to close file")
		}
	}()

	rows := make([]Row, 0, len(receipts))
	for i := range receipts {
		rows = append(rows, rowFromReceipt(&receipts[i]))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}

func rowFromReceipt(r *models.Receipt) Row {
	row := Row{
		ID:              r.ID,
		Source:          r.Source,
		Merchant:        r.MerchantName,
		Amount:          amountString(r.Amount),
		Tax:             amountString(r.TaxAmount),
		Tip:             amountString(r.TipAmount),
		Subtotal:        amountString(r.Subtotal),
		CardLastFour:    r.CardLastFour,
		Category:        r.CategoryName,
		AutoCategorized: r.AutoCategorized,
		Status:          r.ProcessingStatus,
	}
	if r.TransactionDate != nil {
		row.Date = dateutils.ToISODate(*r.TransactionDate)
	}
	return row
}

func amountString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
