package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spendlens/internal/apperror"
	"spendlens/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const receiptColumns = `r.id, r.source, r.sender, r.raw_text, r.merchant_name,
	r.amount, r.tax_amount, r.tip_amount, r.subtotal, r.transaction_date,
	r.line_items, r.card_last_four, r.category_id, r.auto_categorized,
	r.processing_status, r.processing_error, r.created_at`

// InsertReceipt stores a freshly ingested document and returns its
// generated id.
func (s *SQLiteStorage) InsertReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if receipt == nil {
		return fmt.Errorf("receipt cannot be nil")
	}

	if receipt.ID == "" {
		receipt.ID = uuid.NewString()
	}
	if receipt.ProcessingStatus == "" {
		receipt.ProcessingStatus = models.StatusPending
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	lineItems, err := json.Marshal(receipt.LineItems)
	if err != nil {
		return &apperror.StorageError{Op: "encode line items", Err: err}
	}
	if receipt.LineItems == nil {
		lineItems = []byte("[]")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO receipts (id, source, sender, raw_text, merchant_name,
			amount, tax_amount, tip_amount, subtotal, transaction_date,
			line_items, card_last_four, category_id, auto_categorized,
			processing_status, processing_error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.Source, receipt.Sender, receipt.RawText, receipt.MerchantName,
		decimalString(receipt.Amount), decimalString(receipt.TaxAmount),
		decimalString(receipt.TipAmount), decimalString(receipt.Subtotal),
		nullTime(receipt.TransactionDate),
		string(lineItems), receipt.CardLastFour, nullString(receipt.CategoryID),
		receipt.AutoCategorized, receipt.ProcessingStatus, receipt.ProcessingError,
		receipt.CreatedAt,
	)
	if err != nil {
		return &apperror.StorageError{Op: "insert receipt", Err: err}
	}

	return nil
}

// UpdateExtracted writes the extracted columns and processing status of
// an existing receipt.
func (s *SQLiteStorage) UpdateExtracted(ctx context.Context, receipt *models.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if receipt == nil || receipt.ID == "" {
		return fmt.Errorf("receipt id cannot be empty")
	}

	lineItems, err := json.Marshal(receipt.LineItems)
	if err != nil {
		return &apperror.StorageError{Op: "encode line items", Err: err}
	}
	if receipt.LineItems == nil {
		lineItems = []byte("[]")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE receipts SET
			sender = ?, merchant_name = ?, amount = ?, tax_amount = ?,
			tip_amount = ?, subtotal = ?, transaction_date = ?, line_items = ?,
			card_last_four = ?, processing_status = ?, processing_error = ?
		 WHERE id = ?`,
		receipt.Sender, receipt.MerchantName,
		decimalString(receipt.Amount), decimalString(receipt.TaxAmount),
		decimalString(receipt.TipAmount), decimalString(receipt.Subtotal),
		nullTime(receipt.TransactionDate), string(lineItems),
		receipt.CardLastFour, receipt.ProcessingStatus, receipt.ProcessingError,
		receipt.ID,
	)
	if err != nil {
		return &apperror.StorageError{Op: "update receipt", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperror.StorageError{Op: "update receipt", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s not found", receipt.ID)
	}

	return nil
}

// AssignCategory links a receipt to a category.
func (s *SQLiteStorage) AssignCategory(ctx context.Context, receiptID, categoryID string, auto bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if receiptID == "" || categoryID == "" {
		return fmt.Errorf("receipt and category ids cannot be empty")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE receipts SET category_id = ?, auto_categorized = ? WHERE id = ?`,
		categoryID, auto, receiptID,
	)
	if err != nil {
		return &apperror.StorageError{Op: "assign category", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperror.StorageError{Op: "assign category", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s not found", receiptID)
	}

	return nil
}

// GetReceipt returns a single receipt by id, or nil when absent.
func (s *SQLiteStorage) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + receiptColumns + `, COALESCE(c.name, '')
		FROM receipts r LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.id = ?`

	receipt, err := scanReceipt(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperror.StorageError{Op: "query receipt", Err: err}
	}
	return receipt, nil
}

// UncategorizedReceipts returns completed receipts that have no category
// yet, oldest first.
func (s *SQLiteStorage) UncategorizedReceipts(ctx context.Context, limit int) ([]models.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT ` + receiptColumns + `, ''
		FROM receipts r
		WHERE r.category_id IS NULL AND r.processing_status = ?
		ORDER BY r.created_at
		LIMIT ?`

	return s.queryReceipts(ctx, query, models.StatusCompleted, limit)
}

// ListReceipts returns all receipts with their category names resolved,
// newest first.
func (s *SQLiteStorage) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + receiptColumns + `, COALESCE(c.name, '')
		FROM receipts r LEFT JOIN categories c ON c.id = r.category_id
		ORDER BY r.created_at DESC`

	return s.queryReceipts(ctx, query)
}

func (s *SQLiteStorage) queryReceipts(ctx context.Context, query string, args ...any) ([]models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &apperror.StorageError{Op: "query receipts", Err: err}
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, &apperror.StorageError{Op: "scan receipt", Err: err}
		}
		receipts = append(receipts, *receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperror.StorageError{Op: "iterate receipts", Err: err}
	}

	return receipts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*models.Receipt, error) {
	var (
		r          models.Receipt
		amount     sql.NullString
		tax        sql.NullString
		tip        sql.NullString
		subtotal   sql.NullString
		txDate     sql.NullTime
		lineItems  string
		categoryID sql.NullString
	)

	err := row.Scan(&r.ID, &r.Source, &r.Sender, &r.RawText, &r.MerchantName,
		&amount, &tax, &tip, &subtotal, &txDate,
		&lineItems, &r.CardLastFour, &categoryID, &r.AutoCategorized,
		&r.ProcessingStatus, &r.ProcessingError, &r.CreatedAt, &r.CategoryName)
	if err != nil {
		return nil, err
	}

	if r.Amount, err = scanDecimal(amount); err != nil {
		return nil, err
	}
	if r.TaxAmount, err = scanDecimal(tax); err != nil {
		return nil, err
	}
	if r.TipAmount, err = scanDecimal(tip); err != nil {
		return nil, err
	}
	if r.Subtotal, err = scanDecimal(subtotal); err != nil {
		return nil, err
	}
	if txDate.Valid {
		t := txDate.Time
		r.TransactionDate = &t
	}
	if categoryID.Valid {
		r.CategoryID = categoryID.String
	}
	if err := json.Unmarshal([]byte(lineItems), &r.LineItems); err != nil {
		return nil, fmt.Errorf("failed to decode line items: %w", err)
	}

	return &r, nil
}

func scanDecimal(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored amount %q: %w", s.String, err)
	}
	return &d, nil
}

func decimalString(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
