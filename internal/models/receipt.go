package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document sources.
const (
	SourceReceiptOCR = "receipt_ocr"
	SourceSMS        = "sms"
	SourceEmail      = "email"
)

// Processing statuses for stored receipts.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Receipt is the persisted form of an ingested document together with the
// fields extracted from it. Extracted columns mirror ExtractedFields
// one-to-one; the mapping between the two is explicit, field by field.
type Receipt struct {
	ID               string           `csv:"id"`
	Source           string           `csv:"source"`
	Sender           string           `csv:"sender"`
	RawText          string           `csv:"-"`
	MerchantName     string           `csv:"merchant"`
	Amount           *decimal.Decimal `csv:"amount"`
	TaxAmount        *decimal.Decimal `csv:"tax"`
	TipAmount        *decimal.Decimal `csv:"tip"`
	Subtotal         *decimal.Decimal `csv:"subtotal"`
	TransactionDate  *time.Time       `csv:"-"`
	LineItems        []LineItem       `csv:"-"`
	CardLastFour     string           `csv:"card_last_four"`
	CategoryID       string           `csv:"-"`
	CategoryName     string           `csv:"category"`
	AutoCategorized  bool             `csv:"auto_categorized"`
	ProcessingStatus string           `csv:"status"`
	ProcessingError  string           `csv:"-"`
	CreatedAt        time.Time        `csv:"-"`
}

// ApplyExtracted copies present extracted fields onto the receipt. Absent
// fields leave the existing column untouched.
func (r *Receipt) ApplyExtracted(f ExtractedFields) {
	if f.MerchantName != "" {
		r.MerchantName = f.MerchantName
	}
	if f.Amount != nil {
		r.Amount = f.Amount
	}
	if f.TaxAmount != nil {
		r.TaxAmount = f.TaxAmount
	}
	if f.TipAmount != nil {
		r.TipAmount = f.TipAmount
	}
	if f.Subtotal != nil {
		r.Subtotal = f.Subtotal
	}
	if f.TransactionDate != nil {
		r.TransactionDate = f.TransactionDate
	}
	if len(f.LineItems) > 0 {
		r.LineItems = f.LineItems
	}
	if f.CardLastFour != "" {
		r.CardLastFour = f.CardLastFour
	}
	if f.Sender != "" {
		r.Sender = f.Sender
	}
	r.ProcessingStatus = StatusCompleted
}
