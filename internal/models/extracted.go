// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single purchased item recovered from receipt text.
type LineItem struct {
	Description string          `json:"description" yaml:"description"`
	TotalPrice  decimal.Decimal `json:"total_price" yaml:"total_price"`
}

// ExtractedFields is the structured candidate record produced by the text
// extractors. Every field is optional: a value that could not be parsed is
// left nil (or empty), never zero-filled. Decimal fields are always
// non-negative when present.
type ExtractedFields struct {
	MerchantName    string           `json:"merchant_name,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TaxAmount       *decimal.Decimal `json:"tax_amount,omitempty"`
	TipAmount       *decimal.Decimal `json:"tip_amount,omitempty"`
	Subtotal        *decimal.Decimal `json:"subtotal,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	LineItems       []LineItem       `json:"line_items,omitempty"`

	// CardLastFour is a 4-digit card suffix, currently only recovered from
	// SMS bodies ("card ending in 1234", "*1234").
	CardLastFour string `json:"card_last_four,omitempty"`

	// RawBody and Sender are opaque passthrough fields kept for audit and
	// debugging. The SMS and email extractors always set them, even when no
	// other field could be recovered.
	RawBody string `json:"raw_body,omitempty"`
	Sender  string `json:"sender,omitempty"`
}

// IsEmpty reports whether no field of interest was extracted. Passthrough
// fields do not count.
func (f ExtractedFields) IsEmpty() bool {
	return f.MerchantName == "" &&
		f.Amount == nil &&
		f.TaxAmount == nil &&
		f.TipAmount == nil &&
		f.Subtotal == nil &&
		f.TransactionDate == nil &&
		len(f.LineItems) == 0 &&
		f.CardLastFour == ""
}

// HasMerchant reports whether a merchant name was recovered.
func (f ExtractedFields) HasMerchant() bool {
	return f.MerchantName != ""
}
