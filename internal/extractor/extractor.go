package extractor

import (
	"fmt"

	"spendlens/internal/models"
)

// Extract dispatches on the document source hint. For the receipt path the
// result is never nil; for SMS and email, nil means "not receipt-like".
// The date argument is the email Date header and is ignored for the other
// sources, which carry their dates in the text itself.
func Extract(source, text, subject, sender, date string) (*models.ExtractedFields, error) {
	switch source {
	case models.SourceReceiptOCR:
		fields := ReceiptFields(text)
		return &fields, nil
	case models.SourceSMS:
		return SMSFields(text, sender), nil
	case models.SourceEmail:
		return EmailFields(text, subject, sender, date), nil
	default:
		return nil, fmt.Errorf("unknown document source: %s", source)
	}
}
