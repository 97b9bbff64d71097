package extractor

import (
	"regexp"
	"strings"

	"spendlens/internal/dateutils"
	"spendlens/internal/models"
	"spendlens/internal/textutils"
)

// emailReceiptKeywords gates email extraction the way smsReceiptKeywords
// gates SMS extraction; the set includes order-confirmation vocabulary.
var emailReceiptKeywords = []string{"receipt", "invoice", "purchase", "order", "payment", "transaction"}

// knownSenders maps well-known sender substrings to canonical merchant
// names, in declared order.
var knownSenders = []struct {
	substr   string
	merchant string
}{
	{"amazon", "Amazon"},
	{"uber", "Uber"},
	{"lyft", "Lyft"},
	{"paypal", "PayPal"},
}

var emailAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)total[:\s]*\$?(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)amount[:\s]*\$?(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.\d{2})`),
}

// EmailFields extracts receipt data from an email. HTML bodies are reduced
// to visible text before matching. Returns nil when neither subject nor
// body looks receipt-like. The date argument is the message's Date header
// value; it is parsed on a best-effort basis and omitted when unparseable.
func EmailFields(body, subject, sender, date string) *models.ExtractedFields {
	text := textutils.HTMLToText(body)

	lowerSubject := strings.ToLower(subject)
	lowerBody := strings.ToLower(text)
	if !containsAny(lowerSubject, emailReceiptKeywords) && !containsAny(lowerBody, emailReceiptKeywords) {
		return nil
	}

	fields := &models.ExtractedFields{
		RawBody: body,
		Sender:  sender,
	}

	fields.MerchantName = emailMerchant(strings.ToLower(sender))
	// Order confirmations list item prices before the grand total, so the
	// last occurrence wins.
	fields.Amount = matchAmount(text, emailAmountPatterns, pickLast)

	if date != "" {
		if t, _, err := dateutils.ParseDate(date); err == nil {
			fields.TransactionDate = &t
		}
	}

	return fields
}

// emailMerchant resolves the merchant from a lowercased sender address:
// known senders first, then the sender's domain label, title-cased.
func emailMerchant(sender string) string {
	for _, ks := range knownSenders {
		if strings.Contains(sender, ks.substr) {
			return ks.merchant
		}
	}
	if domain := textutils.SenderDomain(sender); domain != "" {
		return models.TitleCase(domain)
	}
	return ""
}
