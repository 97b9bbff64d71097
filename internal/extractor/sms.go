package extractor

import (
	"regexp"
	"strings"
	"time"

	"spendlens/internal/models"
	"spendlens/internal/textutils"

	"github.com/shopspring/decimal"
)

// smsReceiptKeywords gates SMS extraction: a body containing none of these
// is not receipt-like and yields nil, which is distinct from a receipt-like
// body with no extractable fields.
var smsReceiptKeywords = []string{"receipt", "purchase", "transaction", "payment", "charged", "paid"}

var (
	smsMerchantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)at\s+([A-Za-z'&.\s]+?)(?:\s+on|\s+for|\s*\$)`),
		regexp.MustCompile(`(?i)from\s+([A-Za-z'&.\s]+?)(?:\s+on|\s+for|\s*\$)`),
		regexp.MustCompile(`(?i)([A-Za-z'&.\s]+?)\s+charged`),
		regexp.MustCompile(`(?i)([A-Za-z'&.\s]+?)\s+transaction`),
	}

	smsAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)amount[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)charged[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)paid[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(\d+\.\d{2})`),
	}

	smsDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)on\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2})`),
	}

	smsCardPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)card\s+ending\s+in\s+(\d{4})`),
		regexp.MustCompile(`(?i)card\s+\*+(\d{4})`),
		regexp.MustCompile(`\*+(\d{4})`),
	}
)

// SMSFields extracts receipt data from an SMS body. It returns nil when
// the body is not receipt-like. The raw body and sender are always
// attached as passthrough fields; the transaction date defaults to the
// current time when no date can be parsed.
func SMSFields(body, sender string) *models.ExtractedFields {
	return smsFields(body, sender, time.Now)
}

// smsFields is the clock-injectable implementation behind SMSFields.
func smsFields(body, sender string, now func() time.Time) *models.ExtractedFields {
	if body == "" || !containsAny(strings.ToLower(body), smsReceiptKeywords) {
		return nil
	}

	fields := &models.ExtractedFields{
		RawBody: body,
		Sender:  sender,
	}

	fields.MerchantName = smsMerchant(body)
	fields.Amount = smsAmount(body)
	fields.CardLastFour = firstCapture(body, smsCardPatterns)

	// The SMS path always carries a date: parsed when possible, the
	// processing time otherwise.
	date := now()
	if parsed := matchDate(body, smsDatePatterns); parsed != nil {
		date = *parsed
	}
	fields.TransactionDate = &date

	return fields
}

// smsMerchant tries the ordered merchant templates; the first capture
// longer than 2 characters that is not purely numeric wins.
func smsMerchant(body string) string {
	for _, re := range smsMerchantPatterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		merchant := strings.TrimSpace(m[1])
		if len(merchant) > 2 && !textutils.IsDigits(merchant) {
			return merchant
		}
	}
	return ""
}

// smsAmount collects every occurrence of the first matching pattern and
// returns the maximum: the largest dollar figure in a card alert is taken
// to be the charged total.
func smsAmount(body string) *decimal.Decimal {
	for _, re := range smsAmountPatterns {
		matches := re.FindAllStringSubmatch(body, -1)
		if len(matches) == 0 {
			continue
		}
		max, ok := maxAmount(matches)
		if !ok {
			continue
		}
		return &max
	}
	return nil
}

func maxAmount(matches [][]string) (decimal.Decimal, bool) {
	var max decimal.Decimal
	for i, m := range matches {
		d, err := models.ParseAmount(m[1])
		if err != nil {
			return decimal.Zero, false
		}
		if i == 0 || d.GreaterThan(max) {
			max = d
		}
	}
	return max, true
}

func firstCapture(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
