// Package extractor turns raw unstructured text (receipt OCR output, SMS
// bodies, email bodies) into a structured ExtractedFields record. All
// entry points are pure functions over their input: they never fail and
// never touch storage; the worst case is an all-empty record.
package extractor

import (
	"regexp"
	"strings"
	"time"

	"spendlens/internal/dateutils"
	"spendlens/internal/models"
	"spendlens/internal/textutils"

	"github.com/shopspring/decimal"
)

// Merchant detection scans at most this many lines from the top of the
// receipt.
const merchantScanLines = 5

// pick selects which occurrence of a matching pattern is used. Receipt
// totals tend to appear after subtotals and line items, so the amount
// patterns take the last occurrence; tax and tip lines appear once near the
// top of the summary block, so those take the first.
type pick int

const (
	pickFirst pick = iota
	pickLast
)

var (
	receiptAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)amount[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`\$(\d+\.\d{2})`),
		regexp.MustCompile(`(\d+\.\d{2})\s*$`),
	}

	receiptSubtotalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)sub[\s-]?total[:\s]*\$?(\d+\.?\d*)`),
	}

	receiptTaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tax[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)hst[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)gst[:\s]*\$?(\d+\.?\d*)`),
	}

	receiptTipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tip[:\s]*\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)gratuity[:\s]*\$?(\d+\.?\d*)`),
	}

	receiptDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),
		regexp.MustCompile(`(?i)((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4})`),
	}

	lineItemPriceRe = regexp.MustCompile(`\$\d+\.\d{2}`)
)

// ReceiptFields extracts structured data from receipt OCR text. Fields
// that cannot be recovered are omitted from the result; the function never
// fails.
func ReceiptFields(ocrText string) models.ExtractedFields {
	var fields models.ExtractedFields

	lines := strings.Split(ocrText, "\n")
	fields.MerchantName = receiptMerchant(lines)
	fields.Amount = matchAmount(ocrText, receiptAmountPatterns, pickLast)
	fields.Subtotal = matchAmount(ocrText, receiptSubtotalPatterns, pickFirst)
	fields.TaxAmount = matchAmount(ocrText, receiptTaxPatterns, pickFirst)
	fields.TipAmount = matchAmount(ocrText, receiptTipPatterns, pickFirst)
	fields.TransactionDate = matchDate(ocrText, receiptDatePatterns)
	fields.LineItems = receiptLineItems(lines)

	return fields
}

// receiptMerchant returns the first line near the top that looks like a
// name rather than an address or phone number.
func receiptMerchant(lines []string) string {
	limit := merchantScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) > 3 && !textutils.IsNumericLine(line) {
			return line
		}
	}
	return ""
}

// matchAmount walks an ordered pattern list and returns the selected
// occurrence of the first pattern that both matches and parses. A parse
// failure on the selected occurrence moves on to the next pattern, never
// substitutes zero.
func matchAmount(text string, patterns []*regexp.Regexp, p pick) *decimal.Decimal {
	for _, re := range patterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		chosen := matches[0][1]
		if p == pickLast {
			chosen = matches[len(matches)-1][1]
		}
		d, err := models.ParseAmount(chosen)
		if err != nil {
			continue
		}
		return &d
	}
	return nil
}

// matchDate returns the parsed first occurrence of the first date pattern
// that matches. If that occurrence does not parse under any known layout
// the field is omitted; later patterns are not consulted.
func matchDate(text string, patterns []*regexp.Regexp) *time.Time {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t, _, err := dateutils.ParseDate(m[1])
		if err != nil {
			return nil
		}
		return &t
	}
	return nil
}

// receiptLineItems collects lines carrying a $N.NN token whose remainder is
// descriptive text.
func receiptLineItems(lines []string) []models.LineItem {
	var items []models.LineItem
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 5 || !lineItemPriceRe.MatchString(trimmed) {
			continue
		}
		priceStr, description, ok := textutils.SplitPriceLine(trimmed)
		if !ok || description == "" {
			continue
		}
		price, err := models.ParseAmount(priceStr)
		if err != nil {
			continue
		}
		items = append(items, models.LineItem{
			Description: description,
			TotalPrice:  price,
		})
	}
	return items
}
