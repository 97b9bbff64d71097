// Package dateutils provides date parsing for text captured from receipts,
// SMS bodies and email headers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts commonly seen on North American receipts and card-alert messages.
const (
	LayoutUS        = "01/02/2006"
	LayoutUSShort   = "1/2/2006"
	LayoutEuropean  = "02/01/2006"
	LayoutISO       = "2006-01-02"
	LayoutISOSlash  = "2006/01/02"
	LayoutUSDashed  = "01-02-2006"
	LayoutMonthName = "Jan 2, 2006"
)

// CommonFormats is the fixed list of layouts tried in order when parsing a
// captured date span. US month-first layouts come before day-first ones, so
// an ambiguous 01/02/2024 resolves as January 2. The trailing RFC 1123
// layouts cover email Date headers.
var CommonFormats = []string{
	LayoutUS,
	LayoutUSShort,
	LayoutEuropean,
	LayoutISO,
	LayoutISOSlash,
	LayoutUSDashed,
	"2-1-2006",
	LayoutMonthName,
	"Jan 2 2006",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
	"2 Jan 2006 15:04:05 -0700",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats in order,
// returning the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace so layout matching is not
// thrown off by OCR artifacts.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// ToISODate formats a time.Time as YYYY-MM-DD for CSV output.
func ToISODate(date time.Time) string {
	return date.Format(LayoutISO)
}
