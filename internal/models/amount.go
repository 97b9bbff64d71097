package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a string captured from receipt or SMS text into a
// non-negative decimal with cent precision. Currency symbols, thousands
// separators and surrounding whitespace are tolerated. Values that do not
// parse, or parse negative, are rejected: callers omit the field rather
// than substitute zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := StandardizeAmount(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d.Round(2), nil
}

// StandardizeAmount strips currency symbols, commas and whitespace so the
// remainder can be handed to decimal.NewFromString.
func StandardizeAmount(s string) string {
	replacer := strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")
	return strings.TrimSpace(replacer.Replace(s))
}

// TitleCase uppercases the first letter of each space-separated word. Used
// when materializing a built-in category label ("gas" -> "Gas").
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
