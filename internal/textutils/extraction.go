// Package textutils provides text manipulation helpers shared by the field
// extractors.
package textutils

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	numericLineRe = regexp.MustCompile(`^[\d\s\-()]+$`)
	digitsOnlyRe  = regexp.MustCompile(`^\d+$`)
	priceTokenRe  = regexp.MustCompile(`\$?(\d+\.\d{2})`)
	senderDomain  = regexp.MustCompile(`@([^.\s>]+)`)
)

// IsNumericLine reports whether a line consists solely of digits,
// whitespace, dashes and parentheses. Address and phone-number lines on
// receipts look like this; merchant names never do.
func IsNumericLine(line string) bool {
	return numericLineRe.MatchString(line)
}

// IsDigits reports whether the string is purely numeric.
func IsDigits(s string) bool {
	return digitsOnlyRe.MatchString(s)
}

// SplitPriceLine looks for a $N.NN-shaped token in the line. If found, it
// returns the captured price and the remaining descriptive text with the
// token removed, trimmed.
func SplitPriceLine(line string) (price, description string, ok bool) {
	loc := priceTokenRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", "", false
	}
	price = line[loc[2]:loc[3]]
	description = strings.TrimSpace(line[:loc[0]] + line[loc[1]:])
	return price, description, true
}

// SenderDomain extracts the first domain label after '@' from an email
// address ("orders@amazon.com" -> "amazon"). Returns "" when absent.
func SenderDomain(sender string) string {
	m := senderDomain.FindStringSubmatch(sender)
	if m == nil {
		return ""
	}
	return m[1]
}

// HTMLToText strips tags from an HTML document, returning its visible text
// with lines preserved. Plain text passes through unchanged apart from
// whitespace normalization at line ends.
func HTMLToText(body string) string {
	if !strings.Contains(body, "<") {
		return body
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteByte('\n')
			}
		case html.ElementNode:
			// Script and style bodies are markup, not message text.
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimRight(sb.String(), "\n")
}
