package extractor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailFieldsOrderConfirmation(t *testing.T) {
	body := "Thank you for your order.\nItem: $12.99\nShipping: $2.50\nTotal: $15.49"
	fields := EmailFields(body, "Your Order Confirmation", "ship-confirm@amazon.com", "01/20/2024")

	require.NotNil(t, fields)
	assert.Equal(t, "Amazon", fields.MerchantName)

	// The grand total follows the item prices, so the last dollar figure
	// wins.
	require.NotNil(t, fields.Amount)
	assert.True(t, fields.Amount.Equal(decimal.RequireFromString("15.49")))

	require.NotNil(t, fields.TransactionDate)
	assert.Equal(t, time.January, fields.TransactionDate.Month())
	assert.Equal(t, 20, fields.TransactionDate.Day())

	assert.Equal(t, body, fields.RawBody)
	assert.Equal(t, "ship-confirm@amazon.com", fields.Sender)
}

func TestEmailFieldsKeywordGate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		subject string
		wantNil bool
	}{
		{"no keywords anywhere", "how are you doing", "Hello", true},
		{"keyword in subject only", "thanks again", "Your receipt", false},
		{"keyword in body only", "your invoice is attached", "FYI", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := EmailFields(tc.body, tc.subject, "someone@example.com", "")
			if tc.wantNil {
				assert.Nil(t, fields)
			} else {
				assert.NotNil(t, fields)
			}
		})
	}
}

func TestEmailFieldsKnownSenders(t *testing.T) {
	tests := []struct {
		sender   string
		merchant string
	}{
		{"no-reply@uber.com", "Uber"},
		{"receipts@lyft.com", "Lyft"},
		{"service@paypal.com", "PayPal"},
		{"orders@amazon.co.uk", "Amazon"},
	}

	for _, tc := range tests {
		t.Run(tc.sender, func(t *testing.T) {
			fields := EmailFields("your receipt", "", tc.sender, "")
			require.NotNil(t, fields)
			assert.Equal(t, tc.merchant, fields.MerchantName)
		})
	}
}

func TestEmailFieldsSenderDomainFallback(t *testing.T) {
	fields := EmailFields("your receipt", "", "orders@bluebottle.com", "")

	require.NotNil(t, fields)
	assert.Equal(t, "Bluebottle", fields.MerchantName)
}

func TestEmailFieldsHTMLBody(t *testing.T) {
	body := `<html><head><style>p{color:red}</style></head>
<body><p>Receipt for your purchase</p><p>Total: $30.00</p></body></html>`
	fields := EmailFields(body, "", "shop@example.com", "")

	require.NotNil(t, fields)
	require.NotNil(t, fields.Amount)
	assert.True(t, fields.Amount.Equal(decimal.RequireFromString("30.00")))
	// RawBody keeps the original HTML, not the stripped text.
	assert.Equal(t, body, fields.RawBody)
}

func TestEmailFieldsUnparseableDateOmitted(t *testing.T) {
	fields := EmailFields("your receipt", "", "shop@example.com", "not a date")

	require.NotNil(t, fields)
	assert.Nil(t, fields.TransactionDate)
}
