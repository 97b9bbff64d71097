package extractor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSFieldsCardAlert(t *testing.T) {
	body := "Your card was charged $45.00 at Joe's Diner on 01/15/2024. Card ending in 1234"
	fields := SMSFields(body, "+15551234567")

	require.NotNil(t, fields)
	assert.Contains(t, fields.MerchantName, "Joe")

	require.NotNil(t, fields.Amount)
	assert.True(t, fields.Amount.Equal(decimal.RequireFromString("45.00")))

	assert.Equal(t, "1234", fields.CardLastFour)

	require.NotNil(t, fields.TransactionDate)
	assert.Equal(t, 2024, fields.TransactionDate.Year())
	assert.Equal(t, time.January, fields.TransactionDate.Month())
	assert.Equal(t, 15, fields.TransactionDate.Day())

	assert.Equal(t, body, fields.RawBody)
	assert.Equal(t, "+15551234567", fields.Sender)
}

func TestSMSFieldsNotReceiptLike(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"casual message", "just saying hi"},
		{"empty body", ""},
		{"otp message", "Your verification code is 123456"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, SMSFields(tc.body, "+15551234567"))
		})
	}
}

func TestSMSFieldsAmountTakesMaximum(t *testing.T) {
	// A card alert can mention a balance or fee next to the charged
	// total; the largest figure is the total.
	body := "Payment of $20.00 and $35.50 processed"
	fields := SMSFields(body, "")

	require.NotNil(t, fields)
	require.NotNil(t, fields.Amount)
	assert.True(t, fields.Amount.Equal(decimal.RequireFromString("35.50")))
}

func TestSMSFieldsDateDefaultsToNow(t *testing.T) {
	fixed := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	fields := smsFields("Purchase approved $9.99", "", func() time.Time { return fixed })

	require.NotNil(t, fields)
	require.NotNil(t, fields.TransactionDate)
	assert.True(t, fields.TransactionDate.Equal(fixed))
}

func TestSMSFieldsMerchantApostrophe(t *testing.T) {
	fields := SMSFields("Transaction at Joe's Diner for $12.00", "")

	require.NotNil(t, fields)
	assert.Equal(t, "Joe's Diner", fields.MerchantName)
}

func TestSMSFieldsMerchantRejectsShortCapture(t *testing.T) {
	// "at AB $5.00" captures "AB", too short to be a merchant.
	fields := SMSFields("Purchase at AB $5.00", "")

	require.NotNil(t, fields)
	assert.Equal(t, "", fields.MerchantName)
}

func TestSMSFieldsRawBodyAlwaysAttached(t *testing.T) {
	body := "payment received"
	fields := SMSFields(body, "BANK")

	require.NotNil(t, fields)
	assert.Equal(t, body, fields.RawBody)
	assert.Equal(t, "BANK", fields.Sender)
	assert.Nil(t, fields.Amount)
	assert.Equal(t, "", fields.MerchantName)
}
