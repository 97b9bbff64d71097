package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlens/internal/logging"
	"spendlens/internal/models"
)

func sampleReceipts() []models.Receipt {
	amount := decimal.RequireFromString("4.90")
	tax := decimal.RequireFromString("0.40")
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	return []models.Receipt{
		{
			ID:               "r-1",
			Source:           models.SourceReceiptOCR,
			MerchantName:     "STARBUCKS",
			Amount:           &amount,
			TaxAmount:        &tax,
			TransactionDate:  &date,
			CategoryName:     "Food",
			AutoCategorized:  true,
			ProcessingStatus: models.StatusCompleted,
		},
		{
			ID:               "r-2",
			Source:           models.SourceSMS,
			ProcessingStatus: models.StatusFailed,
		},
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "receipts.csv")
	writer := NewWriter(',', logging.NewMockLogger())

	require.NoError(t, writer.WriteFile(sampleReceipts(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "id,source,date,merchant,amount,tax,tip,subtotal,card_last_four,category,auto_categorized,status", lines[0])
	assert.Contains(t, lines[1], "r-1")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[1], "4.90")
	assert.Contains(t, lines[1], "Food")

	// Missing amounts stay blank, never zero.
	assert.Contains(t, lines[2], "r-2")
	assert.NotContains(t, lines[2], "0.00")
}

func TestWriteFileCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.csv")
	writer := NewWriter(';', logging.NewMockLogger())

	require.NoError(t, writer.WriteFile(sampleReceipts(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id;source;date")
}

func TestWriteFileNilReceipts(t *testing.T) {
	writer := NewWriter(0, nil)
	assert.Error(t, writer.WriteFile(nil, filepath.Join(t.TempDir(), "x.csv")))
}
