package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlens/internal/models"
)

func TestExtractDispatch(t *testing.T) {
	t.Run("receipt source never returns nil", func(t *testing.T) {
		fields, err := Extract(models.SourceReceiptOCR, "", "", "", "")
		require.NoError(t, err)
		require.NotNil(t, fields)
		assert.True(t, fields.IsEmpty())
	})

	t.Run("sms source gates on keywords", func(t *testing.T) {
		fields, err := Extract(models.SourceSMS, "hello", "", "+15550000000", "")
		require.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("email source gates on keywords", func(t *testing.T) {
		fields, err := Extract(models.SourceEmail, "hello", "Hi", "a@b.com", "")
		require.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("email date header flows through", func(t *testing.T) {
		fields, err := Extract(models.SourceEmail,
			"Your receipt: $12.00", "Order", "orders@amazon.com",
			"Fri, 16 Feb 2024 10:30:00 -0700")
		require.NoError(t, err)
		require.NotNil(t, fields)
		require.NotNil(t, fields.TransactionDate)
		assert.Equal(t, time.Date(2024, time.February, 16, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			fields.TransactionDate.Format("2006-01-02"))
	})

	t.Run("unknown source is an error", func(t *testing.T) {
		fields, err := Extract("fax", "text", "", "", "")
		assert.Error(t, err)
		assert.Nil(t, fields)
	})
}
