package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlens/internal/logging"
	"spendlens/internal/models"
	"spendlens/internal/ruleset"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:", logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestGetOrCreateCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first, err := store.GetOrCreateCategory(ctx, "gas")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Gas", first.Name)
	assert.True(t, first.IsSystem)
	assert.True(t, first.IsActive)
	assert.NotEmpty(t, first.ID)

	// Same name again, any casing, returns the existing row.
	second, err := store.GetOrCreateCategory(ctx, "GAS")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestGetOrCreateCategoryConcurrent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "concurrent.db")

	writers := make([]*SQLiteStorage, 2)
	for i := range writers {
		store, err := NewSQLiteStorage(dbPath, logging.NewMockLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		writers[i] = store
	}

	ctx := context.Background()
	results := make([]*models.Category, len(writers))
	errs := make([]error, len(writers))

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = writers[i].GetOrCreateCategory(ctx, "brand new")
		}(i)
	}
	wg.Wait()

	for i := range writers {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
	}
	assert.Equal(t, results[0].ID, results[1].ID)

	categories, err := writers[0].GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Brand New", categories[0].Name)
}

func TestGetOrCreateCategoryRecoversFromInsertConflict(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	existing, err := store.GetOrCreateCategory(ctx, "travel")
	require.NoError(t, err)
	require.NotNil(t, existing)

	// A duplicate insert surfaces the driver's constraint error, which the
	// conflict check must recognize so a lost race resolves by re-reading.
	_, err = store.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, is_system, is_active, created_at)
		 VALUES (?, ?, '', 1, 1, ?)`,
		"duplicate-id", "Travel", time.Now().UTC(),
	)
	require.Error(t, err)
	assert.True(t, isUniqueConflict(err))

	again, err := store.GetOrCreateCategory(ctx, "TRAVEL")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, existing.ID, again.ID)
}

func TestGetOrCreateCategoryEmptyName(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetOrCreateCategory(context.Background(), "")
	assert.Error(t, err)
}

func TestGetCategoryByNameAbsent(t *testing.T) {
	store := newTestStorage(t)

	cat, err := store.GetCategoryByName(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestSeedSystemCategoriesIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	seeds := ruleset.DefaultSeedCategories()

	created, err := store.SeedSystemCategories(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, len(seeds), created)

	created, err = store.SeedSystemCategories(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	rules, err := store.ActiveRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, len(seeds))
	assert.Equal(t, seeds[0].Name, rules[0].CategoryName)
	assert.Equal(t, seeds[0].Keywords, rules[0].Keywords)
}

func TestAddRulePositions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first, err := store.AddRule(ctx, models.CategoryRule{CategoryName: "Coffee", Keywords: []string{"starbucks"}})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := store.AddRule(ctx, models.CategoryRule{CategoryName: "Books", Keywords: []string{"bookstore"}})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	rules, err := store.ActiveRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Coffee", rules[0].CategoryName)
	assert.Equal(t, "Books", rules[1].CategoryName)
}

func TestAddRuleValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.AddRule(ctx, models.CategoryRule{CategoryName: "", Keywords: []string{"x"}})
	assert.Error(t, err)

	_, err = store.AddRule(ctx, models.CategoryRule{CategoryName: "Coffee", Keywords: nil})
	assert.Error(t, err)
}

func TestDeactivateRule(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rule, err := store.AddRule(ctx, models.CategoryRule{CategoryName: "Coffee", Keywords: []string{"starbucks"}})
	require.NoError(t, err)

	require.NoError(t, store.DeactivateRule(ctx, rule.ID))

	rules, err := store.ActiveRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	assert.Error(t, store.DeactivateRule(ctx, "does-not-exist"))
}

func TestReceiptRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	amount := decimal.RequireFromString("4.90")
	tax := decimal.RequireFromString("0.40")
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	receipt := &models.Receipt{
		Source:          models.SourceReceiptOCR,
		RawText:         "STARBUCKS\nTotal: $4.90",
		MerchantName:    "STARBUCKS",
		Amount:          &amount,
		TaxAmount:       &tax,
		TransactionDate: &date,
		LineItems: []models.LineItem{
			{Description: "Coffee", TotalPrice: decimal.RequireFromString("4.50")},
		},
		ProcessingStatus: models.StatusCompleted,
	}
	require.NoError(t, store.InsertReceipt(ctx, receipt))
	require.NotEmpty(t, receipt.ID)

	got, err := store.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "STARBUCKS", got.MerchantName)
	require.NotNil(t, got.Amount)
	assert.True(t, got.Amount.Equal(amount))
	require.NotNil(t, got.TaxAmount)
	assert.True(t, got.TaxAmount.Equal(tax))
	assert.Nil(t, got.TipAmount)
	require.NotNil(t, got.TransactionDate)
	assert.True(t, got.TransactionDate.Equal(date))
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, "Coffee", got.LineItems[0].Description)
	assert.Equal(t, models.StatusCompleted, got.ProcessingStatus)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetReceiptAbsent(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetReceipt(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateExtracted(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	receipt := &models.Receipt{Source: models.SourceSMS, RawText: "charged $9.99"}
	require.NoError(t, store.InsertReceipt(ctx, receipt))

	amount := decimal.RequireFromString("9.99")
	receipt.MerchantName = "Corner Cafe"
	receipt.Amount = &amount
	receipt.ProcessingStatus = models.StatusCompleted
	require.NoError(t, store.UpdateExtracted(ctx, receipt))

	got, err := store.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Corner Cafe", got.MerchantName)
	require.NotNil(t, got.Amount)
	assert.True(t, got.Amount.Equal(amount))

	missing := &models.Receipt{ID: "missing"}
	assert.Error(t, store.UpdateExtracted(ctx, missing))
}

func TestAssignCategoryAndUncategorized(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	completed := &models.Receipt{
		Source:           models.SourceReceiptOCR,
		MerchantName:     "Shell Station",
		ProcessingStatus: models.StatusCompleted,
	}
	require.NoError(t, store.InsertReceipt(ctx, completed))

	failed := &models.Receipt{
		Source:           models.SourceSMS,
		ProcessingStatus: models.StatusFailed,
	}
	require.NoError(t, store.InsertReceipt(ctx, failed))

	// Only completed, uncategorized receipts show up.
	pending, err := store.UncategorizedReceipts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, completed.ID, pending[0].ID)

	category, err := store.GetOrCreateCategory(ctx, "gas")
	require.NoError(t, err)
	require.NoError(t, store.AssignCategory(ctx, completed.ID, category.ID, true))

	pending, err = store.UncategorizedReceipts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, err := store.GetReceipt(ctx, completed.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, category.ID, got.CategoryID)
	assert.Equal(t, "Gas", got.CategoryName)
	assert.True(t, got.AutoCategorized)

	assert.Error(t, store.AssignCategory(ctx, "missing", category.ID, true))
}

func TestListReceiptsResolvesCategories(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := &models.Receipt{Source: models.SourceReceiptOCR, MerchantName: "A", ProcessingStatus: models.StatusCompleted}
	require.NoError(t, store.InsertReceipt(ctx, first))

	category, err := store.GetOrCreateCategory(ctx, "shopping")
	require.NoError(t, err)
	require.NoError(t, store.AssignCategory(ctx, first.ID, category.ID, true))

	second := &models.Receipt{Source: models.SourceEmail, MerchantName: "B", ProcessingStatus: models.StatusCompleted}
	require.NoError(t, store.InsertReceipt(ctx, second))

	receipts, err := store.ListReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 2)

	byID := map[string]models.Receipt{}
	for _, r := range receipts {
		byID[r.ID] = r
	}
	assert.Equal(t, "Shopping", byID[first.ID].CategoryName)
	assert.Equal(t, "", byID[second.ID].CategoryName)
}

func TestValidateContext(t *testing.T) {
	store := newTestStorage(t)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetCategories(cancelled)
	assert.Error(t, err)

	_, err = store.GetCategories(nil) //nolint:staticcheck
	assert.Error(t, err)
}
