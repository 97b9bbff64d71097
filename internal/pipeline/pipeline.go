// Package pipeline drives ingestion: obtain text for a document, extract
// structured fields from it, persist the result and assign a category.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"
	"github.com/mattn/go-sqlite3"

	"spendlens/internal/apperror"
	"spendlens/internal/categorizer"
	"spendlens/internal/extractor"
	"spendlens/internal/logging"
	"spendlens/internal/models"
	"spendlens/internal/ocr"
)

// Document is one unit of ingestible input before extraction.
type Document struct {
	Source  string
	Text    string
	Subject string
	Sender  string
	// Date is the email Date header, empty for other sources.
	Date string
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	InsertReceipt(ctx context.Context, receipt *models.Receipt) error
	UpdateExtracted(ctx context.Context, receipt *models.Receipt) error
	AssignCategory(ctx context.Context, receiptID, categoryID string, auto bool) error
	UncategorizedReceipts(ctx context.Context, limit int) ([]models.Receipt, error)
	ActiveRules(ctx context.Context) ([]models.CategoryRule, error)
}

// Pipeline ties extraction, persistence and categorization together.
type Pipeline struct {
	store       Store
	categorizer *categorizer.Categorizer
	ocr         ocr.Provider
	logger      logging.Logger
}

// New creates a pipeline. A nil OCR provider defaults to reading sidecar
// text files.
func New(store Store, cat *categorizer.Categorizer, provider ocr.Provider, logger logging.Logger) *Pipeline {
	if provider == nil {
		provider = ocr.NewFileProvider()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{store: store, categorizer: cat, ocr: provider, logger: logger}
}

// IngestImage runs OCR on a receipt image and ingests the resulting text.
func (p *Pipeline) IngestImage(ctx context.Context, imagePath string) (*models.Receipt, error) {
	text, err := p.ocr.ExtractText(imagePath)
	if err != nil {
		return nil, &apperror.ExtractionError{Source: models.SourceReceiptOCR, Path: imagePath, Err: err}
	}
	return p.Ingest(ctx, Document{Source: models.SourceReceiptOCR, Text: text})
}

// Ingest stores the raw document, extracts fields from it and assigns a
// category when the extracted merchant matches a rule. The stored receipt
// is returned in its final state.
func (p *Pipeline) Ingest(ctx context.Context, doc Document) (*models.Receipt, error) {
	receipt := &models.Receipt{
		Source:           doc.Source,
		Sender:           doc.Sender,
		RawText:          doc.Text,
		ProcessingStatus: models.StatusProcessing,
	}
	if err := p.withRetry(func() error { return p.store.InsertReceipt(ctx, receipt) }); err != nil {
		return nil, err
	}

	fields, err := extractor.Extract(doc.Source, doc.Text, doc.Subject, doc.Sender, doc.Date)
	if err != nil {
		receipt.ProcessingStatus = models.StatusFailed
		receipt.ProcessingError = err.Error()
		if updateErr := p.withRetry(func() error { return p.store.UpdateExtracted(ctx, receipt) }); updateErr != nil {
			return receipt, updateErr
		}
		return receipt, err
	}
	if fields == nil {
		// Keyword gate said this is not a receipt. Keep the raw text
		// for inspection but mark it so it never reaches the sweep.
		receipt.ProcessingStatus = models.StatusFailed
		receipt.ProcessingError = "document not recognized as a receipt"
		if err := p.withRetry(func() error { return p.store.UpdateExtracted(ctx, receipt) }); err != nil {
			return receipt, err
		}
		p.logger.WithFields(
			logging.Field{Key: "source", Value: doc.Source},
			logging.Field{Key: "sender", Value: doc.Sender},
		).Info("document skipped, no receipt content")
		return receipt, nil
	}

	receipt.ApplyExtracted(*fields)
	if err := p.withRetry(func() error { return p.store.UpdateExtracted(ctx, receipt) }); err != nil {
		return receipt, err
	}

	if err := p.categorize(ctx, receipt, nil); err != nil {
		return receipt, err
	}

	p.logger.WithFields(
		logging.Field{Key: "id", Value: receipt.ID},
		logging.Field{Key: "source", Value: receipt.Source},
		logging.Field{Key: "merchant", Value: receipt.MerchantName},
	).Info("document ingested")
	return receipt, nil
}

// SweepResult summarizes one pass over the uncategorized backlog.
type SweepResult struct {
	Examined    int
	Categorized int
	Failed      int
}

// Sweep re-runs categorization over completed receipts that have no
// category yet. Failures on individual receipts are logged and counted
// but do not stop the pass.
func (p *Pipeline) Sweep(ctx context.Context, limit int) (SweepResult, error) {
	var result SweepResult

	receipts, err := p.store.UncategorizedReceipts(ctx, limit)
	if err != nil {
		return result, err
	}
	rules, err := p.store.ActiveRules(ctx)
	if err != nil {
		return result, err
	}

	for i := range receipts {
		receipt := &receipts[i]
		result.Examined++

		if err := p.categorize(ctx, receipt, rules); err != nil {
			result.Failed++
			p.logger.WithError(&apperror.CategorizationError{Merchant: receipt.MerchantName, Err: err}).
				Warn("sweep skipped receipt")
			continue
		}
		if receipt.CategoryID != "" {
			result.Categorized++
		}
	}

	p.logger.WithFields(
		logging.Field{Key: "examined", Value: result.Examined},
		logging.Field{Key: "categorized", Value: result.Categorized},
		logging.Field{Key: "failed", Value: result.Failed},
	).Info("sweep finished")
	return result, nil
}

// categorize matches the receipt against the rule chain and persists the
// assignment. A nil rules slice means "load the active rules here".
func (p *Pipeline) categorize(ctx context.Context, receipt *models.Receipt, rules []models.CategoryRule) error {
	in := categorizer.MerchantInput(receipt.MerchantName)
	if receipt.MerchantName == "" {
		in = categorizer.DescriptionInput(receipt.RawText)
	}

	if rules == nil {
		loaded, err := p.store.ActiveRules(ctx)
		if err != nil {
			return err
		}
		rules = loaded
	}

	category, err := p.categorizer.Categorize(ctx, in, rules)
	if err != nil {
		return err
	}
	if category == nil {
		return nil
	}

	if err := p.withRetry(func() error {
		return p.store.AssignCategory(ctx, receipt.ID, category.ID, true)
	}); err != nil {
		return err
	}
	receipt.CategoryID = category.ID
	receipt.CategoryName = category.Name
	receipt.AutoCategorized = true
	return nil
}

// withRetry wraps a storage call with a short retry loop for transient
// lock contention on the database file.
func (p *Pipeline) withRetry(op func() error) error {
	return retry.Do(op,
		retry.RetryIf(func(err error) bool {
			if !isTransient(err) {
				return false
			}
			p.logger.WithError(err).Warn("database busy, will retry")
			return true
		}),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
