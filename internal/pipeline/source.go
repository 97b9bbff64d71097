package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"spendlens/internal/apperror"
	"spendlens/internal/models"
)

// Source yields documents for batch ingestion.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// DirectorySource reads every .txt file in a directory as one document
// of a fixed source type. Files are read in name order so batch runs are
// reproducible.
type DirectorySource struct {
	Dir        string
	SourceType string
}

// NewDirectorySource creates a source over dir. An empty sourceType
// defaults to receipt OCR text.
func NewDirectorySource(dir, sourceType string) *DirectorySource {
	if sourceType == "" {
		sourceType = models.SourceReceiptOCR
	}
	return &DirectorySource{Dir: dir, SourceType: sourceType}
}

// Documents reads the directory contents. Subdirectories and non-text
// files are skipped.
func (s *DirectorySource) Documents(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, &apperror.ExtractionError{Source: s.SourceType, Path: s.Dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch read cancelled: %w", err)
		}
		path := filepath.Join(s.Dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &apperror.ExtractionError{Source: s.SourceType, Path: path, Err: err}
		}
		docs = append(docs, Document{Source: s.SourceType, Text: string(data)})
	}

	return docs, nil
}

// IngestAll ingests every document a source yields. It keeps going past
// documents the extractors reject and returns how many receipts reached
// completed status.
func (p *Pipeline) IngestAll(ctx context.Context, source Source) (int, error) {
	docs, err := source.Documents(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, doc := range docs {
		receipt, err := p.Ingest(ctx, doc)
		if err != nil {
			return completed, err
		}
		if receipt.ProcessingStatus == models.StatusCompleted {
			completed++
		}
	}
	return completed, nil
}
