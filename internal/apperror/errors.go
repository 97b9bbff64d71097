// Package apperror defines the typed errors shared across the extraction
// and categorization pipeline. The pure extractors never fail; these types
// cover the I/O around them.
package apperror

import "fmt"

// ExtractionError reports a failure to obtain text for extraction, such as
// an unreadable input file or a failing OCR provider.
type ExtractionError struct {
	Source string
	Path   string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s input '%s': %v", e.Source, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// StorageError reports a persistence failure. A unique-constraint conflict
// during category materialization is not a StorageError by itself; it only
// becomes one when the re-read after the conflict also fails.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// CategorizationError wraps a storage failure surfaced while assigning a
// category. Absence of a match is never an error.
type CategorizationError struct {
	Merchant string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q: %v", e.Merchant, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
