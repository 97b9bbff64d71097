// Package ocr abstracts the engine that turns receipt images into text.
package ocr

import (
	"fmt"
	"os"
	"strings"
)

// Provider defines the interface for extracting text from a receipt
// image. This interface allows for dependency injection and makes the
// ingestion pipeline testable without a real OCR engine.
type Provider interface {
	// ExtractText extracts text content from the image at the given path.
	// Returns the extracted text as a string or an error if extraction fails.
	ExtractText(imagePath string) (string, error)
}

// FileProvider implements Provider by reading pre-extracted text from a
// sidecar file next to the image (image.jpg -> image.txt). It is the
// default engine when no external OCR service is configured.
type FileProvider struct{}

// NewFileProvider creates a new FileProvider instance.
func NewFileProvider() *FileProvider {
	return &FileProvider{}
}

// ExtractText reads the sidecar text file for the given image. When the
// path itself ends in .txt it is read directly.
func (p *FileProvider) ExtractText(imagePath string) (string, error) {
	textPath := imagePath
	if !strings.HasSuffix(imagePath, ".txt") {
		if idx := strings.LastIndex(imagePath, "."); idx > 0 {
			textPath = imagePath[:idx] + ".txt"
		} else {
			textPath = imagePath + ".txt"
		}
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("failed to read OCR text for %s: %w", imagePath, err)
	}
	return string(data), nil
}

// MockProvider implements Provider for testing purposes. It returns
// predefined text or an error instead of running extraction.
type MockProvider struct {
	MockText string
	MockErr  error
}

// NewMockProvider creates a new MockProvider with the given mock data.
func NewMockProvider(mockText string, mockErr error) *MockProvider {
	return &MockProvider{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (p *MockProvider) ExtractText(imagePath string) (string, error) {
	if p.MockErr != nil {
		return "", p.MockErr
	}
	return p.MockText, nil
}
