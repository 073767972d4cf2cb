// Package pdf extracts text from uploaded PDF files.
package pdf

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF yields no extractable text at all.
var ErrNoText = errors.New("no text could be extracted from the PDF")

// Processor extracts text content from PDF files page by page.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a processor. A nil logger falls back to slog.Default.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// ExtractText walks every page of the PDF at path and joins the extracted
// text. Pages that fail to extract are skipped with a warning. onProgress, if
// non-nil, receives 0-100 as pages complete.
func (p *Processor) ExtractText(path string, onProgress func(percent int)) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	if total == 0 {
		return "", ErrNoText
	}

	var parts []string
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if !page.V.IsNull() {
			text, err := extractPageText(page)
			if err != nil {
				p.logger.Warn("failed to extract text from page", "page", i, "error", err)
			} else if strings.TrimSpace(text) != "" {
				parts = append(parts, text)
			}
		}

		if onProgress != nil {
			onProgress(i * 100 / total)
		}
	}

	if len(parts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(parts, "\n\n"), nil
}

// extractPageText isolates the library call: malformed content streams panic
// inside the parser, and a single bad page must not abort the document.
func extractPageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page parser panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
