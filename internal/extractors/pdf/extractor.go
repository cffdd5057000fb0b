// Package pdf extracts per-page text from PDF files, with an optional
// OCR fallback for pages that carry no text layer.
package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veil-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor streams one text unit per PDF page.
// Per-page extraction failures yield empty text so a single bad page
// never aborts the file; only source-level open/parse failures reach
// the error channel.
type Extractor struct {
	ocr    bool
	runner CommandRunner
}

// Option configures the extractor.
type Option func(*Extractor)

// WithOCR enables the OCR fallback for textless pages.
func WithOCR(enabled bool) Option {
	return func(e *Extractor) {
		e.ocr = enabled
	}
}

// WithRunner injects the command runner used for OCR. Useful for testing.
func WithRunner(r CommandRunner) Option {
	return func(e *Extractor) {
		e.runner = r
	}
}

// New creates a new PDF extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		runner: execRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FileType returns the record file type this extractor yields.
func (e *Extractor) FileType() domain.FileType {
	return domain.FileTypePDF
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract streams one unit per page with a 1-based page number.
// The stream is lazy, finite and single-pass; both channels are
// closed when the last page has been sent.
func (e *Extractor) Extract(ctx context.Context, path string) (<-chan domain.TextUnit, <-chan error) {
	units := make(chan domain.TextUnit)
	errs := make(chan error, 1)

	go func() {
		defer close(units)
		defer close(errs)

		f, err := os.Open(path)
		if err != nil {
			errs <- fmt.Errorf("opening pdf: %w", err)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			errs <- fmt.Errorf("stat pdf: %w", err)
			return
		}

		reader, err := pdf.NewReader(f, info.Size())
		if err != nil {
			errs <- fmt.Errorf("reading pdf: %w", err)
			return
		}

		for i := 1; i <= reader.NumPage(); i++ {
			text := e.pageText(ctx, reader, path, i)

			if strings.TrimSpace(text) == "" && e.ocr {
				if ocrText, ok := e.ocrPage(ctx, path, i); ok {
					text = ocrText
				}
			}

			page := i
			select {
			case units <- domain.TextUnit{Page: &page, Text: text}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return units, errs
}

// pageText extracts a page's text layer, returning empty text on any
// per-page failure.
func (e *Extractor) pageText(_ context.Context, reader *pdf.Reader, path string, num int) string {
	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		logger.Warn("text extraction failed on %s page %d: %v", path, num, err)
		return ""
	}
	return text
}
