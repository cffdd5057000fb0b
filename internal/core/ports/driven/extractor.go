package driven

import (
	"context"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// Extractor produces raw text units from a source file.
// Each extractor handles one source family (PDF pages, workbook rows).
type Extractor interface {
	// FileType returns the record file type this extractor yields.
	FileType() domain.FileType

	// Extensions returns the lowercase file extensions (with leading
	// dot) this extractor handles.
	Extensions() []string

	// Extract streams the file's text units.
	// The unit channel is lazy, finite and single-pass: it is
	// consumed once and never re-iterated. Recoverable per-unit
	// failures yield a unit with empty text; source-level read or
	// decode failures are sent on the error channel and terminate
	// the stream. Both channels are closed when extraction ends.
	Extract(ctx context.Context, path string) (<-chan domain.TextUnit, <-chan error)
}

// ExtractorRegistry selects the extractor for a file path.
type ExtractorRegistry interface {
	// ForPath returns the extractor handling the path's extension,
	// or false when the extension is unrecognized.
	ForPath(path string) (Extractor, bool)

	// Extensions returns all supported extensions across registered
	// extractors, used by file discovery.
	Extensions() []string
}
