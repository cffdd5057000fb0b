package driving

import (
	"context"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// DefaultMaxChunkChars is the default chunk size bound in characters.
const DefaultMaxChunkChars = 4000

// IngestOptions configures one ingest batch.
//
// The de-identification secret and the OCR toggle are not options
// here: they are consumed at wiring time, when the redaction engine
// and the PDF extractor are constructed for the batch. A missing
// secret is a fatal configuration error surfaced before the service
// is ever built.
type IngestOptions struct {
	// Inputs are files or directories; directories are scanned
	// recursively for supported extensions.
	Inputs []string

	// Output is the record stream path. The canonical compression
	// suffix is appended when absent.
	Output string

	// MaxChunkChars bounds chunk length and sets the grouping
	// threshold for tabular row buffers. Zero or negative selects
	// DefaultMaxChunkChars.
	MaxChunkChars int
}

// Ingestor runs the de-identification and chunking pipeline over a
// batch of discovered files.
type Ingestor interface {
	// Ingest processes every discovered file and returns the batch
	// summary. Per-file failures are isolated into outcomes; the
	// returned error is non-nil only for fatal conditions
	// (configuration errors, output stream errors, cancellation).
	Ingest(ctx context.Context, opts IngestOptions) (*domain.BatchSummary, error)
}
