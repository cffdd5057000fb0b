// Package gzjsonl implements the record writer as a gzip-compressed
// JSON Lines stream: one self-contained JSON object per line, UTF-8,
// append-only.
package gzjsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// suffix is the canonical compressed-stream suffix, appended when the
// caller-supplied path lacks it.
const suffix = ".gz"

// Ensure the adapter implements its ports.
var (
	_ driven.RecordWriter       = (*Writer)(nil)
	_ driven.RecordWriterOpener = (*Opener)(nil)
)

// Opener creates batch-scoped writers.
type Opener struct{}

// NewOpener creates an opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open creates the output file (and any missing parent directories)
// and returns the writer owning it. The caller must Close the writer
// on every exit path.
func (Opener) Open(path string) (driven.RecordWriter, error) {
	return NewWriter(path)
}

// Writer appends records to one gzip JSONL file. A writer assumes it
// is the only writer for its path for the lifetime of a batch; it
// performs no locking of its own.
type Writer struct {
	path   string
	file   *os.File
	gz     *gzip.Writer
	buf    *bufio.Writer
	closed bool
}

// NewWriter creates the output file at path, enforcing the canonical
// suffix, and prepares the compressed stream.
func NewWriter(path string) (*Writer, error) {
	if !strings.HasSuffix(strings.ToLower(path), suffix) {
		path += suffix
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("initialising compressor: %w", err)
	}

	return &Writer{
		path: path,
		file: f,
		gz:   gz,
		buf:  bufio.NewWriter(gz),
	}, nil
}

// Path returns the output path actually in use.
func (w *Writer) Path() string {
	return w.path
}

// Write serializes the record as one JSON line and appends it.
// encoding/json never emits raw newlines inside a value, so a record
// can never span lines. Once written, a line is never rewritten.
func (w *Writer) Write(record *domain.Record) error {
	if w.closed {
		return domain.ErrWriterClosed
	}
	if record == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshalling record: %w", err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Close flushes the line buffer and the gzip stream, then closes the
// file. Safe to call once on every exit path; a closed writer rejects
// further writes. A terminated batch leaves a valid stream up to the
// last completed flush.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		w.gz.Close()
		w.file.Close()
		return fmt.Errorf("flushing records: %w", err)
	}
	if err := w.gz.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("closing compressor: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
