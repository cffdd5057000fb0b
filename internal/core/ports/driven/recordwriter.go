package driven

import "github.com/custodia-labs/veil-cli/internal/core/domain"

// RecordWriter appends records to a compressed, line-oriented output
// stream. One record becomes exactly one line; lines are never
// rewritten or removed. A writer is owned by a single batch: writes
// from multiple independent writers to the same path are not safe.
type RecordWriter interface {
	// Write serializes the record and appends it as one line.
	// A write failure is not recoverable: the batch must abort,
	// since the single-stream invariant cannot be preserved.
	Write(record *domain.Record) error

	// Path returns the output path actually in use, after canonical
	// suffix enforcement.
	Path() string

	// Close flushes and closes the underlying stream. It must be
	// called on every exit path, including early termination.
	Close() error
}

// RecordWriterOpener acquires a RecordWriter for the duration of a
// batch. Opening is deferred until configuration is validated, so a
// fatal configuration error never creates an output file.
type RecordWriterOpener interface {
	// Open creates the output stream at path, appending the
	// canonical compression suffix when absent.
	Open(path string) (RecordWriter, error)
}
