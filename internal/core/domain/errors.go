package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingSecret indicates no de-identification secret was
	// supplied. Fatal configuration error: the batch aborts before
	// any output is opened.
	ErrMissingSecret = errors.New("missing de-identification secret")

	// ErrNoInputFiles indicates discovery found no supported files.
	// Fatal configuration error, same contract as ErrMissingSecret.
	ErrNoInputFiles = errors.New("no input files found")

	// ErrUnsupportedType indicates a file extension no extractor
	// handles. Per-file: the file is skipped, the batch continues.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrWriterClosed indicates a write was attempted after the
	// record writer was closed.
	ErrWriterClosed = errors.New("record writer closed")
)

// IsConfiguration reports whether err is a fatal configuration error,
// which callers surface with a distinct exit status.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrMissingSecret) || errors.Is(err, ErrNoInputFiles)
}
