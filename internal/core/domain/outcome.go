package domain

import "time"

// FileOutcome is the result of processing one discovered file.
// Exactly one of the three states holds: written (Err nil, Skipped
// false), skipped (Skipped true, e.g. unrecognized extension), or
// failed (Err non-nil). Failed files contribute zero records.
type FileOutcome struct {
	// Path is the discovered file path.
	Path string

	// DocumentID is the identifier assigned to the file, empty when
	// the file was skipped before one was generated.
	DocumentID string

	// FileSHA256 is the content hash, empty when hashing was never
	// reached.
	FileSHA256 string

	// FileType is the resolved type, empty for skipped files.
	FileType FileType

	// Records is the number of records written for the file.
	Records int

	// Skipped is true when the file was passed over with a
	// diagnostic rather than processed (unsupported extension).
	Skipped bool

	// Err is the failure that caused the file to be abandoned.
	Err error
}

// Failed reports whether processing the file failed.
func (o FileOutcome) Failed() bool {
	return o.Err != nil
}

// BatchSummary is the fold over all per-file outcomes of one batch.
type BatchSummary struct {
	// BatchID identifies the run, generated fresh per batch.
	BatchID string

	// OutputPath is the record stream location actually written,
	// after canonical suffix enforcement.
	OutputPath string

	// Discovered is the number of files found under the inputs.
	Discovered int

	// Processed is the number of files fully written.
	Processed int

	// Skipped is the number of files passed over with a diagnostic.
	Skipped int

	// Failed is the number of files abandoned due to an error.
	Failed int

	// Records is the total number of records written.
	Records int

	// Outcomes holds the per-file results in discovery order.
	Outcomes []FileOutcome

	// Started and Finished bound the batch wall-clock time.
	Started  time.Time
	Finished time.Time
}
