package domain

// TextUnit is one raw text unit produced by an extractor: a page of a
// paginated document, or a single flattened row line of a workbook.
// It is the extractor's output before chunking and redaction.
type TextUnit struct {
	// Page is the 1-based page number for paginated sources.
	// Nil for flattened tabular sources, which carry no pagination.
	Page *int

	// Text is the raw extracted text. May be empty when a page
	// yielded no text; extractors yield empty text rather than
	// aborting the whole file on a recoverable per-page failure.
	Text string
}

// Chunk is an ordered, contiguous piece of a unit's text. Chunks are
// ephemeral: they exist between the processing pipeline and the record
// writer and are never persisted directly.
type Chunk struct {
	// Index is the ordinal position within the unit, starting at 0.
	Index int

	// Text is the chunk content. Before the redactor stage this is
	// the raw chunk text; after it, the redacted form.
	Text string

	// Entities are the PII spans detected in the pre-redaction Text.
	Entities []EntityMatch
}
