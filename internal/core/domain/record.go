package domain

// FileType identifies the source document family of a record.
type FileType string

// Supported source file types.
const (
	// FileTypePDF is a paginated text document.
	FileTypePDF FileType = "pdf"

	// FileTypeExcel is a tabular spreadsheet flattened to row lines.
	FileTypeExcel FileType = "excel"
)

// Record is the persisted unit of output: one de-identified chunk with
// full document provenance. Records are written once, never mutated,
// and appended in discovery order. The JSON field set is a stable
// on-disk schema that downstream consumers depend on.
type Record struct {
	// DocumentID is an opaque identifier, unique per source file and
	// freshly generated on every run. It groups all chunks derived
	// from the same file within one batch.
	DocumentID string `json:"document_id"`

	// SourcePath is the path of the source file as discovered.
	SourcePath string `json:"source_path"`

	// FileSHA256 is the whole-file content hash, 64 lowercase hex
	// characters. Provenance only; duplicate hashes are processed
	// again, never deduplicated.
	FileSHA256 string `json:"file_sha256"`

	// FileType is the source document family.
	FileType FileType `json:"file_type"`

	// PageNumber is the 1-based page for paginated sources and null
	// for flattened tabular sources.
	PageNumber *int `json:"page_number"`

	// ChunkIndex is the chunk's ordinal within its unit, from 0.
	ChunkIndex int `json:"chunk_index"`

	// Text is the redacted chunk text.
	Text string `json:"text"`

	// Entities are the detected spans, ordered by ascending start
	// offset. Offsets refer to the pre-redaction chunk text.
	Entities []EntityMatch `json:"entities"`
}
