// Package domain defines the core business entities for Veil.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: The persisted unit of output, one per chunk
//   - EntityMatch: A detected PII span with byte offsets
//   - TextUnit: A raw extracted text unit (page or row line)
//   - Chunk: A bounded piece of a unit's text
//   - FileOutcome / BatchSummary: Per-file and batch-level results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
