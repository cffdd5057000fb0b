// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Produces raw text units from a source file
//   - ExtractorRegistry: Selects the extractor for a file path
//   - RecordWriter: Appends records to the compressed output stream
//   - RecordWriterOpener: Opens a writer scoped to one batch
//   - UnitProcessor / UnitPipeline: Chunking and redaction stages
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunLedger: Batch and per-file outcome persistence. Without it,
//     no run history is recorded.
//   - ConfigStore: Application configuration. Without it, built-in
//     defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
