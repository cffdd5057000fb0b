package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/veil-cli/internal/discover"
	"github.com/custodia-labs/veil-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService coordinates the de-identification batch: discovery,
// per-file extraction, chunking, redaction, and record writing.
//
// One file is fully processed before the next begins, and exactly one
// record writer is active for the batch, so no internal locking is
// needed. A file's records are buffered and written only after the
// whole file succeeded: a failed file contributes zero records.
type IngestService struct {
	registry driven.ExtractorRegistry
	pipeline driven.UnitPipeline
	redactor driven.UnitProcessor
	opener   driven.RecordWriterOpener
	ledger   driven.RunLedger

	// Collaborators injected for testing.
	discoverFiles func(paths, exts []string) ([]string, error)
	hashFile      func(path string) (string, error)
	newID         func() string
}

// NewIngestService creates an ingest orchestrator.
// The pipeline handles paginated units (chunking then redaction); the
// redactor alone handles pre-grouped tabular buffers. The ledger is
// optional: nil disables run history.
func NewIngestService(
	registry driven.ExtractorRegistry,
	pipeline driven.UnitPipeline,
	redactor driven.UnitProcessor,
	opener driven.RecordWriterOpener,
	ledger driven.RunLedger,
) *IngestService {
	return &IngestService{
		registry:      registry,
		pipeline:      pipeline,
		redactor:      redactor,
		opener:        opener,
		ledger:        ledger,
		discoverFiles: discover.Files,
		hashFile:      discover.FileSHA256,
		newID:         uuid.NewString,
	}
}

// Ingest runs the batch. Per-file failures are folded into the
// summary; only configuration errors, output stream errors and
// cancellation abort the batch. No output file is created when
// discovery finds nothing.
func (s *IngestService) Ingest(ctx context.Context, opts driving.IngestOptions) (*domain.BatchSummary, error) {
	maxChars := opts.MaxChunkChars
	if maxChars <= 0 {
		maxChars = driving.DefaultMaxChunkChars
	}

	files, err := s.discoverFiles(opts.Inputs, s.registry.Extensions())
	if err != nil {
		return nil, fmt.Errorf("discovering inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrNoInputFiles
	}

	summary := &domain.BatchSummary{
		BatchID:    s.newID(),
		Discovered: len(files),
		Started:    time.Now(),
	}

	writer, err := s.opener.Open(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	summary.OutputPath = writer.Path()

	logger.Info("Starting batch %s: %d files -> %s", summary.BatchID, len(files), summary.OutputPath)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			writer.Close()
			return nil, err
		}
		outcome, err := s.processFile(ctx, path, maxChars, writer)
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch {
		case outcome.Failed():
			summary.Failed++
		case outcome.Skipped:
			summary.Skipped++
		default:
			summary.Processed++
			summary.Records += outcome.Records
		}
		if err != nil {
			// Output stream failure or cancellation: the
			// single-stream invariant cannot be preserved.
			writer.Close()
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}
	summary.Finished = time.Now()

	s.recordBatch(ctx, summary)

	logger.Info("Batch complete: %d processed, %d skipped, %d failed, %d records",
		summary.Processed, summary.Skipped, summary.Failed, summary.Records)
	return summary, nil
}

// processFile runs one file through extraction, chunking, redaction
// and writing. The returned error is non-nil only for batch-fatal
// conditions; per-file failures land in the outcome.
func (s *IngestService) processFile(
	ctx context.Context,
	path string,
	maxChars int,
	writer driven.RecordWriter,
) (domain.FileOutcome, error) {
	outcome := domain.FileOutcome{Path: path}

	extractor, ok := s.registry.ForPath(path)
	if !ok {
		logger.Warn("skipping %s: %v", path, domain.ErrUnsupportedType)
		outcome.Skipped = true
		return outcome, nil
	}
	outcome.FileType = extractor.FileType()

	hash, err := s.hashFile(path)
	if err != nil {
		logger.Warn("failed to process %s: %v", path, err)
		outcome.Err = err
		return outcome, nil
	}
	outcome.FileSHA256 = hash

	// Fresh per file and per run: document identity is opaque and
	// never derived from content.
	outcome.DocumentID = s.newID()

	logger.Debug("Processing: %s (%s)", path, outcome.DocumentID)

	records, err := s.collectRecords(ctx, extractor, path, outcome, maxChars)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return outcome, err
		}
		logger.Warn("failed to process %s: %v", path, err)
		outcome.Err = err
		return outcome, nil
	}

	for i := range records {
		if err := writer.Write(&records[i]); err != nil {
			return outcome, fmt.Errorf("writing record for %s: %w", path, err)
		}
	}
	outcome.Records = len(records)
	return outcome, nil
}

// collectRecords buffers every record for one file, so a mid-file
// failure leaves no partial output.
func (s *IngestService) collectRecords(
	ctx context.Context,
	extractor driven.Extractor,
	path string,
	outcome domain.FileOutcome,
	maxChars int,
) ([]domain.Record, error) {
	units, errs := extractor.Extract(ctx, path)

	provenance := domain.Record{
		DocumentID: outcome.DocumentID,
		SourcePath: path,
		FileSHA256: outcome.FileSHA256,
		FileType:   extractor.FileType(),
	}

	if extractor.FileType() == domain.FileTypeExcel {
		return s.collectGrouped(ctx, units, errs, provenance, maxChars)
	}
	return s.collectPaginated(ctx, units, errs, provenance)
}

// collectPaginated drives each page unit through the full pipeline:
// chunking first, then redaction per chunk, so stored entity offsets
// refer to each chunk's pre-redaction text.
func (s *IngestService) collectPaginated(
	ctx context.Context,
	units <-chan domain.TextUnit,
	errs <-chan error,
	provenance domain.Record,
) ([]domain.Record, error) {
	var records []domain.Record

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, err
			}

		case unit, ok := <-units:
			if !ok {
				// Extractors close the error channel after the
				// unit channel; drain any pending failure.
				if err := drainErr(errs); err != nil {
					return nil, err
				}
				return records, nil
			}
			if unit.Text == "" {
				continue
			}

			chunks, err := s.pipeline.Process(ctx, &unit)
			if err != nil {
				return nil, err
			}
			for _, chunk := range chunks {
				record := provenance
				record.PageNumber = unit.Page
				record.ChunkIndex = chunk.Index
				record.Text = chunk.Text
				record.Entities = chunk.Entities
				records = append(records, record)
			}
		}
	}
}

// collectGrouped buffers flattened row lines until the length
// threshold is reached, then redacts the whole buffer as one chunk.
// Tabular text is never paragraph-chunked; chunk indices run across
// the file.
func (s *IngestService) collectGrouped(
	ctx context.Context,
	units <-chan domain.TextUnit,
	errs <-chan error,
	provenance domain.Record,
	maxChars int,
) ([]domain.Record, error) {
	var (
		records []domain.Record
		buffer  []string
		length  int
		index   int
	)

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		text := strings.Join(buffer, "\n")
		unit := domain.TextUnit{Text: text}
		chunks, err := s.redactor.Process(ctx, &unit, []domain.Chunk{{Index: index, Text: text}})
		if err != nil {
			return err
		}
		for _, chunk := range chunks {
			record := provenance
			record.ChunkIndex = chunk.Index
			record.Text = chunk.Text
			record.Entities = chunk.Entities
			records = append(records, record)
		}
		buffer = nil
		length = 0
		index++
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, err
			}

		case unit, ok := <-units:
			if !ok {
				if err := drainErr(errs); err != nil {
					return nil, err
				}
				if err := flush(); err != nil {
					return nil, err
				}
				return records, nil
			}
			if unit.Text != "" {
				buffer = append(buffer, unit.Text)
				length += len([]rune(unit.Text)) + 1
			}
			if length >= maxChars {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// drainErr consumes the error channel after the unit channel closed.
// Extractors guarantee it closes promptly.
func drainErr(errs <-chan error) error {
	if errs == nil {
		return nil
	}
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// recordBatch persists the summary to the ledger. Advisory: failures
// are logged, never allowed to fail the batch.
func (s *IngestService) recordBatch(ctx context.Context, summary *domain.BatchSummary) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordBatch(ctx, summary); err != nil {
		logger.Warn("failed to record batch in ledger: %v", err)
	}
}
