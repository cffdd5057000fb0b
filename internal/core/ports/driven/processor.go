package driven

import (
	"context"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// UnitProcessor processes a text unit to produce or transform chunks.
// Processors are chained in a pipeline (chunking, then redaction).
type UnitProcessor interface {
	// Name returns the processor name for logging.
	Name() string

	// Process takes a unit and returns chunks.
	// If the processor creates chunks (the chunker), it receives nil
	// and returns new chunks. If it transforms chunks (the
	// redactor), it receives and returns them.
	Process(ctx context.Context, unit *domain.TextUnit, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// UnitPipeline chains multiple UnitProcessors.
type UnitPipeline interface {
	// Process runs the unit through all processors in order and
	// returns the final chunks.
	Process(ctx context.Context, unit *domain.TextUnit) ([]domain.Chunk, error)
}
