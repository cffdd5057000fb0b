// Package postprocessors provides unit content processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.UnitPipeline = (*Pipeline)(nil)

// Pipeline chains multiple UnitProcessors and runs them in order.
// It implements the UnitPipeline interface.
type Pipeline struct {
	processors []driven.UnitProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.UnitProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the unit through all processors in order.
// The first processor receives nil chunks and should create them.
// Subsequent processors receive and may transform the chunks.
func (p *Pipeline) Process(ctx context.Context, unit *domain.TextUnit) ([]domain.Chunk, error) {
	if unit == nil {
		return nil, fmt.Errorf("unit is nil")
	}

	var chunks []domain.Chunk

	for _, processor := range p.processors {
		var err error
		chunks, err = processor.Process(ctx, unit, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return chunks, nil
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
