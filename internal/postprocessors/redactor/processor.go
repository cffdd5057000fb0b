// Package redactor provides the PII redaction processing stage.
package redactor

import (
	"context"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veil-cli/internal/redact"
)

// Ensure Processor implements the interface.
var _ driven.UnitProcessor = (*Processor)(nil)

// Processor rewrites each chunk's text with the redaction engine and
// attaches the detected entities. It implements the UnitProcessor
// interface and is placed after the chunker, so entity offsets refer
// to each chunk's pre-redaction text.
type Processor struct {
	engine *redact.Engine
}

// New creates a redactor processor over the given engine.
func New(engine *redact.Engine) *Processor {
	return &Processor{engine: engine}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "redactor"
}

// Process redacts every chunk in place. The unit is not consulted;
// detection runs on chunk text so stored offsets match the chunk the
// record carries.
func (p *Processor) Process(_ context.Context, _ *domain.TextUnit, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		redacted, entities := p.engine.Anonymise(chunks[i].Text)
		chunks[i].Text = redacted
		chunks[i].Entities = entities
	}
	return chunks, nil
}
