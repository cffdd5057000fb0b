// Package chunker provides a boundary-aware bounded text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// DefaultMaxChars is the default maximum number of characters per chunk.
const DefaultMaxChars = 4000

// separator joins paragraphs within a chunk and is the rejoin string
// for consumers reassembling a unit from its chunks.
const separator = "\n\n"

// Ensure Processor implements the interface.
var _ driven.UnitProcessor = (*Processor)(nil)

// Processor splits unit text into bounded chunks, preferring paragraph
// boundaries and hard-splitting only paragraphs that exceed the bound
// on their own. It implements the UnitProcessor interface.
type Processor struct {
	maxChars int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxChars sets the chunk size bound in characters.
func WithMaxChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxChars = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxChars: DefaultMaxChars,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Separator returns the paragraph joiner used within chunks.
func Separator() string {
	return separator
}

// Process splits the unit text into chunks.
// Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, unit *domain.TextUnit, _ []domain.Chunk) ([]domain.Chunk, error) {
	if unit == nil {
		return nil, domain.ErrInvalidInput
	}

	pieces := Split(unit.Text, p.maxChars)
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, text := range pieces {
		chunks = append(chunks, domain.Chunk{
			Index: i,
			Text:  text,
		})
	}
	return chunks, nil
}

// Split divides text into chunks of at most maxChars characters.
//
// Line endings are normalized to LF and the text is split on
// blank-line boundaries; whitespace-only paragraphs are discarded.
// Paragraphs accumulate into a pending buffer that is flushed as one
// chunk (joined by a blank line, trimmed) just before it would
// overflow. A single paragraph longer than maxChars flushes the
// buffer first, then is hard-split into consecutive maxChars-sized
// pieces, bypassing the buffer. Lengths are counted in runes so a
// hard split never cuts a UTF-8 sequence.
//
// Every call is independent and deterministic for the same input.
func Split(text string, maxChars int) []string {
	if text == "" || maxChars < 1 {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, separator) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var (
		chunks  []string
		pending []string
		length  int
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if joined := strings.TrimSpace(strings.Join(pending, separator)); joined != "" {
			chunks = append(chunks, joined)
		}
		pending = nil
		length = 0
	}

	for _, para := range paragraphs {
		runes := []rune(para)
		if len(runes) > maxChars {
			// Oversize paragraph: hard split, bypassing the buffer.
			for start := 0; start < len(runes); start += maxChars {
				end := min(start+maxChars, len(runes))
				piece := string(runes[start:end])
				if strings.TrimSpace(piece) == "" {
					continue
				}
				flush()
				chunks = append(chunks, piece)
			}
			continue
		}

		sep := 0
		if len(pending) > 0 {
			sep = len(separator)
		}
		if length+len(runes)+sep > maxChars {
			flush()
			sep = 0
		}
		pending = append(pending, para)
		length += len(runes) + sep
	}
	flush()

	return chunks
}
