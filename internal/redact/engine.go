package redact

import (
	"sort"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// Engine runs the catalog over a text span and rewrites every match
// with its token. The catalog and pseudonymiser are stateless per
// call, so one engine is safely shared across a whole batch.
type Engine struct {
	catalog *Catalog
	pseudo  *Pseudonymiser
}

// NewEngine creates an engine over the given catalog and
// pseudonymiser.
func NewEngine(catalog *Catalog, pseudo *Pseudonymiser) *Engine {
	return &Engine{catalog: catalog, pseudo: pseudo}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// replacement is one pending substitution in original-text offsets.
type replacement struct {
	start, end int
	token      string
}

// Anonymise rewrites all detected spans in text with their tokens and
// returns the rewritten text plus the matches sorted ascending by
// start offset. Offsets refer to the original text.
//
// Replacements are applied in descending start order so earlier
// offsets stay valid while later spans are substituted: token length
// differs from span length. Overlapping matches from different
// categories are deliberately NOT merged; both replacements are
// applied independently, which can corrupt the overlapping region.
// Resolving overlaps would change the token stream for any historical
// corpus, so it must only ever arrive as an explicit versioned
// policy. Equal start offsets keep catalog order via stable sorting.
//
// Empty input returns itself with an empty (non-nil) entity list.
func (e *Engine) Anonymise(text string) (string, []domain.EntityMatch) {
	entities := []domain.EntityMatch{}
	if text == "" {
		return text, entities
	}

	matches := e.catalog.FindAll(text)
	if len(matches) == 0 {
		return text, entities
	}

	replacements := make([]replacement, 0, len(matches))
	for _, m := range matches {
		replacements = append(replacements, replacement{
			start: m.Start,
			end:   m.End,
			token: e.pseudo.Token(m.Type, text[m.Start:m.End]),
		})
	}

	sort.SliceStable(replacements, func(i, j int) bool {
		return replacements[i].start > replacements[j].start
	})
	rewritten := text
	for _, r := range replacements {
		rewritten = rewritten[:r.start] + r.token + rewritten[r.end:]
	}

	entities = append(entities, matches...)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return rewritten, entities
}
