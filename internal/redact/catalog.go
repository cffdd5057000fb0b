// Package redact detects PII spans in text and rewrites them with
// deterministic, type-scoped pseudonymous tokens.
//
// Detection is a single regex pass per category over the raw text.
// Replacement tokens are keyed HMAC digests, so the same secret,
// category and raw value always produce the same token, across runs
// and across documents.
package redact

import (
	"regexp"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// Matcher pairs a detection category with its compiled pattern.
type Matcher struct {
	Category domain.Category
	Pattern  *regexp.Regexp
}

// Catalog is an immutable, ordered list of category matchers.
// Iteration order is fixed at construction time and must stay
// deterministic across runs: when two categories match at identical
// offsets, catalog order decides which token lands in the output.
type Catalog struct {
	matchers []Matcher
}

// NewCatalog builds a catalog from the given matchers. The slice is
// copied; the catalog never mutates after construction.
func NewCatalog(matchers []Matcher) *Catalog {
	c := &Catalog{matchers: make([]Matcher, len(matchers))}
	copy(c.matchers, matchers)
	return c
}

// DefaultCatalog returns the canonical six-category catalog in its
// fixed order. The patterns are load-bearing for token stability:
// changing one changes the match set and therefore the token stream
// for an existing corpus.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Matcher{
		{domain.CategoryEmail, regexp.MustCompile(`[a-zA-Z0-9_.+\-]+@[a-zA-Z0-9\-]+\.[a-zA-Z0-9\-.]+`)},
		{domain.CategoryPhone, regexp.MustCompile(`(?:(?:\+?\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)[\s.-]?|\d{2,4}[\s.-])?\d{3,4}[\s.-]?\d{3,4})`)},
		{domain.CategoryIPAddress, regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d?\d)(?:\.|$)){4}\b`)},
		{domain.CategoryCreditCard, regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)},
		{domain.CategorySSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
		{domain.CategoryDate, regexp.MustCompile(`\b(?:\d{1,2}[\-/]\d{1,2}[\-/]\d{2,4}|\d{4}[\-/]\d{1,2}[\-/]\d{1,2})\b`)},
	})
}

// Matchers returns the catalog contents in iteration order.
func (c *Catalog) Matchers() []Matcher {
	out := make([]Matcher, len(c.matchers))
	copy(out, c.matchers)
	return out
}

// Len returns the number of registered categories.
func (c *Catalog) Len() int {
	return len(c.matchers)
}

// FindAll runs every category's matcher independently over text and
// returns all matches in catalog order. Within one category the match
// set is maximal and non-overlapping (leftmost-first regexp
// semantics); matches from different categories may overlap each
// other. Offsets are byte offsets into text. Matching runs fresh on
// every call; the catalog holds no per-call state.
func (c *Catalog) FindAll(text string) []domain.EntityMatch {
	var matches []domain.EntityMatch
	for _, m := range c.matchers {
		for _, loc := range m.Pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, domain.EntityMatch{
				Type:  m.Category,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}
	return matches
}
