package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

func newTestEngine(secret string) *Engine {
	return NewEngine(DefaultCatalog(), NewPseudonymiser(secret))
}

func TestEngine_Anonymise_EmailAndPhone(t *testing.T) {
	engine := newTestEngine("k1")
	text := "Contact me at a@b.com or 555-123-4567."

	rewritten, entities := engine.Anonymise(text)

	assert.Equal(t,
		"Contact me at <EMAIL_ADDRESS:62130e3b6e9153dc> or <PHONE_NUMBER:e6f1795163480f7d>.",
		rewritten)

	require.Len(t, entities, 2)
	assert.Equal(t, domain.CategoryEmail, entities[0].Type)
	assert.Equal(t, "a@b.com", text[entities[0].Start:entities[0].End])
	assert.Equal(t, domain.CategoryPhone, entities[1].Type)
	assert.Equal(t, "555-123-4567", text[entities[1].Start:entities[1].End])
}

func TestEngine_Anonymise_Deterministic(t *testing.T) {
	engine := newTestEngine("k1")
	text := "mail a@b.com and again a@b.com"

	first, _ := engine.Anonymise(text)
	second, _ := engine.Anonymise(text)

	assert.Equal(t, first, second)

	// The same value yields the same token at both positions.
	token := NewPseudonymiser("k1").Token(domain.CategoryEmail, "a@b.com")
	assert.Equal(t, 2, strings.Count(first, token))
}

func TestEngine_Anonymise_EmptyText(t *testing.T) {
	engine := newTestEngine("k1")

	rewritten, entities := engine.Anonymise("")

	assert.Equal(t, "", rewritten)
	require.NotNil(t, entities)
	assert.Empty(t, entities)
}

func TestEngine_Anonymise_NoMatches(t *testing.T) {
	engine := newTestEngine("k1")
	text := "nothing sensitive here"

	rewritten, entities := engine.Anonymise(text)

	assert.Equal(t, text, rewritten)
	require.NotNil(t, entities)
	assert.Empty(t, entities)
}

func TestEngine_Anonymise_OffsetsReferOriginalText(t *testing.T) {
	engine := newTestEngine("k1")
	text := "ssn 123-45-6789 mail a@b.com"

	rewritten, entities := engine.Anonymise(text)

	require.Len(t, entities, 2)
	// Entities are sorted ascending by start, independent of catalog
	// order.
	assert.Equal(t, domain.CategorySSN, entities[0].Type)
	assert.Equal(t, 4, entities[0].Start)
	assert.Equal(t, 15, entities[0].End)
	assert.Equal(t, domain.CategoryEmail, entities[1].Type)
	assert.Equal(t, 21, entities[1].Start)
	assert.Equal(t, 28, entities[1].End)

	// Offsets index the pre-redaction text, not the rewritten one.
	assert.Equal(t, "123-45-6789", text[entities[0].Start:entities[0].End])
	assert.NotContains(t, rewritten, "123-45-6789")
	assert.NotContains(t, rewritten, "a@b.com")
}

// Overlapping matches from different categories are both replaced
// independently. The overlapping region ends up garbled; that is the
// pinned behaviour, because merging would alter the token stream for
// existing corpora.
func TestEngine_Anonymise_OverlappingCategories(t *testing.T) {
	engine := newTestEngine("k1")
	pseudo := NewPseudonymiser("k1")
	text := "4111 1111 1111 1111"

	rewritten, entities := engine.Anonymise(text)

	require.Len(t, entities, 2)
	assert.Equal(t, domain.CategoryPhone, entities[0].Type)
	assert.Equal(t, 0, entities[0].Start)
	assert.Equal(t, 14, entities[0].End)
	assert.Equal(t, domain.CategoryCreditCard, entities[1].Type)
	assert.Equal(t, 0, entities[1].Start)
	assert.Equal(t, 19, entities[1].End)

	// Equal start offsets apply in catalog order, so the card token
	// lands last and wins the head of the string.
	cardToken := pseudo.Token(domain.CategoryCreditCard, text)
	assert.True(t, strings.HasPrefix(rewritten, cardToken))
	assert.True(t, strings.HasSuffix(rewritten, " 1111"))
}

func TestEngine_Anonymise_DifferentSecretsDiverge(t *testing.T) {
	text := "mail a@b.com"

	first, _ := newTestEngine("k1").Anonymise(text)
	second, _ := newTestEngine("k2").Anonymise(text)

	assert.NotEqual(t, first, second)
}

func TestEngine_Catalog(t *testing.T) {
	catalog := DefaultCatalog()
	engine := NewEngine(catalog, NewPseudonymiser("k1"))

	assert.Same(t, catalog, engine.Catalog())
}
