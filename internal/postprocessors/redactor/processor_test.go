package redactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/redact"
)

func newTestProcessor() *Processor {
	return New(redact.NewEngine(redact.DefaultCatalog(), redact.NewPseudonymiser("k1")))
}

func TestProcessor_Process_RedactsChunks(t *testing.T) {
	p := newTestProcessor()
	chunks := []domain.Chunk{
		{Index: 0, Text: "mail a@b.com"},
		{Index: 1, Text: "nothing here"},
	}

	got, err := p.Process(context.Background(), nil, chunks)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.NotContains(t, got[0].Text, "a@b.com")
	assert.Contains(t, got[0].Text, "<EMAIL_ADDRESS:")
	require.Len(t, got[0].Entities, 1)
	assert.Equal(t, domain.CategoryEmail, got[0].Entities[0].Type)

	// Offsets index the chunk's pre-redaction text.
	assert.Equal(t, 5, got[0].Entities[0].Start)
	assert.Equal(t, 12, got[0].Entities[0].End)

	assert.Equal(t, "nothing here", got[1].Text)
	require.NotNil(t, got[1].Entities)
	assert.Empty(t, got[1].Entities)
}

func TestProcessor_Process_PreservesIndices(t *testing.T) {
	p := newTestProcessor()
	chunks := []domain.Chunk{
		{Index: 3, Text: "ssn 123-45-6789"},
	}

	got, err := p.Process(context.Background(), nil, chunks)

	require.NoError(t, err)
	assert.Equal(t, 3, got[0].Index)
}

func TestProcessor_Process_EmptyInput(t *testing.T) {
	p := newTestProcessor()

	got, err := p.Process(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "redactor", newTestProcessor().Name())
}
