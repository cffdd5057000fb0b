package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

func sampleBatch(id string) *domain.BatchSummary {
	return &domain.BatchSummary{
		BatchID:    id,
		OutputPath: "/out/" + id + ".jsonl.gz",
		Discovered: 2,
		Processed:  1,
		Failed:     1,
		Records:    3,
		Outcomes: []domain.FileOutcome{
			{Path: "/in/a.pdf", DocumentID: "doc-1", FileType: domain.FileTypePDF, Records: 3},
			{Path: "/in/bad.pdf", FileType: domain.FileTypePDF, Err: fmt.Errorf("corrupt")},
		},
	}
}

func TestRunLedger_RecordAndList(t *testing.T) {
	ledger := NewRunLedger()
	ctx := context.Background()

	require.NoError(t, ledger.RecordBatch(ctx, sampleBatch("b1")))
	require.NoError(t, ledger.RecordBatch(ctx, sampleBatch("b2")))

	batches, err := ledger.ListBatches(ctx, 0)

	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "b2", batches[0].BatchID, "newest first")
	assert.Equal(t, "b1", batches[1].BatchID)
}

func TestRunLedger_ListBatches_Limit(t *testing.T) {
	ledger := NewRunLedger()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, ledger.RecordBatch(ctx, sampleBatch(fmt.Sprintf("b%d", i))))
	}

	batches, err := ledger.ListBatches(ctx, 2)

	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "b5", batches[0].BatchID)
	assert.Equal(t, "b4", batches[1].BatchID)
}

func TestRunLedger_ListBatches_Empty(t *testing.T) {
	ledger := NewRunLedger()

	batches, err := ledger.ListBatches(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestRunLedger_Outcomes(t *testing.T) {
	ledger := NewRunLedger()
	ctx := context.Background()

	require.NoError(t, ledger.RecordBatch(ctx, sampleBatch("b1")))

	outcomes, err := ledger.Outcomes(ctx, "b1")

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "/in/a.pdf", outcomes[0].Path)
	assert.False(t, outcomes[0].Failed())
	assert.True(t, outcomes[1].Failed())
}

func TestRunLedger_Outcomes_NotFound(t *testing.T) {
	ledger := NewRunLedger()

	_, err := ledger.Outcomes(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunLedger_RecordBatch_NilSummary(t *testing.T) {
	ledger := NewRunLedger()

	err := ledger.RecordBatch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
