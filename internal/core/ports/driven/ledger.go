package driven

import (
	"context"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// RunLedger persists batch runs and their per-file outcomes so past
// ingests can be audited. The ledger is advisory: ledger failures are
// logged, never allowed to fail a batch.
type RunLedger interface {
	// RecordBatch stores a completed batch summary together with
	// its per-file outcomes.
	RecordBatch(ctx context.Context, summary *domain.BatchSummary) error

	// ListBatches returns the most recent batches, newest first,
	// up to limit (all when limit <= 0).
	ListBatches(ctx context.Context, limit int) ([]domain.BatchSummary, error)

	// Outcomes returns the per-file outcomes of a batch in
	// discovery order.
	Outcomes(ctx context.Context, batchID string) ([]domain.FileOutcome, error)
}
