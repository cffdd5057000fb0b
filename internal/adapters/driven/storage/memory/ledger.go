// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and when persistence is disabled.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// Ensure RunLedger implements the interface.
var _ driven.RunLedger = (*RunLedger)(nil)

// RunLedger is an in-memory implementation of driven.RunLedger.
type RunLedger struct {
	mu      sync.RWMutex
	batches []domain.BatchSummary
}

// NewRunLedger creates a new in-memory run ledger.
func NewRunLedger() *RunLedger {
	return &RunLedger{}
}

// RecordBatch stores a completed batch summary.
func (l *RunLedger) RecordBatch(_ context.Context, summary *domain.BatchSummary) error {
	if summary == nil {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batches = append(l.batches, *summary)
	return nil
}

// ListBatches returns recorded batches, newest first.
func (l *RunLedger) ListBatches(_ context.Context, limit int) ([]domain.BatchSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.BatchSummary, 0, len(l.batches))
	for i := len(l.batches) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, l.batches[i])
	}
	return out, nil
}

// Outcomes returns the per-file outcomes of a batch in discovery order.
func (l *RunLedger) Outcomes(_ context.Context, batchID string) ([]domain.FileOutcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.batches {
		if l.batches[i].BatchID == batchID {
			out := make([]domain.FileOutcome, len(l.batches[i].Outcomes))
			copy(out, l.batches[i].Outcomes)
			return out, nil
		}
	}
	return nil, domain.ErrNotFound
}
