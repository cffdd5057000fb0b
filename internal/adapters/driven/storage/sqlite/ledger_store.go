package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// runLedger implements driven.RunLedger.
type runLedger struct {
	store *Store
}

var _ driven.RunLedger = (*runLedger)(nil)

// RecordBatch stores a batch and its per-file outcomes atomically.
func (l *runLedger) RecordBatch(ctx context.Context, summary *domain.BatchSummary) error {
	if summary == nil {
		return domain.ErrInvalidInput
	}

	tx, err := l.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, output_path, discovered, processed, skipped, failed, records, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, summary.BatchID, summary.OutputPath, summary.Discovered, summary.Processed,
		summary.Skipped, summary.Failed, summary.Records,
		summary.Started.UTC().Format(time.RFC3339),
		summary.Finished.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting batch: %w", err)
	}

	for i, outcome := range summary.Outcomes {
		errText := ""
		if outcome.Err != nil {
			errText = outcome.Err.Error()
		}
		skipped := 0
		if outcome.Skipped {
			skipped = 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO file_outcomes (batch_id, position, path, document_id, file_sha256, file_type, records, skipped, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, summary.BatchID, i, outcome.Path, outcome.DocumentID, outcome.FileSHA256,
			string(outcome.FileType), outcome.Records, skipped, errText)
		if err != nil {
			return fmt.Errorf("inserting outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// ListBatches returns recorded batches, newest first.
func (l *runLedger) ListBatches(ctx context.Context, limit int) ([]domain.BatchSummary, error) {
	query := `
		SELECT id, output_path, discovered, processed, skipped, failed, records, started_at, finished_at
		FROM batches ORDER BY started_at DESC
	`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = l.store.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = l.store.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.BatchSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			b                 domain.BatchSummary
			started, finished string
		)
		if err := rows.Scan(&b.BatchID, &b.OutputPath, &b.Discovered, &b.Processed,
			&b.Skipped, &b.Failed, &b.Records, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		b.Started = parseTime(started)
		b.Finished = parseTime(finished)
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}
	return batches, nil
}

// Outcomes returns the per-file outcomes of a batch in discovery order.
func (l *runLedger) Outcomes(ctx context.Context, batchID string) ([]domain.FileOutcome, error) {
	var exists int
	row := l.store.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM batches WHERE id = ?", batchID)
	if err := row.Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking batch: %w", err)
	}
	if exists == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := l.store.db.QueryContext(ctx, `
		SELECT path, document_id, file_sha256, file_type, records, skipped, error
		FROM file_outcomes WHERE batch_id = ? ORDER BY position
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.FileOutcome //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			o        domain.FileOutcome
			fileType string
			skipped  int
			errText  string
		)
		if err := rows.Scan(&o.Path, &o.DocumentID, &o.FileSHA256, &fileType,
			&o.Records, &skipped, &errText); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.FileType = domain.FileType(fileType)
		o.Skipped = skipped != 0
		if errText != "" {
			o.Err = fmt.Errorf("%s", errText)
		}
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return outcomes, nil
}

// parseTime parses a stored RFC3339 timestamp.
// Returns zero time if the string is empty or invalid.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
