package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
)

// PgxSyncLogRepository is the persistent sync ledger. The single-row-per-
// transaction invariant is enforced by a UNIQUE constraint on
// (transaction_type, transaction_id); every attempt lands as an upsert
// against that key.
type PgxSyncLogRepository struct {
	BaseRepository
}

func newPgxSyncLogRepository(pool *pgxpool.Pool) portsrepo.SyncLogRepositoryFacade {
	return &PgxSyncLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncLogRepositoryFacade = (*PgxSyncLogRepository)(nil)

// RecordAttempt upserts the ledger row for one attempt: a fresh row starts at
// attempt count 1, a conflict increments the stored count and overwrites
// status, error, response and timestamp. Concurrent attempts on the same
// transaction both land; the later one wins the status.
func (r *PgxSyncLogRepository) RecordAttempt(ctx context.Context, attempt portsrepo.SyncAttempt) (*domain.SyncLogEntry, error) {
	query := `
		INSERT INTO tally_sync_logs (
			sync_log_id, transaction_type, transaction_id, reference_no,
			status, attempt_count, last_attempt_at, last_error, last_response, created_at
		)
		VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $8, $6)
		ON CONFLICT (transaction_type, transaction_id) DO UPDATE SET
			reference_no    = EXCLUDED.reference_no,
			status          = EXCLUDED.status,
			attempt_count   = tally_sync_logs.attempt_count + 1,
			last_attempt_at = EXCLUDED.last_attempt_at,
			last_error      = EXCLUDED.last_error,
			last_response   = EXCLUDED.last_response
		RETURNING sync_log_id, transaction_type, transaction_id, reference_no,
		          status, attempt_count, last_attempt_at, last_error, last_response, created_at;
	`
	var entry domain.SyncLogEntry
	err := r.Pool.QueryRow(ctx, query,
		uuid.NewString(), attempt.Type, attempt.ID, attempt.ReferenceNo,
		attempt.Status, time.Now(), attempt.Error, attempt.Response,
	).Scan(
		&entry.SyncLogID, &entry.TransactionType, &entry.TransactionID, &entry.ReferenceNo,
		&entry.Status, &entry.AttemptCount, &entry.LastAttemptAt, &entry.LastError, &entry.LastResponse, &entry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to record sync attempt", err)
	}
	return &entry, nil
}

// ListFailed returns failed rows still below the attempt cap, oldest attempt
// first so the longest-waiting transaction is retried first.
func (r *PgxSyncLogRepository) ListFailed(ctx context.Context, maxAttempts int) ([]domain.SyncLogEntry, error) {
	query := `
		SELECT sync_log_id, transaction_type, transaction_id, reference_no,
		       status, attempt_count, last_attempt_at, last_error, last_response, created_at
		FROM tally_sync_logs
		WHERE status = 'failed' AND attempt_count < $1
		ORDER BY last_attempt_at ASC;
	`
	return r.queryEntries(ctx, query, maxAttempts)
}

// ListRecent returns up to limit rows, most recent attempt first, optionally
// filtered by status.
func (r *PgxSyncLogRepository) ListRecent(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error) {
	if status != nil {
		query := `
			SELECT sync_log_id, transaction_type, transaction_id, reference_no,
			       status, attempt_count, last_attempt_at, last_error, last_response, created_at
			FROM tally_sync_logs
			WHERE status = $1
			ORDER BY last_attempt_at DESC
			LIMIT $2;
		`
		return r.queryEntries(ctx, query, *status, limit)
	}
	query := `
		SELECT sync_log_id, transaction_type, transaction_id, reference_no,
		       status, attempt_count, last_attempt_at, last_error, last_response, created_at
		FROM tally_sync_logs
		ORDER BY last_attempt_at DESC
		LIMIT $1;
	`
	return r.queryEntries(ctx, query, limit)
}

func (r *PgxSyncLogRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]domain.SyncLogEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sync logs", err)
	}
	defer rows.Close()

	var entries []domain.SyncLogEntry
	for rows.Next() {
		var e domain.SyncLogEntry
		if err := rows.Scan(
			&e.SyncLogID, &e.TransactionType, &e.TransactionID, &e.ReferenceNo,
			&e.Status, &e.AttemptCount, &e.LastAttemptAt, &e.LastError, &e.LastResponse, &e.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sync log", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading sync logs", err)
	}
	return entries, nil
}
