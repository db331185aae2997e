package repositories

import (
	"context"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// SyncAttempt is the input to one sync ledger write.
type SyncAttempt struct {
	Type        domain.TransactionKind
	ID          string
	ReferenceNo string
	Status      domain.SyncStatus
	Error       *string
	Response    *string
}

// SyncLogRepositoryFacade is the persistent sync ledger: the source of
// idempotency and retry eligibility for the Tally pipeline.
type SyncLogRepositoryFacade interface {
	// RecordAttempt upserts by (Type, ID): inserts a fresh row with attempt
	// count 1, or increments the attempt count and overwrites
	// status/error/response/timestamp. Never creates a second row for the
	// same key.
	RecordAttempt(ctx context.Context, attempt SyncAttempt) (*domain.SyncLogEntry, error)

	// ListFailed returns failed rows with attempt count below the cap,
	// oldest attempt first.
	ListFailed(ctx context.Context, maxAttempts int) ([]domain.SyncLogEntry, error)

	// ListRecent returns up to limit rows, most recent attempt first,
	// optionally filtered by status.
	ListRecent(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error)
}

// SyncConfigRepositoryFacade stores the singleton Tally connection record.
type SyncConfigRepositoryFacade interface {
	// FindConfig returns the stored configuration, or apperrors.ErrNotFound
	// when it was never configured.
	FindConfig(ctx context.Context) (*domain.SyncConfig, error)

	// SaveConfig upserts the singleton row.
	SaveConfig(ctx context.Context, cfg domain.SyncConfig) error
}
