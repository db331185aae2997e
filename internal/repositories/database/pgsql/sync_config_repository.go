package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
)

// PgxSyncConfigRepository stores the singleton Tally connection record. The
// table carries a fixed primary key so there can only ever be one row.
type PgxSyncConfigRepository struct {
	BaseRepository
}

func newPgxSyncConfigRepository(pool *pgxpool.Pool) portsrepo.SyncConfigRepositoryFacade {
	return &PgxSyncConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncConfigRepositoryFacade = (*PgxSyncConfigRepository)(nil)

// FindConfig returns the stored configuration, or apperrors.ErrNotFound when
// Tally sync was never configured.
func (r *PgxSyncConfigRepository) FindConfig(ctx context.Context) (*domain.SyncConfig, error) {
	query := `
		SELECT tally_url, company_name, enabled, sync_mode, auto_sync_enabled,
		       connection_type, api_key_cipher, api_secret_cipher, updated_at, updated_by
		FROM tally_sync_config
		WHERE config_id = 1;
	`
	var cfg domain.SyncConfig
	var mode string
	err := r.Pool.QueryRow(ctx, query).Scan(
		&cfg.TallyURL, &cfg.CompanyName, &cfg.Enabled, &mode, &cfg.AutoSyncEnabled,
		&cfg.ConnectionType, &cfg.APIKeyCipher, &cfg.APISecretCipher, &cfg.UpdatedAt, &cfg.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load tally configuration", err)
	}
	cfg.SyncMode = domain.SyncMode(mode)
	return &cfg, nil
}

// SaveConfig upserts the singleton row.
func (r *PgxSyncConfigRepository) SaveConfig(ctx context.Context, cfg domain.SyncConfig) error {
	query := `
		INSERT INTO tally_sync_config (
			config_id, tally_url, company_name, enabled, sync_mode, auto_sync_enabled,
			connection_type, api_key_cipher, api_secret_cipher, updated_at, updated_by
		)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (config_id) DO UPDATE SET
			tally_url         = EXCLUDED.tally_url,
			company_name      = EXCLUDED.company_name,
			enabled           = EXCLUDED.enabled,
			sync_mode         = EXCLUDED.sync_mode,
			auto_sync_enabled = EXCLUDED.auto_sync_enabled,
			connection_type   = EXCLUDED.connection_type,
			api_key_cipher    = EXCLUDED.api_key_cipher,
			api_secret_cipher = EXCLUDED.api_secret_cipher,
			updated_at        = EXCLUDED.updated_at,
			updated_by        = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		cfg.TallyURL, cfg.CompanyName, cfg.Enabled, string(cfg.SyncMode), cfg.AutoSyncEnabled,
		cfg.ConnectionType, cfg.APIKeyCipher, cfg.APISecretCipher, cfg.UpdatedAt, cfg.UpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save tally configuration", err)
	}
	return nil
}
