package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SalesRepo:      newPgxSalesRepository(dbPool),
		PurchaseRepo:   newPgxPurchaseRepository(dbPool),
		CashRepo:       newPgxCashRepository(dbPool),
		SyncLogRepo:    newPgxSyncLogRepository(dbPool),
		SyncConfigRepo: newPgxSyncConfigRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
