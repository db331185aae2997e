package services

import (
	"context"
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/tally"
)

// TallyTransport delivers encoded voucher documents to a Tally endpoint.
// Implementations perform no retries; retry is the orchestrator's job.
type TallyTransport interface {
	Deliver(ctx context.Context, doc domain.VoucherDocument, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*tally.DeliveryResult, error)
	TestConnection(ctx context.Context, cfg domain.ResolvedSyncConfig, timeout time.Duration) (*tally.DeliveryResult, error)
}

// TallySvcFacade is the synchronization orchestrator: per-kind entry points,
// the retry sweep, observability over the sync ledger and configuration
// management. Sync entry points never return an error; every failure is
// folded into the result so a broken sync path cannot block the business
// transaction that triggered it.
type TallySvcFacade interface {
	SyncSalesBill(ctx context.Context, bill domain.SalesBill, autoSync bool) dto.TallySyncResult
	SyncPurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher, autoSync bool) dto.TallySyncResult
	SyncCashEntry(ctx context.Context, entry domain.CashEntry, autoSync bool) dto.TallySyncResult
	SyncPaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt, autoSync bool) dto.TallySyncResult
	SyncSalesReturn(ctx context.Context, ret domain.SalesReturn, autoSync bool) dto.TallySyncResult

	// RetryFailedSyncs replays failed ledger entries below the attempt cap,
	// strictly sequentially, skipping transactions deleted from storage.
	RetryFailedSyncs(ctx context.Context, maxAttempts int) ([]dto.TallyRetryOutcome, error)

	GetSyncLogs(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error)
	TestConnection(ctx context.Context) dto.TallyConnectionResult

	GetConfig(ctx context.Context) (*dto.TallyConfigResponse, error)
	UpdateConfig(ctx context.Context, req dto.UpdateTallyConfigRequest, updaterUserID string) (*dto.TallyConfigResponse, error)
}
