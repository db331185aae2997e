package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
	"github.com/goldloom/jewelshop_backend/internal/tally"
	"github.com/goldloom/jewelshop_backend/pkg/crypto"
)

// DefaultRetryAttemptCap is the attempt count at which a failed sync stops
// being eligible for the retry sweep.
const DefaultRetryAttemptCap = 5

// tallySyncService orchestrates the encode-deliver-record pipeline for every
// transaction kind. Configuration is re-read from storage on every call so an
// operator change takes effect without a restart.
type tallySyncService struct {
	syncLogRepo    portsrepo.SyncLogRepositoryFacade
	syncConfigRepo portsrepo.SyncConfigRepositoryFacade
	salesRepo      portsrepo.SalesRepositoryFacade
	purchaseRepo   portsrepo.PurchaseRepositoryFacade
	cashRepo       portsrepo.CashRepositoryFacade
	transport      portssvc.TallyTransport
	secrets        *crypto.SecretBox
}

// NewTallySyncService creates the sync orchestrator.
func NewTallySyncService(
	syncLogRepo portsrepo.SyncLogRepositoryFacade,
	syncConfigRepo portsrepo.SyncConfigRepositoryFacade,
	salesRepo portsrepo.SalesRepositoryFacade,
	purchaseRepo portsrepo.PurchaseRepositoryFacade,
	cashRepo portsrepo.CashRepositoryFacade,
	transport portssvc.TallyTransport,
	secrets *crypto.SecretBox,
) portssvc.TallySvcFacade {
	return &tallySyncService{
		syncLogRepo:    syncLogRepo,
		syncConfigRepo: syncConfigRepo,
		salesRepo:      salesRepo,
		purchaseRepo:   purchaseRepo,
		cashRepo:       cashRepo,
		transport:      transport,
		secrets:        secrets,
	}
}

var _ portssvc.TallySvcFacade = (*tallySyncService)(nil)

// syncJob is one fully described unit of work for the pipeline: what kind of
// transaction it is, how to identify it in the ledger and how to encode it.
type syncJob struct {
	kind        domain.TransactionKind
	id          string
	referenceNo string
	encode      func() (domain.VoucherDocument, error)
}

func (s *tallySyncService) SyncSalesBill(ctx context.Context, bill domain.SalesBill, autoSync bool) dto.TallySyncResult {
	return s.run(ctx, syncJob{
		kind:        domain.KindSalesBill,
		id:          bill.BillID,
		referenceNo: bill.BillNo,
		encode:      func() (domain.VoucherDocument, error) { return tally.EncodeSalesBill(bill) },
	}, autoSync)
}

func (s *tallySyncService) SyncPurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher, autoSync bool) dto.TallySyncResult {
	return s.run(ctx, syncJob{
		kind:        domain.KindPurchaseVoucher,
		id:          voucher.VoucherID,
		referenceNo: voucher.VoucherNo,
		encode:      func() (domain.VoucherDocument, error) { return tally.EncodePurchaseVoucher(voucher) },
	}, autoSync)
}

func (s *tallySyncService) SyncCashEntry(ctx context.Context, entry domain.CashEntry, autoSync bool) dto.TallySyncResult {
	return s.run(ctx, syncJob{
		kind:        domain.KindCashEntry,
		id:          entry.EntryID,
		referenceNo: entry.EntryNo,
		encode:      func() (domain.VoucherDocument, error) { return tally.EncodeCashEntry(entry) },
	}, autoSync)
}

func (s *tallySyncService) SyncPaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt, autoSync bool) dto.TallySyncResult {
	return s.run(ctx, syncJob{
		kind:        domain.KindPaymentReceipt,
		id:          receipt.ReceiptID,
		referenceNo: receipt.ReceiptNo,
		encode:      func() (domain.VoucherDocument, error) { return tally.EncodePaymentReceipt(receipt) },
	}, autoSync)
}

func (s *tallySyncService) SyncSalesReturn(ctx context.Context, ret domain.SalesReturn, autoSync bool) dto.TallySyncResult {
	return s.run(ctx, syncJob{
		kind:        domain.KindSalesReturn,
		id:          ret.ReturnID,
		referenceNo: ret.ReturnNo,
		encode:      func() (domain.VoucherDocument, error) { return tally.EncodeSalesReturn(ret) },
	}, autoSync)
}

// run executes the pipeline for one transaction. It never returns an error:
// a sync failure must not fail the business operation that triggered it.
// When sync is disabled, or autoSync is requested against manual mode,
// nothing is delivered and nothing is written to the ledger.
func (s *tallySyncService) run(ctx context.Context, job syncJob, autoSync bool) dto.TallySyncResult {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		"tally_kind", string(job.kind),
		"transaction_id", job.id,
	)

	result := dto.TallySyncResult{
		Type:          job.kind,
		TransactionID: job.id,
		ReferenceNo:   job.referenceNo,
	}

	stored, err := s.syncConfigRepo.FindConfig(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("Tally sync not configured, skipping")
			result.Disabled = true
			return result
		}
		// The enable policy is unknown here, so no ledger row: the
		// integration may be deliberately switched off.
		logger.Error("Failed to load tally configuration", "error", err)
		msg := fmt.Sprintf("loading configuration: %v", err)
		result.Error = &msg
		return result
	}
	if !stored.Enabled || (autoSync && !s.autoSyncOn(*stored)) {
		result.Disabled = true
		return result
	}

	cfg, err := s.resolveCredentials(stored)
	if err != nil {
		logger.Error("Failed to resolve tally credentials", "error", err)
		return s.recordFailure(ctx, logger, result, job, fmt.Sprintf("resolving credentials: %v", err), nil)
	}

	doc, err := job.encode()
	if err != nil {
		logger.Error("Voucher encoding failed", "error", err)
		return s.recordFailure(ctx, logger, result, job, fmt.Sprintf("encoding voucher: %v", err), nil)
	}

	delivery, err := s.transport.Deliver(ctx, doc, *cfg, tally.DefaultDeliverTimeout)
	if err != nil {
		logger.Warn("Tally delivery failed", "error", err)
		return s.recordFailure(ctx, logger, result, job, err.Error(), nil)
	}

	raw := delivery.RawBody
	if recErr := s.record(ctx, job, domain.SyncSuccess, nil, &raw); recErr != nil {
		// The voucher reached Tally; a ledger write failure must not turn
		// that into a reported sync failure.
		logger.Error("Failed to record successful sync", "error", recErr)
	}

	logger.Info("Tally sync succeeded", "reference_no", job.referenceNo)
	result.Success = true
	result.TallyResponse = &raw
	return result
}

// recordFailure writes the failed attempt to the ledger and folds both the
// failure and any ledger write problem into the result.
func (s *tallySyncService) recordFailure(ctx context.Context, logger *slog.Logger, result dto.TallySyncResult, job syncJob, msg string, response *string) dto.TallySyncResult {
	if err := s.record(ctx, job, domain.SyncFailed, &msg, response); err != nil {
		logger.Error("Failed to record sync failure", "error", err)
	}
	result.Success = false
	result.Error = &msg
	return result
}

// record performs the single ledger write of an attempt.
func (s *tallySyncService) record(ctx context.Context, job syncJob, status domain.SyncStatus, errMsg, response *string) error {
	_, err := s.syncLogRepo.RecordAttempt(ctx, portsrepo.SyncAttempt{
		Type:        job.kind,
		ID:          job.id,
		ReferenceNo: job.referenceNo,
		Status:      status,
		Error:       errMsg,
		Response:    response,
	})
	return err
}

func (s *tallySyncService) autoSyncOn(cfg domain.SyncConfig) bool {
	return cfg.SyncMode == domain.SyncModeAuto && cfg.AutoSyncEnabled
}

// resolveCredentials decrypts the stored credentials for one delivery. The
// plaintext lives only in the returned value. Callers must check the enable
// policy first so a disabled integration never touches the ciphers.
func (s *tallySyncService) resolveCredentials(stored *domain.SyncConfig) (*domain.ResolvedSyncConfig, error) {
	resolved := &domain.ResolvedSyncConfig{SyncConfig: *stored}
	var err error
	if resolved.APIKey, err = s.secrets.Decrypt(stored.APIKeyCipher); err != nil {
		return nil, fmt.Errorf("decrypting api key: %w", err)
	}
	if resolved.APISecret, err = s.secrets.Decrypt(stored.APISecretCipher); err != nil {
		return nil, fmt.Errorf("decrypting api secret: %w", err)
	}
	return resolved, nil
}

// RetryFailedSyncs replays every failed ledger entry below the attempt cap,
// strictly in order of oldest attempt first. One slow or broken transaction
// must not be skipped over, so the sweep is sequential. A transaction deleted
// from storage since the failure is reported as skipped, not retried.
func (s *tallySyncService) RetryFailedSyncs(ctx context.Context, maxAttempts int) ([]dto.TallyRetryOutcome, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultRetryAttemptCap
	}

	candidates, err := s.syncLogRepo.ListFailed(ctx, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("listing failed syncs: %w", err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Starting tally retry sweep", "candidates", len(candidates))

	outcomes := make([]dto.TallyRetryOutcome, 0, len(candidates))
	for _, entry := range candidates {
		outcomes = append(outcomes, s.retryOne(ctx, entry))
	}
	return outcomes, nil
}

func (s *tallySyncService) retryOne(ctx context.Context, entry domain.SyncLogEntry) dto.TallyRetryOutcome {
	outcome := dto.TallyRetryOutcome{
		Type:          entry.TransactionType,
		TransactionID: entry.TransactionID,
		ReferenceNo:   entry.ReferenceNo,
	}

	result, found, err := s.replay(ctx, entry)
	if err != nil {
		msg := err.Error()
		outcome.Error = &msg
		return outcome
	}
	if !found {
		outcome.Skipped = true
		return outcome
	}

	outcome.Success = result.Success
	outcome.Error = result.Error
	return outcome
}

// replay re-runs the pipeline for a ledger entry by reloading its source
// transaction. found is false when the transaction no longer exists.
func (s *tallySyncService) replay(ctx context.Context, entry domain.SyncLogEntry) (dto.TallySyncResult, bool, error) {
	switch entry.TransactionType {
	case domain.KindSalesBill:
		bill, err := s.salesRepo.FindSalesBillByID(ctx, entry.TransactionID)
		if err != nil {
			return dto.TallySyncResult{}, !errors.Is(err, apperrors.ErrNotFound), retryLoadErr(err)
		}
		return s.SyncSalesBill(ctx, *bill, false), true, nil
	case domain.KindPurchaseVoucher:
		voucher, err := s.purchaseRepo.FindPurchaseVoucherByID(ctx, entry.TransactionID)
		if err != nil {
			return dto.TallySyncResult{}, !errors.Is(err, apperrors.ErrNotFound), retryLoadErr(err)
		}
		return s.SyncPurchaseVoucher(ctx, *voucher, false), true, nil
	case domain.KindCashEntry:
		cashEntry, err := s.cashRepo.FindCashEntryByID(ctx, entry.TransactionID)
		if err != nil {
			return dto.TallySyncResult{}, !errors.Is(err, apperrors.ErrNotFound), retryLoadErr(err)
		}
		return s.SyncCashEntry(ctx, *cashEntry, false), true, nil
	case domain.KindPaymentReceipt:
		receipt, err := s.cashRepo.FindPaymentReceiptByID(ctx, entry.TransactionID)
		if err != nil {
			return dto.TallySyncResult{}, !errors.Is(err, apperrors.ErrNotFound), retryLoadErr(err)
		}
		return s.SyncPaymentReceipt(ctx, *receipt, false), true, nil
	case domain.KindSalesReturn:
		ret, err := s.salesRepo.FindSalesReturnByID(ctx, entry.TransactionID)
		if err != nil {
			return dto.TallySyncResult{}, !errors.Is(err, apperrors.ErrNotFound), retryLoadErr(err)
		}
		return s.SyncSalesReturn(ctx, *ret, false), true, nil
	default:
		return dto.TallySyncResult{}, true, fmt.Errorf("unknown transaction type %q", entry.TransactionType)
	}
}

// retryLoadErr suppresses not-found (reported as skipped) and keeps
// everything else.
func retryLoadErr(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("loading transaction: %w", err)
}

// GetSyncLogs returns recent ledger rows, newest attempt first.
func (s *tallySyncService) GetSyncLogs(ctx context.Context, limit int, status *domain.SyncStatus) ([]domain.SyncLogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.syncLogRepo.ListRecent(ctx, limit, status)
}

// TestConnection probes the configured endpoint with a company info export.
// Like the sync entry points it folds every failure into the result.
func (s *tallySyncService) TestConnection(ctx context.Context) dto.TallyConnectionResult {
	stored, err := s.syncConfigRepo.FindConfig(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.TallyConnectionResult{Message: "Tally connection is not configured"}
		}
		return dto.TallyConnectionResult{Message: fmt.Sprintf("Failed to load configuration: %v", err)}
	}

	cfg, err := s.resolveCredentials(stored)
	if err != nil {
		return dto.TallyConnectionResult{Message: fmt.Sprintf("Failed to resolve credentials: %v", err)}
	}

	res, err := s.transport.TestConnection(ctx, *cfg, tally.DefaultProbeTimeout)
	if err != nil {
		return dto.TallyConnectionResult{Message: fmt.Sprintf("Connection failed: %v", err)}
	}

	return dto.TallyConnectionResult{
		Success:  true,
		Message:  "Connected to Tally",
		Response: &res.RawBody,
	}
}

// GetConfig returns the safe configuration view.
func (s *tallySyncService) GetConfig(ctx context.Context) (*dto.TallyConfigResponse, error) {
	stored, err := s.syncConfigRepo.FindConfig(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTallyConfigResponse(stored)
	return &resp, nil
}

// UpdateConfig applies a partial update. Absent fields keep their stored
// values; in particular an absent credential keeps its stored ciphertext
// untouched, a present one is encrypted fresh.
func (s *tallySyncService) UpdateConfig(ctx context.Context, req dto.UpdateTallyConfigRequest, updaterUserID string) (*dto.TallyConfigResponse, error) {
	current, err := s.syncConfigRepo.FindConfig(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		current = &domain.SyncConfig{SyncMode: domain.SyncModeManual, ConnectionType: "http"}
	}

	if req.TallyURL != nil {
		current.TallyURL = *req.TallyURL
	}
	if req.CompanyName != nil {
		current.CompanyName = *req.CompanyName
	}
	if req.Enabled != nil {
		current.Enabled = *req.Enabled
	}
	if req.SyncMode != nil {
		current.SyncMode = domain.SyncMode(*req.SyncMode)
	}
	if req.AutoSyncEnabled != nil {
		current.AutoSyncEnabled = *req.AutoSyncEnabled
	}
	if req.ConnectionType != nil {
		current.ConnectionType = *req.ConnectionType
	}
	if req.APIKey != nil {
		if current.APIKeyCipher, err = s.secrets.Encrypt(*req.APIKey); err != nil {
			return nil, fmt.Errorf("encrypting api key: %w", err)
		}
	}
	if req.APISecret != nil {
		if current.APISecretCipher, err = s.secrets.Encrypt(*req.APISecret); err != nil {
			return nil, fmt.Errorf("encrypting api secret: %w", err)
		}
	}

	current.UpdatedAt = time.Now()
	current.UpdatedBy = updaterUserID

	if err := s.syncConfigRepo.SaveConfig(ctx, *current); err != nil {
		return nil, fmt.Errorf("saving tally configuration: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Tally configuration updated",
		"updated_by", updaterUserID,
		"enabled", current.Enabled,
		"sync_mode", string(current.SyncMode),
	)

	resp := dto.ToTallyConfigResponse(current)
	return &resp, nil
}
