package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// cashService manages cash-book entries and out-of-book payment receipts.
type cashService struct {
	cashRepo portsrepo.CashRepositoryFacade
	tallySvc portssvc.TallySvcFacade
}

// NewCashService creates a new cash service.
func NewCashService(cashRepo portsrepo.CashRepositoryFacade, tallySvc portssvc.TallySvcFacade) portssvc.CashSvcFacade {
	return &cashService{cashRepo: cashRepo, tallySvc: tallySvc}
}

var _ portssvc.CashSvcFacade = (*cashService)(nil)

func (s *cashService) CreateCashEntry(ctx context.Context, req dto.CreateCashEntryRequest, creatorUserID string) (*domain.CashEntry, error) {
	entry := req.ToDomain()
	if !entry.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	entry.EntryID = uuid.NewString()
	entry.AuditFields = newAuditFields(creatorUserID)

	if err := s.cashRepo.SaveCashEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving cash entry: %w", err)
	}

	result := s.tallySvc.SyncCashEntry(ctx, entry, true)
	logSyncResult(middleware.GetLoggerFromCtx(ctx), result)
	return &entry, nil
}

func (s *cashService) GetCashEntryByID(ctx context.Context, entryID string) (*domain.CashEntry, error) {
	return s.cashRepo.FindCashEntryByID(ctx, entryID)
}

func (s *cashService) ListCashEntries(ctx context.Context, limit int, nextToken *string) ([]domain.CashEntry, *string, error) {
	return s.cashRepo.ListCashEntries(ctx, normalizeLimit(limit), nextToken)
}

func (s *cashService) CreatePaymentReceipt(ctx context.Context, req dto.CreatePaymentReceiptRequest, creatorUserID string) (*domain.PaymentReceipt, error) {
	receipt := req.ToDomain()
	if !receipt.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	receipt.ReceiptID = uuid.NewString()
	receipt.AuditFields = newAuditFields(creatorUserID)

	if err := s.cashRepo.SavePaymentReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("saving payment receipt: %w", err)
	}

	result := s.tallySvc.SyncPaymentReceipt(ctx, receipt, true)
	logSyncResult(middleware.GetLoggerFromCtx(ctx), result)
	return &receipt, nil
}

func (s *cashService) GetPaymentReceiptByID(ctx context.Context, receiptID string) (*domain.PaymentReceipt, error) {
	return s.cashRepo.FindPaymentReceiptByID(ctx, receiptID)
}

func (s *cashService) ListPaymentReceipts(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentReceipt, *string, error) {
	return s.cashRepo.ListPaymentReceipts(ctx, normalizeLimit(limit), nextToken)
}
