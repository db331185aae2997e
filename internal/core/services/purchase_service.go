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

// purchaseService manages purchase vouchers.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	tallySvc     portssvc.TallySvcFacade
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryFacade, tallySvc portssvc.TallySvcFacade) portssvc.PurchaseSvcFacade {
	return &purchaseService{purchaseRepo: purchaseRepo, tallySvc: tallySvc}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) CreatePurchaseVoucher(ctx context.Context, req dto.CreatePurchaseVoucherRequest, creatorUserID string) (*domain.PurchaseVoucher, error) {
	voucher := req.ToDomain()
	if voucher.NetTotal.IsNegative() {
		return nil, apperrors.NewAppError(400, "net total cannot be negative", apperrors.ErrValidation)
	}

	voucher.VoucherID = uuid.NewString()
	voucher.AuditFields = newAuditFields(creatorUserID)

	if err := s.purchaseRepo.SavePurchaseVoucher(ctx, voucher); err != nil {
		return nil, fmt.Errorf("saving purchase voucher: %w", err)
	}

	result := s.tallySvc.SyncPurchaseVoucher(ctx, voucher, true)
	logSyncResult(middleware.GetLoggerFromCtx(ctx), result)
	return &voucher, nil
}

func (s *purchaseService) GetPurchaseVoucherByID(ctx context.Context, voucherID string) (*domain.PurchaseVoucher, error) {
	return s.purchaseRepo.FindPurchaseVoucherByID(ctx, voucherID)
}

func (s *purchaseService) ListPurchaseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.PurchaseVoucher, *string, error) {
	return s.purchaseRepo.ListPurchaseVouchers(ctx, normalizeLimit(limit), nextToken)
}
