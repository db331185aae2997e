package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// salesService manages sales bills and returns. Every create ends with an
// auto-mode sync attempt whose outcome is logged but never propagated.
type salesService struct {
	salesRepo portsrepo.SalesRepositoryFacade
	tallySvc  portssvc.TallySvcFacade
}

// NewSalesService creates a new sales service.
func NewSalesService(salesRepo portsrepo.SalesRepositoryFacade, tallySvc portssvc.TallySvcFacade) portssvc.SalesSvcFacade {
	return &salesService{salesRepo: salesRepo, tallySvc: tallySvc}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

func (s *salesService) CreateSalesBill(ctx context.Context, req dto.CreateSalesBillRequest, creatorUserID string) (*domain.SalesBill, error) {
	bill := req.ToDomain()
	if bill.NetTotal.IsNegative() {
		return nil, apperrors.NewAppError(400, "net total cannot be negative", apperrors.ErrValidation)
	}

	bill.BillID = uuid.NewString()
	bill.AuditFields = newAuditFields(creatorUserID)

	if err := s.salesRepo.SaveSalesBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("saving sales bill: %w", err)
	}

	s.fireSync(ctx, func() dto.TallySyncResult {
		return s.tallySvc.SyncSalesBill(ctx, bill, true)
	})
	return &bill, nil
}

func (s *salesService) GetSalesBillByID(ctx context.Context, billID string) (*domain.SalesBill, error) {
	return s.salesRepo.FindSalesBillByID(ctx, billID)
}

func (s *salesService) ListSalesBills(ctx context.Context, limit int, nextToken *string) ([]domain.SalesBill, *string, error) {
	return s.salesRepo.ListSalesBills(ctx, normalizeLimit(limit), nextToken)
}

func (s *salesService) CreateSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, creatorUserID string) (*domain.SalesReturn, error) {
	ret := req.ToDomain()
	if ret.NetTotal.IsNegative() {
		return nil, apperrors.NewAppError(400, "net total cannot be negative", apperrors.ErrValidation)
	}

	ret.ReturnID = uuid.NewString()
	ret.AuditFields = newAuditFields(creatorUserID)

	if err := s.salesRepo.SaveSalesReturn(ctx, ret); err != nil {
		return nil, fmt.Errorf("saving sales return: %w", err)
	}

	s.fireSync(ctx, func() dto.TallySyncResult {
		return s.tallySvc.SyncSalesReturn(ctx, ret, true)
	})
	return &ret, nil
}

func (s *salesService) GetSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	return s.salesRepo.FindSalesReturnByID(ctx, returnID)
}

func (s *salesService) ListSalesReturns(ctx context.Context, limit int, nextToken *string) ([]domain.SalesReturn, *string, error) {
	return s.salesRepo.ListSalesReturns(ctx, normalizeLimit(limit), nextToken)
}

// fireSync runs an auto-mode sync after a successful save. The result only
// gets logged; the business operation already committed.
func (s *salesService) fireSync(ctx context.Context, sync func() dto.TallySyncResult) {
	result := sync()
	logSyncResult(middleware.GetLoggerFromCtx(ctx), result)
}

// newAuditFields stamps creation metadata.
func newAuditFields(creatorUserID string) domain.AuditFields {
	now := time.Now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
