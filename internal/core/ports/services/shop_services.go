package services

import (
	"context"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/goldloom/jewelshop_backend/internal/dto"
)

// SalesSvcFacade manages sales bills and returns. Create operations persist
// the record and then fire the matching Tally sync in auto mode; a sync
// failure never fails the business operation.
type SalesSvcFacade interface {
	CreateSalesBill(ctx context.Context, req dto.CreateSalesBillRequest, creatorUserID string) (*domain.SalesBill, error)
	GetSalesBillByID(ctx context.Context, billID string) (*domain.SalesBill, error)
	ListSalesBills(ctx context.Context, limit int, nextToken *string) ([]domain.SalesBill, *string, error)

	CreateSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, creatorUserID string) (*domain.SalesReturn, error)
	GetSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error)
	ListSalesReturns(ctx context.Context, limit int, nextToken *string) ([]domain.SalesReturn, *string, error)
}

// PurchaseSvcFacade manages purchase vouchers.
type PurchaseSvcFacade interface {
	CreatePurchaseVoucher(ctx context.Context, req dto.CreatePurchaseVoucherRequest, creatorUserID string) (*domain.PurchaseVoucher, error)
	GetPurchaseVoucherByID(ctx context.Context, voucherID string) (*domain.PurchaseVoucher, error)
	ListPurchaseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.PurchaseVoucher, *string, error)
}

// CashSvcFacade manages cash entries and payment receipts.
type CashSvcFacade interface {
	CreateCashEntry(ctx context.Context, req dto.CreateCashEntryRequest, creatorUserID string) (*domain.CashEntry, error)
	GetCashEntryByID(ctx context.Context, entryID string) (*domain.CashEntry, error)
	ListCashEntries(ctx context.Context, limit int, nextToken *string) ([]domain.CashEntry, *string, error)

	CreatePaymentReceipt(ctx context.Context, req dto.CreatePaymentReceiptRequest, creatorUserID string) (*domain.PaymentReceipt, error)
	GetPaymentReceiptByID(ctx context.Context, receiptID string) (*domain.PaymentReceipt, error)
	ListPaymentReceipts(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentReceipt, *string, error)
}
