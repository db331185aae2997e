package repositories

import (
	"context"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// SalesReader defines read operations for sales bills and returns.
type SalesReader interface {
	// FindSalesBillByID retrieves a bill with its line items.
	FindSalesBillByID(ctx context.Context, billID string) (*domain.SalesBill, error)

	// ListSalesBills retrieves a token-paginated list of bills, newest first.
	ListSalesBills(ctx context.Context, limit int, nextToken *string) ([]domain.SalesBill, *string, error)

	// FindSalesReturnByID retrieves a return with its line items.
	FindSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error)

	// ListSalesReturns retrieves a token-paginated list of returns, newest first.
	ListSalesReturns(ctx context.Context, limit int, nextToken *string) ([]domain.SalesReturn, *string, error)
}

// SalesWriter defines write operations for sales bills and returns.
type SalesWriter interface {
	// SaveSalesBill persists a bill and its line items atomically.
	SaveSalesBill(ctx context.Context, bill domain.SalesBill) error

	// SaveSalesReturn persists a return and its line items atomically.
	SaveSalesReturn(ctx context.Context, ret domain.SalesReturn) error
}

// SalesRepositoryFacade combines all sales-related repository interfaces.
type SalesRepositoryFacade interface {
	SalesReader
	SalesWriter
}

// PurchaseRepositoryFacade defines storage operations for purchase vouchers.
type PurchaseRepositoryFacade interface {
	SavePurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher) error
	FindPurchaseVoucherByID(ctx context.Context, voucherID string) (*domain.PurchaseVoucher, error)
	ListPurchaseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.PurchaseVoucher, *string, error)
}

// CashRepositoryFacade defines storage operations for cash entries and
// payment receipts.
type CashRepositoryFacade interface {
	SaveCashEntry(ctx context.Context, entry domain.CashEntry) error
	FindCashEntryByID(ctx context.Context, entryID string) (*domain.CashEntry, error)
	ListCashEntries(ctx context.Context, limit int, nextToken *string) ([]domain.CashEntry, *string, error)

	SavePaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt) error
	FindPaymentReceiptByID(ctx context.Context, receiptID string) (*domain.PaymentReceipt, error)
	ListPaymentReceipts(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentReceipt, *string, error)
}
