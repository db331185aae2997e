package dto

import (
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseVoucherRequest records stock bought in from a supplier.
type CreatePurchaseVoucherRequest struct {
	VoucherNo       string            `json:"voucher_no" binding:"required"`
	VoucherDate     time.Time         `json:"voucher_date" binding:"required"`
	SupplierName    string            `json:"supplier_name"`
	SupplierNameAlt string            `json:"supplierName"`
	Items           []LineItemRequest `json:"items"`
	NetTotal        decimal.Decimal   `json:"net_total"`
	NetTotalAlt     *decimal.Decimal  `json:"netTotal"`
	GSTAmount       decimal.Decimal   `json:"gst_amount"`
	GSTAmountAlt    *decimal.Decimal  `json:"gst"`
	CGSTAmount      decimal.Decimal   `json:"cgst_amount"`
	CGSTAmountAlt   *decimal.Decimal  `json:"cgst"`
	SGSTAmount      decimal.Decimal   `json:"sgst_amount"`
	SGSTAmountAlt   *decimal.Decimal  `json:"sgst"`
	Narration       string            `json:"narration"`
}

// ToDomain resolves alternate field names and builds the domain voucher.
func (r CreatePurchaseVoucherRequest) ToDomain() domain.PurchaseVoucher {
	return domain.PurchaseVoucher{
		VoucherNo:    r.VoucherNo,
		VoucherDate:  r.VoucherDate,
		SupplierName: firstNonEmpty(r.SupplierName, r.SupplierNameAlt),
		Items:        ResolveLineItems(r.Items),
		NetTotal:     firstNonZero(r.NetTotal, r.NetTotalAlt),
		GSTAmount:    firstNonZero(r.GSTAmount, r.GSTAmountAlt),
		CGSTAmount:   firstNonZero(r.CGSTAmount, r.CGSTAmountAlt),
		SGSTAmount:   firstNonZero(r.SGSTAmount, r.SGSTAmountAlt),
		Narration:    r.Narration,
	}
}

// PurchaseVoucherResponse is the API view of a purchase voucher.
type PurchaseVoucherResponse struct {
	VoucherID    string            `json:"voucherID"`
	VoucherNo    string            `json:"voucherNo"`
	VoucherDate  time.Time         `json:"voucherDate"`
	SupplierName string            `json:"supplierName"`
	Items        []domain.LineItem `json:"items,omitempty"`
	NetTotal     decimal.Decimal   `json:"netTotal"`
	GSTAmount    decimal.Decimal   `json:"gstAmount"`
	CGSTAmount   decimal.Decimal   `json:"cgstAmount"`
	SGSTAmount   decimal.Decimal   `json:"sgstAmount"`
	Narration    string            `json:"narration,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ToPurchaseVoucherResponse maps a domain voucher to its API view.
func ToPurchaseVoucherResponse(v *domain.PurchaseVoucher) PurchaseVoucherResponse {
	return PurchaseVoucherResponse{
		VoucherID:    v.VoucherID,
		VoucherNo:    v.VoucherNo,
		VoucherDate:  v.VoucherDate,
		SupplierName: v.SupplierName,
		Items:        v.Items,
		NetTotal:     v.NetTotal,
		GSTAmount:    v.GSTAmount,
		CGSTAmount:   v.CGSTAmount,
		SGSTAmount:   v.SGSTAmount,
		Narration:    v.Narration,
		CreatedAt:    v.CreatedAt,
	}
}

// ListPurchaseVouchersResponse is a token-paginated page of vouchers.
type ListPurchaseVouchersResponse struct {
	Vouchers  []PurchaseVoucherResponse `json:"vouchers"`
	NextToken *string                   `json:"nextToken,omitempty"`
}
