package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseVoucher records stock bought in from a supplier.
type PurchaseVoucher struct {
	VoucherID    string          `json:"voucherID"`
	VoucherNo    string          `json:"voucherNo"` // external reference
	VoucherDate  time.Time       `json:"voucherDate"`
	SupplierName string          `json:"supplierName"`
	Items        []LineItem      `json:"items"`
	NetTotal     decimal.Decimal `json:"netTotal"`
	GSTAmount    decimal.Decimal `json:"gstAmount"`
	CGSTAmount   decimal.Decimal `json:"cgstAmount"`
	SGSTAmount   decimal.Decimal `json:"sgstAmount"`
	Narration    string          `json:"narration"`
	AuditFields
}
