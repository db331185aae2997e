package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// TransactionKind identifies which business record a sync log row refers to.
type TransactionKind string

const (
	KindSalesBill       TransactionKind = "sales_bill"
	KindPurchaseVoucher TransactionKind = "purchase_voucher"
	KindCashEntry       TransactionKind = "cash_entry"
	KindPaymentReceipt  TransactionKind = "payment_receipt"
	KindSalesReturn     TransactionKind = "sales_return"
)
