package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesBill is a finalized retail sale. The sync subsystem only ever reads it.
type SalesBill struct {
	BillID       string          `json:"billID"`
	BillNo       string          `json:"billNo"` // external reference, unique per shop
	BillDate     time.Time       `json:"billDate"`
	CustomerName string          `json:"customerName"`
	Items        []LineItem      `json:"items"`
	NetTotal     decimal.Decimal `json:"netTotal"`
	GSTAmount    decimal.Decimal `json:"gstAmount"`
	CGSTAmount   decimal.Decimal `json:"cgstAmount"`
	SGSTAmount   decimal.Decimal `json:"sgstAmount"`
	Narration    string          `json:"narration"`
	AuditFields
}
