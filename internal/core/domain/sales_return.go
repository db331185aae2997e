package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReturn records goods returned against an earlier sales bill.
type SalesReturn struct {
	ReturnID       string          `json:"returnID"`
	ReturnNo       string          `json:"returnNo"` // external reference
	ReturnDate     time.Time       `json:"returnDate"`
	CustomerName   string          `json:"customerName"`
	Items          []LineItem      `json:"items"`
	NetTotal       decimal.Decimal `json:"netTotal"`
	GSTAmount      decimal.Decimal `json:"gstAmount"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	Reason         string          `json:"reason"`
	OriginalBillNo string          `json:"originalBillNo"` // optional link to the sold bill
	AuditFields
}
