package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cash ledger discriminators. The shop runs two physical cash drawers; a
// transfer between them is always the fixed two-ledger rotation handled by
// the voucher encoder.
const (
	CashTypeOne = "Cash-1"
	CashTypeTwo = "Cash-2"
)

// Recognized cash entry transaction types. Anything else falls through to the
// encoder's default handling.
const (
	CashTxnReceived        = "Cash Received"
	CashTxnPaymentReceived = "Payment Received"
	CashTxnPaid            = "Cash Paid"
	CashTxnPaymentMade     = "Payment Made"
	CashTxnTransfer        = "Cash Transfer"
)

// CashEntry is a single cash-book movement.
type CashEntry struct {
	EntryID         string          `json:"entryID"`
	EntryNo         string          `json:"entryNo"` // external reference
	EntryDate       time.Time       `json:"entryDate"`
	CashType        string          `json:"cashType"`        // Cash-1, Cash-2 or other
	TransactionType string          `json:"transactionType"` // see CashTxn* constants
	CustomerName    string          `json:"customerName"`
	Amount          decimal.Decimal `json:"amount"`
	Narration       string          `json:"narration"`
	AuditFields
}
