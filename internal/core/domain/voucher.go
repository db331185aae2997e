package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType is Tally's unit-of-record classification for a financial event.
type VoucherType string

const (
	VoucherSales      VoucherType = "Sales"
	VoucherPurchase   VoucherType = "Purchase"
	VoucherCash       VoucherType = "Cash"
	VoucherPayment    VoucherType = "Payment"
	VoucherReceipt    VoucherType = "Receipt"
	VoucherCreditNote VoucherType = "Credit Note"
)

// InventoryEntry is one stock line attached to a ledger line of a voucher.
type InventoryEntry struct {
	ItemName string          `json:"itemName"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"` // PCS or GMS
}

// LedgerLine is one debit or credit entry within a voucher. Amount is always
// the positive magnitude; IsDeemedPositive marks the debit side, matching the
// flag Tally expects on the wire.
type LedgerLine struct {
	LedgerName       string           `json:"ledgerName"`
	Amount           decimal.Decimal  `json:"amount"`
	IsDeemedPositive bool             `json:"isDeemedPositive"` // true = debit
	Inventory        []InventoryEntry `json:"inventory,omitempty"`
}

// VoucherDocument is the vendor-neutral intermediate representation produced
// by the voucher encoder. Every generated document must balance: the sum of
// debit line amounts equals the sum of credit line amounts. An unbalanced
// document is an encoder defect, never a runtime condition.
type VoucherDocument struct {
	VoucherType   VoucherType  `json:"voucherType"`
	Date          time.Time    `json:"date"`
	VoucherNumber string       `json:"voucherNumber"`
	PartyName     string       `json:"partyName"`
	Narration     string       `json:"narration"`
	Lines         []LedgerLine `json:"lines"`
}

// DebitTotal sums the amounts of all debit-flagged lines.
func (d VoucherDocument) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		if l.IsDeemedPositive {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// CreditTotal sums the amounts of all credit-flagged lines.
func (d VoucherDocument) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		if !l.IsDeemedPositive {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// IsBalanced reports whether debits equal credits.
func (d VoucherDocument) IsBalanced() bool {
	return d.DebitTotal().Equal(d.CreditTotal())
}
