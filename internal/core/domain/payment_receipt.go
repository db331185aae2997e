package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment/receipt transaction types understood by the voucher encoder.
// "Receipt" and "Payment Received" encode as a Receipt voucher; everything
// else encodes as a Payment voucher.
const (
	PaymentTxnReceipt         = "Receipt"
	PaymentTxnPaymentReceived = "Payment Received"
	PaymentTxnPaymentMade     = "Payment Made"
)

// PaymentReceipt is money received from or paid to a party outside the cash
// book, e.g. settling a customer balance or paying a supplier.
type PaymentReceipt struct {
	ReceiptID       string          `json:"receiptID"`
	ReceiptNo       string          `json:"receiptNo"` // external reference
	ReceiptDate     time.Time       `json:"receiptDate"`
	TransactionType string          `json:"transactionType"`
	PaymentMethod   string          `json:"paymentMethod"` // Cash, Bank, UPI, Card...
	PartyName       string          `json:"partyName"`
	Amount          decimal.Decimal `json:"amount"`
	Narration       string          `json:"narration"`
	AuditFields
}
