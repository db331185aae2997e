package dto

import (
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashEntryRequest records a single cash-book movement.
type CreateCashEntryRequest struct {
	EntryNo            string          `json:"entry_no" binding:"required"`
	EntryDate          time.Time       `json:"entry_date" binding:"required"`
	CashType           string          `json:"cash_type"`
	CashTypeAlt        string          `json:"cashType"`
	TransactionType    string          `json:"transaction_type"`
	TransactionTypeAlt string          `json:"transactionType"`
	CustomerName       string          `json:"customer_name"`
	CustomerNameAlt    string          `json:"customerName"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Narration          string          `json:"narration"`
}

// ToDomain resolves alternate field names and builds the domain entry.
func (r CreateCashEntryRequest) ToDomain() domain.CashEntry {
	return domain.CashEntry{
		EntryNo:         r.EntryNo,
		EntryDate:       r.EntryDate,
		CashType:        firstNonEmpty(r.CashType, r.CashTypeAlt),
		TransactionType: firstNonEmpty(r.TransactionType, r.TransactionTypeAlt),
		CustomerName:    firstNonEmpty(r.CustomerName, r.CustomerNameAlt),
		Amount:          r.Amount,
		Narration:       r.Narration,
	}
}

// CashEntryResponse is the API view of a cash entry.
type CashEntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryNo         string          `json:"entryNo"`
	EntryDate       time.Time       `json:"entryDate"`
	CashType        string          `json:"cashType"`
	TransactionType string          `json:"transactionType"`
	CustomerName    string          `json:"customerName,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Narration       string          `json:"narration,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToCashEntryResponse maps a domain entry to its API view.
func ToCashEntryResponse(e *domain.CashEntry) CashEntryResponse {
	return CashEntryResponse{
		EntryID:         e.EntryID,
		EntryNo:         e.EntryNo,
		EntryDate:       e.EntryDate,
		CashType:        e.CashType,
		TransactionType: e.TransactionType,
		CustomerName:    e.CustomerName,
		Amount:          e.Amount,
		Narration:       e.Narration,
		CreatedAt:       e.CreatedAt,
	}
}

// CreatePaymentReceiptRequest records a payment made or received.
type CreatePaymentReceiptRequest struct {
	ReceiptNo          string          `json:"receipt_no" binding:"required"`
	ReceiptDate        time.Time       `json:"receipt_date" binding:"required"`
	TransactionType    string          `json:"transaction_type"`
	TransactionTypeAlt string          `json:"transactionType"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodAlt   string          `json:"paymentMethod"`
	PartyName          string          `json:"party_name"`
	PartyNameAlt       string          `json:"customerName"` // legacy clients reuse the customer field
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Narration          string          `json:"narration"`
}

// ToDomain resolves alternate field names and builds the domain receipt.
func (r CreatePaymentReceiptRequest) ToDomain() domain.PaymentReceipt {
	return domain.PaymentReceipt{
		ReceiptNo:       r.ReceiptNo,
		ReceiptDate:     r.ReceiptDate,
		TransactionType: firstNonEmpty(r.TransactionType, r.TransactionTypeAlt),
		PaymentMethod:   firstNonEmpty(r.PaymentMethod, r.PaymentMethodAlt),
		PartyName:       firstNonEmpty(r.PartyName, r.PartyNameAlt),
		Amount:          r.Amount,
		Narration:       r.Narration,
	}
}

// PaymentReceiptResponse is the API view of a payment/receipt.
type PaymentReceiptResponse struct {
	ReceiptID       string          `json:"receiptID"`
	ReceiptNo       string          `json:"receiptNo"`
	ReceiptDate     time.Time       `json:"receiptDate"`
	TransactionType string          `json:"transactionType"`
	PaymentMethod   string          `json:"paymentMethod"`
	PartyName       string          `json:"partyName"`
	Amount          decimal.Decimal `json:"amount"`
	Narration       string          `json:"narration,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToPaymentReceiptResponse maps a domain receipt to its API view.
func ToPaymentReceiptResponse(p *domain.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		ReceiptID:       p.ReceiptID,
		ReceiptNo:       p.ReceiptNo,
		ReceiptDate:     p.ReceiptDate,
		TransactionType: p.TransactionType,
		PaymentMethod:   p.PaymentMethod,
		PartyName:       p.PartyName,
		Amount:          p.Amount,
		Narration:       p.Narration,
		CreatedAt:       p.CreatedAt,
	}
}
