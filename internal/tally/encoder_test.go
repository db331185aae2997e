package tally_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/goldloom/jewelshop_backend/internal/tally"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func findLine(t *testing.T, doc domain.VoucherDocument, ledger string) domain.LedgerLine {
	t.Helper()
	for _, l := range doc.Lines {
		if l.LedgerName == ledger {
			return l
		}
	}
	t.Fatalf("no ledger line %q in %v", ledger, doc.Lines)
	return domain.LedgerLine{}
}

func hasLine(doc domain.VoucherDocument, ledger string) bool {
	for _, l := range doc.Lines {
		if l.LedgerName == ledger {
			return true
		}
	}
	return false
}

func TestEncodeSalesBill_NoTax(t *testing.T) {
	bill := domain.SalesBill{
		BillID:       "b-1",
		BillNo:       "SB-001",
		BillDate:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CustomerName: "Asha Jewels",
		NetTotal:     dec("5000"),
	}

	doc, err := tally.EncodeSalesBill(bill)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherSales, doc.VoucherType)
	assert.True(t, doc.IsBalanced())

	sales := findLine(t, doc, tally.LedgerSales)
	assert.False(t, sales.IsDeemedPositive)
	assert.True(t, sales.Amount.Equal(dec("5000")))

	party := findLine(t, doc, "Asha Jewels")
	assert.True(t, party.IsDeemedPositive)
	assert.True(t, party.Amount.Equal(dec("5000")))

	assert.False(t, hasLine(doc, tally.LedgerGSTOutput))
	assert.False(t, hasLine(doc, tally.LedgerCGSTOutput))
	assert.False(t, hasLine(doc, tally.LedgerSGSTOutput))
}

func TestEncodeSalesBill_TaxLinesOnlyWhenPositive(t *testing.T) {
	bill := domain.SalesBill{
		BillNo:       "SB-002",
		BillDate:     time.Now(),
		CustomerName: "Asha Jewels",
		NetTotal:     dec("10000"),
		GSTAmount:    dec("300"),
		CGSTAmount:   dec("150"),
	}

	doc, err := tally.EncodeSalesBill(bill)
	require.NoError(t, err)
	assert.True(t, doc.IsBalanced())

	gst := findLine(t, doc, tally.LedgerGSTOutput)
	assert.True(t, gst.Amount.Equal(dec("300")))
	assert.False(t, gst.IsDeemedPositive)

	cgst := findLine(t, doc, tally.LedgerCGSTOutput)
	assert.True(t, cgst.Amount.Equal(dec("150")))

	assert.False(t, hasLine(doc, tally.LedgerSGSTOutput), "zero tax must not emit a line")

	party := findLine(t, doc, "Asha Jewels")
	assert.True(t, party.Amount.Equal(dec("10450")), "party carries the gross receivable")
}

func TestEncodeSalesBill_Defaults(t *testing.T) {
	bill := domain.SalesBill{
		BillNo:   "SB-003",
		BillDate: time.Now(),
		NetTotal: dec("750"),
		Items: []domain.LineItem{
			{Name: "Gold Ring", Rate: dec("750"), Amount: dec("750")},
		},
	}

	doc, err := tally.EncodeSalesBill(bill)
	require.NoError(t, err)

	assert.Equal(t, tally.PartyCashCustomer, doc.PartyName)

	sales := findLine(t, doc, tally.LedgerSales)
	require.Len(t, sales.Inventory, 1)
	inv := sales.Inventory[0]
	assert.True(t, inv.Quantity.Equal(dec("1")), "quantity defaults to one piece")
	assert.Equal(t, tally.UnitPieces, inv.Unit)
}

func TestEncodePurchaseVoucher_MirrorsSales(t *testing.T) {
	voucher := domain.PurchaseVoucher{
		VoucherNo:    "PV-010",
		VoucherDate:  time.Now(),
		SupplierName: "Sona Refiners",
		NetTotal:     dec("20000"),
		GSTAmount:    dec("600"),
	}

	doc, err := tally.EncodePurchaseVoucher(voucher)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherPurchase, doc.VoucherType)
	assert.True(t, doc.IsBalanced())

	purchase := findLine(t, doc, tally.LedgerPurchase)
	assert.True(t, purchase.IsDeemedPositive, "purchase is the debit side")
	assert.True(t, purchase.Amount.Equal(dec("20000")))

	party := findLine(t, doc, "Sona Refiners")
	assert.False(t, party.IsDeemedPositive)
	assert.True(t, party.Amount.Equal(dec("20600")))

	gst := findLine(t, doc, tally.LedgerGSTInput)
	assert.True(t, gst.IsDeemedPositive)
}

func TestEncodePurchaseVoucher_WeightFallback(t *testing.T) {
	voucher := domain.PurchaseVoucher{
		VoucherNo:   "PV-011",
		VoucherDate: time.Now(),
		NetTotal:    dec("9000"),
		Items: []domain.LineItem{
			{Name: "Old Gold", Weight: dec("12.5"), Rate: dec("720"), Amount: dec("9000")},
		},
	}

	doc, err := tally.EncodePurchaseVoucher(voucher)
	require.NoError(t, err)

	assert.Equal(t, tally.PartyMetalSupplier, doc.PartyName)

	purchase := findLine(t, doc, tally.LedgerPurchase)
	require.Len(t, purchase.Inventory, 1)
	inv := purchase.Inventory[0]
	assert.True(t, inv.Quantity.Equal(dec("12.5")), "quantity falls back to weight")
	assert.Equal(t, tally.UnitGrams, inv.Unit)
}

func TestEncodeCashEntry_Received(t *testing.T) {
	entry := domain.CashEntry{
		EntryNo:         "CE-001",
		EntryDate:       time.Now(),
		CashType:        domain.CashTypeOne,
		TransactionType: domain.CashTxnReceived,
		CustomerName:    "Walk In",
		Amount:          dec("1200"),
	}

	doc, err := tally.EncodeCashEntry(entry)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherCash, doc.VoucherType)
	assert.True(t, doc.IsBalanced())

	drawer := findLine(t, doc, tally.CashTypeOneLedger)
	assert.True(t, drawer.IsDeemedPositive, "received cash debits the drawer")

	party := findLine(t, doc, "Walk In")
	assert.False(t, party.IsDeemedPositive)
}

func TestEncodeCashEntry_PaidReversesSides(t *testing.T) {
	entry := domain.CashEntry{
		EntryNo:         "CE-002",
		EntryDate:       time.Now(),
		CashType:        "Drawer-9",
		TransactionType: domain.CashTxnPaid,
		Amount:          dec("400"),
	}

	doc, err := tally.EncodeCashEntry(entry)
	require.NoError(t, err)

	drawer := findLine(t, doc, tally.LedgerCash)
	assert.False(t, drawer.IsDeemedPositive, "paid cash credits the drawer")

	party := findLine(t, doc, tally.PartyMiscellaneous)
	assert.True(t, party.IsDeemedPositive)
}

func TestEncodeCashEntry_TransferRotation(t *testing.T) {
	entry := domain.CashEntry{
		EntryNo:         "CE-003",
		EntryDate:       time.Now(),
		CashType:        domain.CashTypeOne,
		TransactionType: domain.CashTxnTransfer,
		Amount:          dec("5000"),
	}

	doc, err := tally.EncodeCashEntry(entry)
	require.NoError(t, err)
	assert.True(t, doc.IsBalanced())

	dest := findLine(t, doc, tally.CashTypeTwoLedger)
	assert.True(t, dest.IsDeemedPositive, "transfer out of Cash-1 debits Cash-2")

	origin := findLine(t, doc, tally.CashTypeOneLedger)
	assert.False(t, origin.IsDeemedPositive, "transfer out of Cash-1 credits Cash-1")
}

func TestEncodeCashEntry_TransferFromSecondDrawer(t *testing.T) {
	entry := domain.CashEntry{
		EntryNo:         "CE-004",
		EntryDate:       time.Now(),
		CashType:        domain.CashTypeTwo,
		TransactionType: domain.CashTxnTransfer,
		Amount:          dec("5000"),
	}

	doc, err := tally.EncodeCashEntry(entry)
	require.NoError(t, err)

	dest := findLine(t, doc, tally.CashTypeOneLedger)
	assert.True(t, dest.IsDeemedPositive)

	origin := findLine(t, doc, tally.CashTypeTwoLedger)
	assert.False(t, origin.IsDeemedPositive)
}

func TestEncodeCashEntry_UnrecognizedTypeDefaults(t *testing.T) {
	entry := domain.CashEntry{
		EntryNo:         "CE-005",
		EntryDate:       time.Now(),
		CashType:        domain.CashTypeTwo,
		TransactionType: "Adjustment",
		Amount:          dec("10"),
	}

	doc, err := tally.EncodeCashEntry(entry)
	require.NoError(t, err)
	assert.True(t, doc.IsBalanced())
	assert.True(t, hasLine(doc, tally.PartyMiscellaneous))
}

func TestEncodePaymentReceipt_CashReceipt(t *testing.T) {
	receipt := domain.PaymentReceipt{
		ReceiptNo:       "PR-001",
		ReceiptDate:     time.Now(),
		TransactionType: domain.PaymentTxnReceipt,
		PaymentMethod:   "Cash",
		PartyName:       "Acme",
		Amount:          dec("2500"),
	}

	doc, err := tally.EncodePaymentReceipt(receipt)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherReceipt, doc.VoucherType)
	assert.True(t, doc.IsBalanced())

	cash := findLine(t, doc, tally.LedgerCash)
	assert.True(t, cash.IsDeemedPositive)

	acme := findLine(t, doc, "Acme")
	assert.False(t, acme.IsDeemedPositive)
	assert.True(t, acme.Amount.Equal(dec("2500")))
}

func TestEncodePaymentReceipt_NonCashMethodUsesBank(t *testing.T) {
	receipt := domain.PaymentReceipt{
		ReceiptNo:       "PR-002",
		ReceiptDate:     time.Now(),
		TransactionType: domain.PaymentTxnPaymentReceived,
		PaymentMethod:   "UPI",
		PartyName:       "Acme",
		Amount:          dec("999"),
	}

	doc, err := tally.EncodePaymentReceipt(receipt)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherReceipt, doc.VoucherType)
	assert.True(t, hasLine(doc, tally.LedgerBank))
	assert.False(t, hasLine(doc, tally.LedgerCash))
}

func TestEncodePaymentReceipt_PaymentMade(t *testing.T) {
	receipt := domain.PaymentReceipt{
		ReceiptNo:       "PR-003",
		ReceiptDate:     time.Now(),
		TransactionType: domain.PaymentTxnPaymentMade,
		PartyName:       "Sona Refiners",
		Amount:          dec("18000"),
	}

	doc, err := tally.EncodePaymentReceipt(receipt)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherPayment, doc.VoucherType)

	party := findLine(t, doc, "Sona Refiners")
	assert.True(t, party.IsDeemedPositive, "payment debits the party")

	cash := findLine(t, doc, tally.LedgerCash)
	assert.False(t, cash.IsDeemedPositive)
}

func TestEncodeSalesReturn_CreditNoteReversal(t *testing.T) {
	ret := domain.SalesReturn{
		ReturnNo:       "SR-001",
		ReturnDate:     time.Now(),
		CustomerName:   "Asha Jewels",
		NetTotal:       dec("5000"),
		GSTAmount:      dec("150"),
		Reason:         "stone damage",
		OriginalBillNo: "SB-001",
		Items: []domain.LineItem{
			{Name: "Gold Ring", Pcs: 1, Rate: dec("5000"), Amount: dec("5000")},
		},
	}

	doc, err := tally.EncodeSalesReturn(ret)
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherCreditNote, doc.VoucherType)
	assert.True(t, doc.IsBalanced())

	sales := findLine(t, doc, tally.LedgerSales)
	assert.True(t, sales.IsDeemedPositive, "return debits sales back")
	require.Len(t, sales.Inventory, 1, "returned items ride the document")
	assert.Equal(t, "Gold Ring", sales.Inventory[0].ItemName)

	party := findLine(t, doc, "Asha Jewels")
	assert.False(t, party.IsDeemedPositive)
	assert.True(t, party.Amount.Equal(dec("5150")))

	gst := findLine(t, doc, tally.LedgerGSTOutput)
	assert.True(t, gst.IsDeemedPositive, "output tax is clawed back on the debit side")

	assert.Contains(t, doc.Narration, "stone damage")
	assert.Contains(t, doc.Narration, "SB-001")
}

func TestEncodeAllKindsBalance(t *testing.T) {
	now := time.Now()

	docs := make([]domain.VoucherDocument, 0, 5)

	d, err := tally.EncodeSalesBill(domain.SalesBill{BillNo: "SB-9", BillDate: now, NetTotal: dec("100"), GSTAmount: dec("3")})
	require.NoError(t, err)
	docs = append(docs, d)

	d, err = tally.EncodePurchaseVoucher(domain.PurchaseVoucher{VoucherNo: "PV-9", VoucherDate: now, NetTotal: dec("100"), SGSTAmount: dec("1.5")})
	require.NoError(t, err)
	docs = append(docs, d)

	d, err = tally.EncodeCashEntry(domain.CashEntry{EntryNo: "CE-9", EntryDate: now, CashType: domain.CashTypeTwo, TransactionType: domain.CashTxnPaymentMade, Amount: dec("42")})
	require.NoError(t, err)
	docs = append(docs, d)

	d, err = tally.EncodePaymentReceipt(domain.PaymentReceipt{ReceiptNo: "PR-9", ReceiptDate: now, TransactionType: "Settlement", Amount: dec("42")})
	require.NoError(t, err)
	docs = append(docs, d)

	d, err = tally.EncodeSalesReturn(domain.SalesReturn{ReturnNo: "SR-9", ReturnDate: now, NetTotal: dec("100"), CGSTAmount: dec("1.5")})
	require.NoError(t, err)
	docs = append(docs, d)

	for _, doc := range docs {
		assert.True(t, doc.IsBalanced(), "voucher %s (%s) must balance", doc.VoucherNumber, doc.VoucherType)
		assert.True(t, doc.DebitTotal().IsPositive())
	}
}
