package tally

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// Fixed ledger names expected to exist in the Tally company chart of
// accounts. Party ledgers come from the transaction; everything else is one
// of these.
const (
	LedgerSales      = "Sales"
	LedgerPurchase   = "Purchase"
	LedgerCash       = "Cash"
	LedgerBank       = "Bank"
	LedgerGSTOutput  = "GST Output"
	LedgerCGSTOutput = "CGST Output"
	LedgerSGSTOutput = "SGST Output"
	LedgerGSTInput   = "GST Input"
	LedgerCGSTInput  = "CGST Input"
	LedgerSGSTInput  = "SGST Input"
)

// Placeholder party names used when a transaction carries no party.
const (
	PartyCashCustomer  = "Cash Customer"
	PartyMetalSupplier = "Metal Supplier"
	PartyMiscellaneous = "Miscellaneous"
)

// Stock units. Jewelry moves either by piece or by gram weight.
const (
	UnitPieces = "PCS"
	UnitGrams  = "GMS"
)

// EncodeSalesBill turns a finalized sales bill into a balanced Sales voucher:
// the customer is debited for the gross receivable, Sales is credited the net
// total and each positive tax amount gets its own output-tax credit line.
func EncodeSalesBill(bill domain.SalesBill) (domain.VoucherDocument, error) {
	party := bill.CustomerName
	if party == "" {
		party = PartyCashCustomer
	}

	gross := bill.NetTotal.Add(bill.GSTAmount).Add(bill.CGSTAmount).Add(bill.SGSTAmount)

	salesLine := domain.LedgerLine{
		LedgerName: LedgerSales,
		Amount:     bill.NetTotal,
		Inventory:  salesInventory(bill.Items),
	}

	lines := []domain.LedgerLine{
		{LedgerName: party, Amount: gross, IsDeemedPositive: true},
		salesLine,
	}
	lines = appendTaxLines(lines, false,
		taxAmount{LedgerGSTOutput, bill.GSTAmount},
		taxAmount{LedgerCGSTOutput, bill.CGSTAmount},
		taxAmount{LedgerSGSTOutput, bill.SGSTAmount},
	)

	narration := bill.Narration
	if narration == "" {
		narration = fmt.Sprintf("Sales against bill %s", bill.BillNo)
	}

	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherSales,
		Date:          bill.BillDate,
		VoucherNumber: bill.BillNo,
		PartyName:     party,
		Narration:     narration,
		Lines:         lines,
	}
	return doc, checkBalanced(doc)
}

// EncodePurchaseVoucher mirrors the sales encoding with polarity reversed:
// Purchase is debited, the supplier credited, taxes taken as input credit.
// Stock quantity falls back to item weight in grams when no piece count or
// explicit quantity is recorded, since melt purchases are weighed in.
func EncodePurchaseVoucher(voucher domain.PurchaseVoucher) (domain.VoucherDocument, error) {
	party := voucher.SupplierName
	if party == "" {
		party = PartyMetalSupplier
	}

	gross := voucher.NetTotal.Add(voucher.GSTAmount).Add(voucher.CGSTAmount).Add(voucher.SGSTAmount)

	purchaseLine := domain.LedgerLine{
		LedgerName:       LedgerPurchase,
		Amount:           voucher.NetTotal,
		IsDeemedPositive: true,
		Inventory:        purchaseInventory(voucher.Items),
	}

	lines := []domain.LedgerLine{
		purchaseLine,
		{LedgerName: party, Amount: gross},
	}
	lines = appendTaxLines(lines, true,
		taxAmount{LedgerGSTInput, voucher.GSTAmount},
		taxAmount{LedgerCGSTInput, voucher.CGSTAmount},
		taxAmount{LedgerSGSTInput, voucher.SGSTAmount},
	)

	narration := voucher.Narration
	if narration == "" {
		narration = fmt.Sprintf("Purchase against voucher %s", voucher.VoucherNo)
	}

	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherPurchase,
		Date:          voucher.VoucherDate,
		VoucherNumber: voucher.VoucherNo,
		PartyName:     party,
		Narration:     narration,
		Lines:         lines,
	}
	return doc, checkBalanced(doc)
}

// EncodeCashEntry maps a cash-book movement onto the drawer ledgers. Received
// money debits the drawer, paid money credits it, and a Cash Transfer is the
// fixed two-drawer rotation: a Cash-1 origin debits Cash-2 and credits
// Cash-1, any other origin debits Cash-1 and credits Cash-2.
func EncodeCashEntry(entry domain.CashEntry) (domain.VoucherDocument, error) {
	drawer := cashLedgerFor(entry.CashType)
	party := entry.CustomerName

	var lines []domain.LedgerLine
	switch entry.TransactionType {
	case domain.CashTxnReceived, domain.CashTxnPaymentReceived:
		if party == "" {
			party = PartyCashCustomer
		}
		lines = []domain.LedgerLine{
			{LedgerName: drawer, Amount: entry.Amount, IsDeemedPositive: true},
			{LedgerName: party, Amount: entry.Amount},
		}
	case domain.CashTxnPaid, domain.CashTxnPaymentMade:
		if party == "" {
			party = PartyMiscellaneous
		}
		lines = []domain.LedgerLine{
			{LedgerName: party, Amount: entry.Amount, IsDeemedPositive: true},
			{LedgerName: drawer, Amount: entry.Amount},
		}
	case domain.CashTxnTransfer:
		from, to := CashTypeTwoLedger, CashTypeOneLedger
		if entry.CashType == domain.CashTypeOne {
			from, to = CashTypeOneLedger, CashTypeTwoLedger
		}
		party = from
		lines = []domain.LedgerLine{
			{LedgerName: to, Amount: entry.Amount, IsDeemedPositive: true},
			{LedgerName: from, Amount: entry.Amount},
		}
	default:
		if party == "" {
			party = PartyMiscellaneous
		}
		lines = []domain.LedgerLine{
			{LedgerName: drawer, Amount: entry.Amount, IsDeemedPositive: true},
			{LedgerName: party, Amount: entry.Amount},
		}
	}

	narration := entry.Narration
	if narration == "" {
		narration = fmt.Sprintf("%s entry %s", entry.TransactionType, entry.EntryNo)
	}

	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherCash,
		Date:          entry.EntryDate,
		VoucherNumber: entry.EntryNo,
		PartyName:     party,
		Narration:     narration,
		Lines:         lines,
	}
	return doc, checkBalanced(doc)
}

// Drawer ledger names in the Tally chart of accounts.
const (
	CashTypeOneLedger = "Cash-1"
	CashTypeTwoLedger = "Cash-2"
)

// EncodePaymentReceipt encodes money moving against a party balance.
// "Receipt" and "Payment Received" become a Receipt voucher debiting the cash
// or bank ledger; every other transaction type becomes a Payment voucher with
// the sides reversed. A payment method other than cash selects the Bank
// ledger.
func EncodePaymentReceipt(receipt domain.PaymentReceipt) (domain.VoucherDocument, error) {
	money := cashOrBankLedger(receipt.PaymentMethod)

	var (
		vtype domain.VoucherType
		party = receipt.PartyName
		lines []domain.LedgerLine
	)
	switch receipt.TransactionType {
	case domain.PaymentTxnReceipt, domain.PaymentTxnPaymentReceived:
		vtype = domain.VoucherReceipt
		if party == "" {
			party = PartyCashCustomer
		}
		lines = []domain.LedgerLine{
			{LedgerName: money, Amount: receipt.Amount, IsDeemedPositive: true},
			{LedgerName: party, Amount: receipt.Amount},
		}
	default:
		vtype = domain.VoucherPayment
		if party == "" {
			party = PartyMetalSupplier
		}
		lines = []domain.LedgerLine{
			{LedgerName: party, Amount: receipt.Amount, IsDeemedPositive: true},
			{LedgerName: money, Amount: receipt.Amount},
		}
	}

	narration := receipt.Narration
	if narration == "" {
		narration = fmt.Sprintf("%s %s from %s", receipt.TransactionType, receipt.ReceiptNo, party)
	}

	doc := domain.VoucherDocument{
		VoucherType:   vtype,
		Date:          receipt.ReceiptDate,
		VoucherNumber: receipt.ReceiptNo,
		PartyName:     party,
		Narration:     narration,
		Lines:         lines,
	}
	return doc, checkBalanced(doc)
}

// EncodeSalesReturn encodes a return as a Credit Note: the exact polarity
// reverse of the original sale, with the returned items as the inventory
// entries and the return reason plus original bill reference in the
// narration.
func EncodeSalesReturn(ret domain.SalesReturn) (domain.VoucherDocument, error) {
	party := ret.CustomerName
	if party == "" {
		party = PartyCashCustomer
	}

	gross := ret.NetTotal.Add(ret.GSTAmount).Add(ret.CGSTAmount).Add(ret.SGSTAmount)

	salesLine := domain.LedgerLine{
		LedgerName:       LedgerSales,
		Amount:           ret.NetTotal,
		IsDeemedPositive: true,
		Inventory:        salesInventory(ret.Items),
	}

	lines := []domain.LedgerLine{
		salesLine,
		{LedgerName: party, Amount: gross},
	}
	lines = appendTaxLines(lines, true,
		taxAmount{LedgerGSTOutput, ret.GSTAmount},
		taxAmount{LedgerCGSTOutput, ret.CGSTAmount},
		taxAmount{LedgerSGSTOutput, ret.SGSTAmount},
	)

	var parts []string
	if ret.Reason != "" {
		parts = append(parts, ret.Reason)
	}
	if ret.OriginalBillNo != "" {
		parts = append(parts, fmt.Sprintf("against bill %s", ret.OriginalBillNo))
	}
	narration := "Sales return"
	if len(parts) > 0 {
		narration = fmt.Sprintf("Sales return: %s", strings.Join(parts, " "))
	}

	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherCreditNote,
		Date:          ret.ReturnDate,
		VoucherNumber: ret.ReturnNo,
		PartyName:     party,
		Narration:     narration,
		Lines:         lines,
	}
	return doc, checkBalanced(doc)
}

type taxAmount struct {
	ledger string
	amount decimal.Decimal
}

// appendTaxLines adds one ledger line per tax with a positive amount. Zero
// and negative tax fields produce no line at all.
func appendTaxLines(lines []domain.LedgerLine, debit bool, taxes ...taxAmount) []domain.LedgerLine {
	for _, t := range taxes {
		if t.amount.IsPositive() {
			lines = append(lines, domain.LedgerLine{
				LedgerName:       t.ledger,
				Amount:           t.amount,
				IsDeemedPositive: debit,
			})
		}
	}
	return lines
}

// salesInventory maps bill items to stock entries in pieces. Piece count
// wins over explicit quantity; an item with neither is one piece.
func salesInventory(items []domain.LineItem) []domain.InventoryEntry {
	out := make([]domain.InventoryEntry, 0, len(items))
	for _, it := range items {
		qty := decimal.NewFromInt(1)
		switch {
		case it.Pcs > 0:
			qty = decimal.NewFromInt(int64(it.Pcs))
		case it.Quantity.IsPositive():
			qty = it.Quantity
		}
		out = append(out, domain.InventoryEntry{
			ItemName: it.Name,
			Rate:     it.Rate,
			Amount:   it.Amount,
			Quantity: qty,
			Unit:     UnitPieces,
		})
	}
	return out
}

// purchaseInventory maps purchase items to stock entries in grams, falling
// back to item weight when the supplier records neither pieces nor quantity.
func purchaseInventory(items []domain.LineItem) []domain.InventoryEntry {
	out := make([]domain.InventoryEntry, 0, len(items))
	for _, it := range items {
		qty := it.Weight
		switch {
		case it.Pcs > 0:
			qty = decimal.NewFromInt(int64(it.Pcs))
		case it.Quantity.IsPositive():
			qty = it.Quantity
		}
		out = append(out, domain.InventoryEntry{
			ItemName: it.Name,
			Rate:     it.Rate,
			Amount:   it.Amount,
			Quantity: qty,
			Unit:     UnitGrams,
		})
	}
	return out
}

func cashLedgerFor(cashType string) string {
	switch cashType {
	case domain.CashTypeOne:
		return CashTypeOneLedger
	case domain.CashTypeTwo:
		return CashTypeTwoLedger
	default:
		return LedgerCash
	}
}

// cashOrBankLedger treats an empty or "cash" payment method as the Cash
// ledger and everything else (UPI, card, transfer) as Bank.
func cashOrBankLedger(method string) string {
	if method == "" || strings.EqualFold(method, "cash") {
		return LedgerCash
	}
	return LedgerBank
}

// checkBalanced guards the double-entry invariant. An unbalanced document can
// only come from an encoder defect or corrupted input and must never reach
// the wire.
func checkBalanced(doc domain.VoucherDocument) error {
	if !doc.IsBalanced() {
		return fmt.Errorf("unbalanced %s voucher %s: debits %s, credits %s",
			doc.VoucherType, doc.VoucherNumber, doc.DebitTotal(), doc.CreditTotal())
	}
	return nil
}
