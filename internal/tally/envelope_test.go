package tally_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/goldloom/jewelshop_backend/internal/tally"
)

func TestBuildImportEnvelope_Structure(t *testing.T) {
	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherSales,
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		VoucherNumber: "SB-014",
		PartyName:     "Asha Jewels",
		Narration:     "Sales against bill SB-014",
		Lines: []domain.LedgerLine{
			{LedgerName: "Asha Jewels", Amount: dec("5000"), IsDeemedPositive: true},
			{LedgerName: tally.LedgerSales, Amount: dec("5000")},
		},
	}

	xml := tally.BuildImportEnvelope(doc, "Goldloom Jewellers")

	assert.Contains(t, xml, "<TALLYREQUEST>Import</TALLYREQUEST>")
	assert.Contains(t, xml, "<ID>Vouchers</ID>")
	assert.Contains(t, xml, "<SVCURRENTCOMPANY>Goldloom Jewellers</SVCURRENTCOMPANY>")
	assert.Contains(t, xml, `<VOUCHER VCHTYPE="Sales" ACTION="Create">`)
	assert.Contains(t, xml, "<DATE>20260307</DATE>")
	assert.Contains(t, xml, "<VOUCHERNUMBER>SB-014</VOUCHERNUMBER>")
	assert.Contains(t, xml, "<PARTYLEDGERNAME>Asha Jewels</PARTYLEDGERNAME>")
}

func TestBuildImportEnvelope_DebitAmountsNegativeOnWire(t *testing.T) {
	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherSales,
		Date:          time.Now(),
		VoucherNumber: "SB-015",
		PartyName:     "Asha Jewels",
		Lines: []domain.LedgerLine{
			{LedgerName: "Asha Jewels", Amount: dec("5000"), IsDeemedPositive: true},
			{LedgerName: tally.LedgerSales, Amount: dec("5000")},
		},
	}

	xml := tally.BuildImportEnvelope(doc, "Goldloom Jewellers")

	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE><AMOUNT>-5000</AMOUNT>")
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE><AMOUNT>5000</AMOUNT>")
}

func TestBuildImportEnvelope_EscapesMetacharacters(t *testing.T) {
	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherSales,
		Date:          time.Now(),
		VoucherNumber: "SB-016",
		PartyName:     `R&B "Gems" <Pvt>`,
		Narration:     "customer's order",
		Lines: []domain.LedgerLine{
			{LedgerName: `R&B "Gems" <Pvt>`, Amount: dec("10"), IsDeemedPositive: true},
			{LedgerName: tally.LedgerSales, Amount: dec("10")},
		},
	}

	xml := tally.BuildImportEnvelope(doc, "Gold & Silver Co")

	assert.Contains(t, xml, "<SVCURRENTCOMPANY>Gold &amp; Silver Co</SVCURRENTCOMPANY>")
	assert.Contains(t, xml, "R&amp;B &quot;Gems&quot; &lt;Pvt&gt;")
	assert.Contains(t, xml, "customer&apos;s order")
	assert.NotContains(t, xml, `"Gems"`)
}

func TestBuildImportEnvelope_InventoryEntries(t *testing.T) {
	doc := domain.VoucherDocument{
		VoucherType:   domain.VoucherSales,
		Date:          time.Now(),
		VoucherNumber: "SB-017",
		PartyName:     "Asha Jewels",
		Lines: []domain.LedgerLine{
			{LedgerName: "Asha Jewels", Amount: dec("750"), IsDeemedPositive: true},
			{
				LedgerName: tally.LedgerSales,
				Amount:     dec("750"),
				Inventory: []domain.InventoryEntry{
					{ItemName: "Gold Ring", Rate: dec("750"), Amount: dec("750"), Quantity: dec("1"), Unit: tally.UnitPieces},
				},
			},
		},
	}

	xml := tally.BuildImportEnvelope(doc, "Goldloom Jewellers")

	assert.Contains(t, xml, "<STOCKITEMNAME>Gold Ring</STOCKITEMNAME>")
	assert.Contains(t, xml, "<ACTUALQTY>1 PCS</ACTUALQTY>")
	assert.Contains(t, xml, "<BILLEDQTY>1 PCS</BILLEDQTY>")
}

func TestBuildCompanyInfoProbe(t *testing.T) {
	xml := tally.BuildCompanyInfoProbe()

	assert.Contains(t, xml, "<TALLYREQUEST>Export</TALLYREQUEST>")
	assert.Contains(t, xml, "<ID>Company Info</ID>")
	assert.NotContains(t, xml, "VOUCHER")
}

func TestImportEnvelopeRoundTripsThroughResponseParser(t *testing.T) {
	// A Tally acknowledgment should decode into the import counters.
	body := `<ENVELOPE><HEADER><VERSION>1</VERSION><STATUS>1</STATUS></HEADER>` +
		`<BODY><DATA><IMPORTRESULT><CREATED>1</CREATED><ALTERED>0</ALTERED><ERRORS>0</ERRORS></IMPORTRESULT></DATA></BODY></ENVELOPE>`

	resp := deliverRawBody(t, body)
	require.NotNil(t, resp.Import)
	assert.Equal(t, 1, resp.Import.Created)
	assert.Equal(t, 0, resp.Import.Errors)
	assert.Empty(t, resp.ParseNote)
}
