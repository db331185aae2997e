package tally

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

const tallyDateLayout = "20060102"

// xmlEscaper rewrites the five XML metacharacters so free-text fields like
// customer names and narrations cannot break the envelope.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// BuildImportEnvelope serializes a voucher document into the Tally XML import
// request. Debit amounts are written negative on the wire; the document keeps
// positive magnitudes with the debit flag.
func BuildImportEnvelope(doc domain.VoucherDocument, companyName string) string {
	var b strings.Builder
	b.WriteString("<ENVELOPE>")
	b.WriteString("<HEADER>")
	b.WriteString("<VERSION>1</VERSION>")
	b.WriteString("<TALLYREQUEST>Import</TALLYREQUEST>")
	b.WriteString("<TYPE>Data</TYPE>")
	b.WriteString("<ID>Vouchers</ID>")
	b.WriteString("</HEADER>")
	b.WriteString("<BODY>")
	b.WriteString("<DESC><STATICVARIABLES>")
	fmt.Fprintf(&b, "<SVCURRENTCOMPANY>%s</SVCURRENTCOMPANY>", escape(companyName))
	b.WriteString("</STATICVARIABLES></DESC>")
	b.WriteString("<DATA>")
	b.WriteString("<TALLYMESSAGE>")
	writeVoucher(&b, doc)
	b.WriteString("</TALLYMESSAGE>")
	b.WriteString("</DATA>")
	b.WriteString("</BODY>")
	b.WriteString("</ENVELOPE>")
	return b.String()
}

func writeVoucher(b *strings.Builder, doc domain.VoucherDocument) {
	vtype := escape(string(doc.VoucherType))
	fmt.Fprintf(b, `<VOUCHER VCHTYPE="%s" ACTION="Create">`, vtype)
	fmt.Fprintf(b, "<DATE>%s</DATE>", doc.Date.Format(tallyDateLayout))
	fmt.Fprintf(b, "<VOUCHERTYPENAME>%s</VOUCHERTYPENAME>", vtype)
	fmt.Fprintf(b, "<VOUCHERNUMBER>%s</VOUCHERNUMBER>", escape(doc.VoucherNumber))
	fmt.Fprintf(b, "<PARTYLEDGERNAME>%s</PARTYLEDGERNAME>", escape(doc.PartyName))
	fmt.Fprintf(b, "<NARRATION>%s</NARRATION>", escape(doc.Narration))
	for _, line := range doc.Lines {
		writeLedgerLine(b, line)
	}
	for _, line := range doc.Lines {
		for _, inv := range line.Inventory {
			writeInventoryEntry(b, inv)
		}
	}
	b.WriteString("</VOUCHER>")
}

func writeLedgerLine(b *strings.Builder, line domain.LedgerLine) {
	b.WriteString("<ALLLEDGERENTRIES.LIST>")
	fmt.Fprintf(b, "<LEDGERNAME>%s</LEDGERNAME>", escape(line.LedgerName))
	// Tally convention: debits carry ISDEEMEDPOSITIVE=Yes and a negative
	// wire amount.
	if line.IsDeemedPositive {
		b.WriteString("<ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE>")
		fmt.Fprintf(b, "<AMOUNT>%s</AMOUNT>", line.Amount.Neg().String())
	} else {
		b.WriteString("<ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>")
		fmt.Fprintf(b, "<AMOUNT>%s</AMOUNT>", line.Amount.String())
	}
	b.WriteString("</ALLLEDGERENTRIES.LIST>")
}

func writeInventoryEntry(b *strings.Builder, inv domain.InventoryEntry) {
	b.WriteString("<ALLINVENTORYENTRIES.LIST>")
	fmt.Fprintf(b, "<STOCKITEMNAME>%s</STOCKITEMNAME>", escape(inv.ItemName))
	fmt.Fprintf(b, "<RATE>%s</RATE>", inv.Rate.String())
	fmt.Fprintf(b, "<AMOUNT>%s</AMOUNT>", inv.Amount.String())
	qty := fmt.Sprintf("%s %s", inv.Quantity.String(), inv.Unit)
	fmt.Fprintf(b, "<ACTUALQTY>%s</ACTUALQTY>", qty)
	fmt.Fprintf(b, "<BILLEDQTY>%s</BILLEDQTY>", qty)
	b.WriteString("</ALLINVENTORYENTRIES.LIST>")
}

// BuildCompanyInfoProbe is the minimal export request used to verify that a
// Tally instance is reachable and answering. It reads company info and
// imports nothing.
func BuildCompanyInfoProbe() string {
	var b strings.Builder
	b.WriteString("<ENVELOPE>")
	b.WriteString("<HEADER>")
	b.WriteString("<VERSION>1</VERSION>")
	b.WriteString("<TALLYREQUEST>Export</TALLYREQUEST>")
	b.WriteString("<TYPE>Collection</TYPE>")
	b.WriteString("<ID>Company Info</ID>")
	b.WriteString("</HEADER>")
	b.WriteString("<BODY><DESC></DESC></BODY>")
	b.WriteString("</ENVELOPE>")
	return b.String()
}

// ImportResponse is the subset of the Tally import result we act on.
type ImportResponse struct {
	XMLName   xml.Name `xml:"ENVELOPE"`
	Created   int      `xml:"BODY>DATA>IMPORTRESULT>CREATED"`
	Altered   int      `xml:"BODY>DATA>IMPORTRESULT>ALTERED"`
	Errors    int      `xml:"BODY>DATA>IMPORTRESULT>ERRORS"`
	LastVchID string   `xml:"BODY>DATA>IMPORTRESULT>LASTVCHID"`
	LineError string   `xml:"BODY>DATA>LINEERROR"`
}

// DeliveryResult is what came back from a Tally endpoint on a 2xx response.
// Import is nil when the body could not be parsed as an import result; the
// delivery still counts as accepted and ParseNote records why.
type DeliveryResult struct {
	StatusCode int
	RawBody    string
	Import     *ImportResponse
	ParseNote  string
}

// parseImportResponse attempts to decode the response body. Tally instances
// differ in what they return for accepted imports, so a parse failure is an
// annotation, never a delivery failure.
func parseImportResponse(body []byte) (*ImportResponse, string) {
	var resp ImportResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Sprintf("unparsable response body: %v", err)
	}
	return &resp, ""
}
