package dto

import (
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSalesBillRequest creates a finalized retail bill. Alternate camelCase
// fields exist for legacy clients; snake_case wins when both are present.
type CreateSalesBillRequest struct {
	BillNo          string            `json:"bill_no" binding:"required"`
	BillDate        time.Time         `json:"bill_date" binding:"required"`
	CustomerName    string            `json:"customer_name"`
	CustomerNameAlt string            `json:"customerName"`
	Items           []LineItemRequest `json:"items"`
	NetTotal        decimal.Decimal   `json:"net_total"`
	NetTotalAlt     *decimal.Decimal  `json:"netTotal"`
	GSTAmount       decimal.Decimal   `json:"gst_amount"`
	GSTAmountAlt    *decimal.Decimal  `json:"gst"`
	CGSTAmount      decimal.Decimal   `json:"cgst_amount"`
	CGSTAmountAlt   *decimal.Decimal  `json:"cgst"`
	SGSTAmount      decimal.Decimal   `json:"sgst_amount"`
	SGSTAmountAlt   *decimal.Decimal  `json:"sgst"`
	Narration       string            `json:"narration"`
}

// ToDomain resolves alternate field names and builds the domain bill.
// Entity ID and audit fields are assigned by the service.
func (r CreateSalesBillRequest) ToDomain() domain.SalesBill {
	return domain.SalesBill{
		BillNo:       r.BillNo,
		BillDate:     r.BillDate,
		CustomerName: firstNonEmpty(r.CustomerName, r.CustomerNameAlt),
		Items:        ResolveLineItems(r.Items),
		NetTotal:     firstNonZero(r.NetTotal, r.NetTotalAlt),
		GSTAmount:    firstNonZero(r.GSTAmount, r.GSTAmountAlt),
		CGSTAmount:   firstNonZero(r.CGSTAmount, r.CGSTAmountAlt),
		SGSTAmount:   firstNonZero(r.SGSTAmount, r.SGSTAmountAlt),
		Narration:    r.Narration,
	}
}

// SalesBillResponse is the API view of a sales bill.
type SalesBillResponse struct {
	BillID       string            `json:"billID"`
	BillNo       string            `json:"billNo"`
	BillDate     time.Time         `json:"billDate"`
	CustomerName string            `json:"customerName"`
	Items        []domain.LineItem `json:"items,omitempty"`
	NetTotal     decimal.Decimal   `json:"netTotal"`
	GSTAmount    decimal.Decimal   `json:"gstAmount"`
	CGSTAmount   decimal.Decimal   `json:"cgstAmount"`
	SGSTAmount   decimal.Decimal   `json:"sgstAmount"`
	Narration    string            `json:"narration,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ToSalesBillResponse maps a domain bill to its API view.
func ToSalesBillResponse(b *domain.SalesBill) SalesBillResponse {
	return SalesBillResponse{
		BillID:       b.BillID,
		BillNo:       b.BillNo,
		BillDate:     b.BillDate,
		CustomerName: b.CustomerName,
		Items:        b.Items,
		NetTotal:     b.NetTotal,
		GSTAmount:    b.GSTAmount,
		CGSTAmount:   b.CGSTAmount,
		SGSTAmount:   b.SGSTAmount,
		Narration:    b.Narration,
		CreatedAt:    b.CreatedAt,
	}
}

// ListSalesBillsResponse is a token-paginated page of bills.
type ListSalesBillsResponse struct {
	Bills     []SalesBillResponse `json:"bills"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// CreateSalesReturnRequest records goods returned against an earlier bill.
type CreateSalesReturnRequest struct {
	ReturnNo          string            `json:"return_no" binding:"required"`
	ReturnDate        time.Time         `json:"return_date" binding:"required"`
	CustomerName      string            `json:"customer_name"`
	CustomerNameAlt   string            `json:"customerName"`
	Items             []LineItemRequest `json:"items"`
	NetTotal          decimal.Decimal   `json:"net_total"`
	NetTotalAlt       *decimal.Decimal  `json:"netTotal"`
	GSTAmount         decimal.Decimal   `json:"gst_amount"`
	GSTAmountAlt      *decimal.Decimal  `json:"gst"`
	CGSTAmount        decimal.Decimal   `json:"cgst_amount"`
	CGSTAmountAlt     *decimal.Decimal  `json:"cgst"`
	SGSTAmount        decimal.Decimal   `json:"sgst_amount"`
	SGSTAmountAlt     *decimal.Decimal  `json:"sgst"`
	Reason            string            `json:"reason"`
	OriginalBillNo    string            `json:"original_bill_no"`
	OriginalBillNoAlt string            `json:"originalBillNo"`
}

// ToDomain resolves alternate field names and builds the domain return.
func (r CreateSalesReturnRequest) ToDomain() domain.SalesReturn {
	return domain.SalesReturn{
		ReturnNo:       r.ReturnNo,
		ReturnDate:     r.ReturnDate,
		CustomerName:   firstNonEmpty(r.CustomerName, r.CustomerNameAlt),
		Items:          ResolveLineItems(r.Items),
		NetTotal:       firstNonZero(r.NetTotal, r.NetTotalAlt),
		GSTAmount:      firstNonZero(r.GSTAmount, r.GSTAmountAlt),
		CGSTAmount:     firstNonZero(r.CGSTAmount, r.CGSTAmountAlt),
		SGSTAmount:     firstNonZero(r.SGSTAmount, r.SGSTAmountAlt),
		Reason:         r.Reason,
		OriginalBillNo: firstNonEmpty(r.OriginalBillNo, r.OriginalBillNoAlt),
	}
}

// SalesReturnResponse is the API view of a sales return.
type SalesReturnResponse struct {
	ReturnID       string            `json:"returnID"`
	ReturnNo       string            `json:"returnNo"`
	ReturnDate     time.Time         `json:"returnDate"`
	CustomerName   string            `json:"customerName"`
	Items          []domain.LineItem `json:"items,omitempty"`
	NetTotal       decimal.Decimal   `json:"netTotal"`
	Reason         string            `json:"reason,omitempty"`
	OriginalBillNo string            `json:"originalBillNo,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ToSalesReturnResponse maps a domain return to its API view.
func ToSalesReturnResponse(r *domain.SalesReturn) SalesReturnResponse {
	return SalesReturnResponse{
		ReturnID:       r.ReturnID,
		ReturnNo:       r.ReturnNo,
		ReturnDate:     r.ReturnDate,
		CustomerName:   r.CustomerName,
		Items:          r.Items,
		NetTotal:       r.NetTotal,
		Reason:         r.Reason,
		OriginalBillNo: r.OriginalBillNo,
		CreatedAt:      r.CreatedAt,
	}
}
