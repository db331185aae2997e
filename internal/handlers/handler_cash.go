package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// cashHandler handles cash book entries and payment receipts.
type cashHandler struct {
	cashService portssvc.CashSvcFacade
}

func newCashHandler(cs portssvc.CashSvcFacade) *cashHandler {
	return &cashHandler{cashService: cs}
}

func registerCashRoutes(rg *gin.RouterGroup, cashSvc portssvc.CashSvcFacade) {
	h := newCashHandler(cashSvc)

	entries := rg.Group("/cash-entries")
	{
		entries.POST("", h.createCashEntry)
		entries.GET("", h.listCashEntries)
		entries.GET("/:entryID", h.getCashEntry)
	}

	receipts := rg.Group("/payment-receipts")
	{
		receipts.POST("", h.createPaymentReceipt)
		receipts.GET("", h.listPaymentReceipts)
		receipts.GET("/:receiptID", h.getPaymentReceipt)
	}
}

// createCashEntry godoc
// @Summary Create a cash entry
// @Description Records a single cash-book movement and triggers Tally auto-sync when enabled.
// @Tags cash
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashEntryRequest true "Cash entry details"
// @Success 201 {object} dto.CashEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-entries [post]
func (h *cashHandler) createCashEntry(c *gin.Context) {
	var req dto.CreateCashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	entry, err := h.cashService.CreateCashEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "cash entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashEntryResponse(entry))
}

// getCashEntry godoc
// @Summary Get a cash entry
// @Tags cash
// @Produce json
// @Param entryID path string true "Cash Entry ID"
// @Success 200 {object} dto.CashEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-entries/{entryID} [get]
func (h *cashHandler) getCashEntry(c *gin.Context) {
	entry, err := h.cashService.GetCashEntryByID(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err, "cash entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashEntryResponse(entry))
}

// listCashEntries godoc
// @Summary List cash entries
// @Tags cash
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} []dto.CashEntryResponse
// @Security BearerAuth
// @Router /cash-entries [get]
func (h *cashHandler) listCashEntries(c *gin.Context) {
	limit, nextToken := parseListParams(c)
	entries, next, err := h.cashService.ListCashEntries(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "cash entries")
		return
	}

	out := make([]dto.CashEntryResponse, len(entries))
	for i := range entries {
		out[i] = dto.ToCashEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"entries": out, "nextToken": next})
}

// createPaymentReceipt godoc
// @Summary Create a payment receipt
// @Description Records a party payment or receipt and triggers Tally auto-sync when enabled.
// @Tags cash
// @Accept json
// @Produce json
// @Param receipt body dto.CreatePaymentReceiptRequest true "Payment receipt details"
// @Success 201 {object} dto.PaymentReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-receipts [post]
func (h *cashHandler) createPaymentReceipt(c *gin.Context) {
	var req dto.CreatePaymentReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	receipt, err := h.cashService.CreatePaymentReceipt(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "payment receipt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentReceiptResponse(receipt))
}

// getPaymentReceipt godoc
// @Summary Get a payment receipt
// @Tags cash
// @Produce json
// @Param receiptID path string true "Payment Receipt ID"
// @Success 200 {object} dto.PaymentReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-receipts/{receiptID} [get]
func (h *cashHandler) getPaymentReceipt(c *gin.Context) {
	receipt, err := h.cashService.GetPaymentReceiptByID(c.Request.Context(), c.Param("receiptID"))
	if err != nil {
		respondServiceError(c, err, "payment receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentReceiptResponse(receipt))
}

// listPaymentReceipts godoc
// @Summary List payment receipts
// @Tags cash
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} []dto.PaymentReceiptResponse
// @Security BearerAuth
// @Router /payment-receipts [get]
func (h *cashHandler) listPaymentReceipts(c *gin.Context) {
	limit, nextToken := parseListParams(c)
	receipts, next, err := h.cashService.ListPaymentReceipts(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "payment receipts")
		return
	}

	out := make([]dto.PaymentReceiptResponse, len(receipts))
	for i := range receipts {
		out[i] = dto.ToPaymentReceiptResponse(&receipts[i])
	}
	c.JSON(http.StatusOK, gin.H{"receipts": out, "nextToken": next})
}
