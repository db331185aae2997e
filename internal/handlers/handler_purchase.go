package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// purchaseHandler handles purchase voucher requests.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(p portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: p}
}

func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseSvc portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseSvc)

	vouchers := rg.Group("/purchase-vouchers")
	{
		vouchers.POST("", h.createPurchaseVoucher)
		vouchers.GET("", h.listPurchaseVouchers)
		vouchers.GET("/:voucherID", h.getPurchaseVoucher)
	}
}

// createPurchaseVoucher godoc
// @Summary Create a purchase voucher
// @Description Persists a supplier purchase and triggers Tally auto-sync when enabled.
// @Tags purchase
// @Accept json
// @Produce json
// @Param voucher body dto.CreatePurchaseVoucherRequest true "Purchase voucher details"
// @Success 201 {object} dto.PurchaseVoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-vouchers [post]
func (h *purchaseHandler) createPurchaseVoucher(c *gin.Context) {
	var req dto.CreatePurchaseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	voucher, err := h.purchaseService.CreatePurchaseVoucher(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "purchase voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseVoucherResponse(voucher))
}

// getPurchaseVoucher godoc
// @Summary Get a purchase voucher
// @Tags purchase
// @Produce json
// @Param voucherID path string true "Purchase Voucher ID"
// @Success 200 {object} dto.PurchaseVoucherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-vouchers/{voucherID} [get]
func (h *purchaseHandler) getPurchaseVoucher(c *gin.Context) {
	voucher, err := h.purchaseService.GetPurchaseVoucherByID(c.Request.Context(), c.Param("voucherID"))
	if err != nil {
		respondServiceError(c, err, "purchase voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseVoucherResponse(voucher))
}

// listPurchaseVouchers godoc
// @Summary List purchase vouchers
// @Description Returns purchase vouchers newest first with token pagination.
// @Tags purchase
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListPurchaseVouchersResponse
// @Security BearerAuth
// @Router /purchase-vouchers [get]
func (h *purchaseHandler) listPurchaseVouchers(c *gin.Context) {
	limit, nextToken := parseListParams(c)
	vouchers, next, err := h.purchaseService.ListPurchaseVouchers(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "purchase vouchers")
		return
	}

	out := make([]dto.PurchaseVoucherResponse, len(vouchers))
	for i := range vouchers {
		out[i] = dto.ToPurchaseVoucherResponse(&vouchers[i])
	}
	c.JSON(http.StatusOK, dto.ListPurchaseVouchersResponse{Vouchers: out, NextToken: next})
}
