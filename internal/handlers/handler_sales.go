package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// salesHandler handles sales bill and sales return requests.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesHandler(s portssvc.SalesSvcFacade) *salesHandler {
	return &salesHandler{salesService: s}
}

// registerSalesRoutes wires sales bill and sales return endpoints.
func registerSalesRoutes(rg *gin.RouterGroup, salesSvc portssvc.SalesSvcFacade) {
	h := newSalesHandler(salesSvc)

	bills := rg.Group("/sales-bills")
	{
		bills.POST("", h.createSalesBill)
		bills.GET("", h.listSalesBills)
		bills.GET("/:billID", h.getSalesBill)
	}

	returns := rg.Group("/sales-returns")
	{
		returns.POST("", h.createSalesReturn)
		returns.GET("", h.listSalesReturns)
		returns.GET("/:returnID", h.getSalesReturn)
	}
}

// parseListParams reads the shared limit/nextToken query parameters.
func parseListParams(c *gin.Context) (int, *string) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}
	return limit, nextToken
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: what + " not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("request failed", slog.String("what", what), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createSalesBill godoc
// @Summary Create a sales bill
// @Description Persists a finalized retail bill and triggers Tally auto-sync when enabled.
// @Tags sales
// @Accept json
// @Produce json
// @Param bill body dto.CreateSalesBillRequest true "Sales bill details"
// @Success 201 {object} dto.SalesBillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-bills [post]
func (h *salesHandler) createSalesBill(c *gin.Context) {
	var req dto.CreateSalesBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	bill, err := h.salesService.CreateSalesBill(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "sales bill")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSalesBillResponse(bill))
}

// getSalesBill godoc
// @Summary Get a sales bill
// @Tags sales
// @Produce json
// @Param billID path string true "Sales Bill ID"
// @Success 200 {object} dto.SalesBillResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-bills/{billID} [get]
func (h *salesHandler) getSalesBill(c *gin.Context) {
	bill, err := h.salesService.GetSalesBillByID(c.Request.Context(), c.Param("billID"))
	if err != nil {
		respondServiceError(c, err, "sales bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesBillResponse(bill))
}

// listSalesBills godoc
// @Summary List sales bills
// @Description Returns sales bills newest first with token pagination.
// @Tags sales
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListSalesBillsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-bills [get]
func (h *salesHandler) listSalesBills(c *gin.Context) {
	limit, nextToken := parseListParams(c)
	bills, next, err := h.salesService.ListSalesBills(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "sales bills")
		return
	}

	out := make([]dto.SalesBillResponse, len(bills))
	for i := range bills {
		out[i] = dto.ToSalesBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, dto.ListSalesBillsResponse{Bills: out, NextToken: next})
}

// createSalesReturn godoc
// @Summary Create a sales return
// @Description Records goods returned against an earlier bill; encodes to Tally as a credit note.
// @Tags sales
// @Accept json
// @Produce json
// @Param return body dto.CreateSalesReturnRequest true "Sales return details"
// @Success 201 {object} dto.SalesReturnResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-returns [post]
func (h *salesHandler) createSalesReturn(c *gin.Context) {
	var req dto.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	ret, err := h.salesService.CreateSalesReturn(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "sales return")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSalesReturnResponse(ret))
}

// getSalesReturn godoc
// @Summary Get a sales return
// @Tags sales
// @Produce json
// @Param returnID path string true "Sales Return ID"
// @Success 200 {object} dto.SalesReturnResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-returns/{returnID} [get]
func (h *salesHandler) getSalesReturn(c *gin.Context) {
	ret, err := h.salesService.GetSalesReturnByID(c.Request.Context(), c.Param("returnID"))
	if err != nil {
		respondServiceError(c, err, "sales return")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesReturnResponse(ret))
}

// listSalesReturns godoc
// @Summary List sales returns
// @Tags sales
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} []dto.SalesReturnResponse
// @Security BearerAuth
// @Router /sales-returns [get]
func (h *salesHandler) listSalesReturns(c *gin.Context) {
	limit, nextToken := parseListParams(c)
	returns, next, err := h.salesService.ListSalesReturns(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "sales returns")
		return
	}

	out := make([]dto.SalesReturnResponse, len(returns))
	for i := range returns {
		out[i] = dto.ToSalesReturnResponse(&returns[i])
	}
	c.JSON(http.StatusOK, gin.H{"returns": out, "nextToken": next})
}
