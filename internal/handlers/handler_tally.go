package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/dto"
	"github.com/goldloom/jewelshop_backend/internal/middleware"
)

// tallyHandler exposes the Tally synchronization subsystem: configuration,
// connection probe, sync ledger, manual per-transaction sync and the retry
// sweep. Manual sync loads the source transaction through the owning service
// so a deleted transaction surfaces as 404 rather than a ledger write.
type tallyHandler struct {
	tallyService    portssvc.TallySvcFacade
	salesService    portssvc.SalesSvcFacade
	purchaseService portssvc.PurchaseSvcFacade
	cashService     portssvc.CashSvcFacade
}

func newTallyHandler(services *portssvc.ServiceContainer) *tallyHandler {
	return &tallyHandler{
		tallyService:    services.Tally,
		salesService:    services.Sales,
		purchaseService: services.Purchase,
		cashService:     services.Cash,
	}
}

func RegisterTallyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTallyHandler(services)

	// Outbound deliveries to Tally are slow; keep callers from hammering them.
	rate, _ := limiter.NewRateFromFormatted("30-M")
	pushLimiter := middleware.GinMiddlewarize(limiter.New(memory.NewStore(), rate))

	tally := rg.Group("/tally")
	{
		tally.GET("/config", h.getConfig)
		tally.PUT("/config", h.updateConfig)
		tally.POST("/test-connection", pushLimiter, h.testConnection)
		tally.GET("/logs", h.getSyncLogs)
		tally.POST("/retry", pushLimiter, h.retryFailedSyncs)
		tally.POST("/sync/:kind/:id", pushLimiter, h.syncTransaction)
	}
}

// getConfig godoc
// @Summary Get the Tally sync configuration
// @Description Returns the stored configuration without credential material.
// @Tags tally
// @Produce json
// @Success 200 {object} dto.TallyConfigResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tally/config [get]
func (h *tallyHandler) getConfig(c *gin.Context) {
	cfg, err := h.tallyService.GetConfig(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "tally config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// updateConfig godoc
// @Summary Update the Tally sync configuration
// @Description Applies a partial update; omitted fields keep their stored values and credentials are re-encrypted only when supplied.
// @Tags tally
// @Accept json
// @Produce json
// @Param config body dto.UpdateTallyConfigRequest true "Configuration changes"
// @Success 200 {object} dto.TallyConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /tally/config [put]
func (h *tallyHandler) updateConfig(c *gin.Context) {
	var req dto.UpdateTallyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identifier missing"})
		return
	}

	cfg, err := h.tallyService.UpdateConfig(c.Request.Context(), req, updaterUserID)
	if err != nil {
		respondServiceError(c, err, "tally config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// testConnection godoc
// @Summary Probe the configured Tally endpoint
// @Description Sends a lightweight company-info request and reports reachability.
// @Tags tally
// @Produce json
// @Success 200 {object} dto.TallyConnectionResult
// @Security BearerAuth
// @Router /tally/test-connection [post]
func (h *tallyHandler) testConnection(c *gin.Context) {
	result := h.tallyService.TestConnection(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

// getSyncLogs godoc
// @Summary List sync ledger entries
// @Description Returns recent sync attempts newest first, optionally filtered by status.
// @Tags tally
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Param status query string false "Filter by status" Enums(pending, success, failed)
// @Success 200 {object} []dto.SyncLogResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tally/logs [get]
func (h *tallyHandler) getSyncLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var status *domain.SyncStatus
	if s := c.Query("status"); s != "" {
		parsed := domain.SyncStatus(s)
		switch parsed {
		case domain.SyncPending, domain.SyncSuccess, domain.SyncFailed:
			status = &parsed
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown status filter: " + s})
			return
		}
	}

	entries, err := h.tallyService.GetSyncLogs(c.Request.Context(), limit, status)
	if err != nil {
		respondServiceError(c, err, "sync logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": dto.ToSyncLogResponses(entries)})
}

// retryFailedSyncs godoc
// @Summary Retry failed syncs
// @Description Replays failed ledger entries below the attempt cap, oldest first, one at a time.
// @Tags tally
// @Produce json
// @Param maxAttempts query int false "Attempt cap override"
// @Success 200 {object} []dto.TallyRetryOutcome
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tally/retry [post]
func (h *tallyHandler) retryFailedSyncs(c *gin.Context) {
	maxAttempts, _ := strconv.Atoi(c.DefaultQuery("maxAttempts", "0"))

	outcomes, err := h.tallyService.RetryFailedSyncs(c.Request.Context(), maxAttempts)
	if err != nil {
		respondServiceError(c, err, "retry sweep")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": outcomes})
}

// syncTransaction godoc
// @Summary Manually sync one transaction
// @Description Loads the transaction by kind and ID and pushes it to Tally regardless of auto-sync mode.
// @Tags tally
// @Produce json
// @Param kind path string true "Transaction kind" Enums(sales_bill, purchase_voucher, cash_entry, payment_receipt, sales_return)
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TallySyncResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tally/sync/{kind}/{id} [post]
func (h *tallyHandler) syncTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var result dto.TallySyncResult
	switch domain.TransactionKind(c.Param("kind")) {
	case domain.KindSalesBill:
		bill, err := h.salesService.GetSalesBillByID(ctx, id)
		if err != nil {
			h.respondLoadError(c, err)
			return
		}
		result = h.tallyService.SyncSalesBill(ctx, *bill, false)
	case domain.KindPurchaseVoucher:
		voucher, err := h.purchaseService.GetPurchaseVoucherByID(ctx, id)
		if err != nil {
			h.respondLoadError(c, err)
			return
		}
		result = h.tallyService.SyncPurchaseVoucher(ctx, *voucher, false)
	case domain.KindCashEntry:
		entry, err := h.cashService.GetCashEntryByID(ctx, id)
		if err != nil {
			h.respondLoadError(c, err)
			return
		}
		result = h.tallyService.SyncCashEntry(ctx, *entry, false)
	case domain.KindPaymentReceipt:
		receipt, err := h.cashService.GetPaymentReceiptByID(ctx, id)
		if err != nil {
			h.respondLoadError(c, err)
			return
		}
		result = h.tallyService.SyncPaymentReceipt(ctx, *receipt, false)
	case domain.KindSalesReturn:
		ret, err := h.salesService.GetSalesReturnByID(ctx, id)
		if err != nil {
			h.respondLoadError(c, err)
			return
		}
		result = h.tallyService.SyncSalesReturn(ctx, *ret, false)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown transaction kind: " + c.Param("kind")})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *tallyHandler) respondLoadError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		return
	}
	respondServiceError(c, err, "transaction")
}
