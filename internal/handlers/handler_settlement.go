package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/core/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests for one settlement type. It is
// registered twice, once under /payable-payments and once under
// /receivable-payments.
type settlementHandler struct {
	settlementSvc  portssvc.SettlementSvcFacade
	settlementType domain.SettlementType
}

// newSettlementHandler creates a new settlementHandler bound to one settlement type.
func newSettlementHandler(settlementSvc portssvc.SettlementSvcFacade, settlementType domain.SettlementType) *settlementHandler {
	return &settlementHandler{
		settlementSvc:  settlementSvc,
		settlementType: settlementType,
	}
}

// registerSettlementRoutes registers routes for one settlement type under
// the given path segment.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementSvc portssvc.SettlementSvcFacade, settlementType domain.SettlementType, path string) {
	h := newSettlementHandler(settlementSvc, settlementType)

	settlements := rg.Group("/" + path)
	{
		settlements.POST("", h.recordSettlement)
		settlements.GET("", h.listSettlements)
		settlements.GET("/:settlementID", h.getSettlement)
		settlements.DELETE("/:settlementID", h.reverseSettlement)
	}
}

// recordSettlement godoc
// @Summary Record a payment
// @Description Applies a payment against an invoice (or on account), updating the invoice paid amount, payment status, and party balance atomically
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlement body dto.CreateSettlementRequest true "Payment details"
// @Success 201 {object} dto.SettlementResponse "Recorded settlement with the updated invoice, if any"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Party or invoice not found"
// @Failure 409 {object} map[string]string "Payment number already exists"
// @Failure 422 {object} map[string]string "Payment exceeds outstanding amount"
// @Router /receivable-payments [post]
func (h *settlementHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settlement, invoice, err := h.settlementSvc.RecordSettlement(c.Request.Context(), h.settlementType, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOverpayment):
			logger.Warn("Overpayment rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrSettlementNotPositive),
			errors.Is(err, services.ErrInvoiceTypeMismatch),
			errors.Is(err, services.ErrInvoicePartyMismatch),
			errors.Is(err, services.ErrPartyTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record settlement"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement, invoice))
}

// getSettlement godoc
// @Summary Get a settlement
// @Description Retrieves a settlement by its ID
// @Tags settlements
// @Produce  json
// @Param   settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse "Settlement"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /receivable-payments/{settlementID} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlementID")

	settlement, err := h.settlementSvc.GetSettlementByID(c.Request.Context(), settlementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
			return
		}
		logger.Error("Failed to get settlement", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settlement"})
		return
	}

	if settlement.SettlementType != h.settlementType {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement, nil))
}

// listSettlements godoc
// @Summary List payable or receivable payments
// @Description Retrieves a paginated list of settlements of one type, optionally filtered by party or invoice
// @Tags settlements
// @Produce  json
// @Param   partyID query string false "Filter by party"
// @Param   invoiceID query string false "Filter by invoice"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSettlementsResponse "One page of settlements"
// @Router /receivable-payments [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSettlementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.settlementSvc.ListSettlements(c.Request.Context(), h.settlementType, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list settlements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseSettlement godoc
// @Summary Reverse a settlement
// @Description Deletes the settlement and rolls back the invoice paid amount, payment status, and party balance atomically
// @Tags settlements
// @Produce  json
// @Param   settlementID path string true "Settlement ID"
// @Success 200 {object} dto.InvoiceResponse "Invoice after rollback, if the settlement targeted one"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Router /receivable-payments/{settlementID} [delete]
func (h *settlementHandler) reverseSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlementID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.settlementSvc.ReverseSettlement(c.Request.Context(), settlementID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
			return
		}
		logger.Error("Failed to reverse settlement", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse settlement"})
		return
	}

	if invoice == nil {
		c.Status(http.StatusNoContent)
		return
	}
	resp := dto.ToInvoiceResponse(invoice)
	c.JSON(http.StatusOK, resp)
}
