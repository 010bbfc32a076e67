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

// invoiceHandler handles HTTP requests for one invoice type. It is
// registered twice, once under /purchases and once under /sales.
type invoiceHandler struct {
	invoiceSvc  portssvc.InvoiceSvcFacade
	invoiceType domain.InvoiceType
}

// newInvoiceHandler creates a new invoiceHandler bound to one invoice type.
func newInvoiceHandler(invoiceSvc portssvc.InvoiceSvcFacade, invoiceType domain.InvoiceType) *invoiceHandler {
	return &invoiceHandler{
		invoiceSvc:  invoiceSvc,
		invoiceType: invoiceType,
	}
}

// RegisterInvoiceRoutes registers routes for one invoice type under the
// given path segment.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceSvc portssvc.InvoiceSvcFacade, invoiceType domain.InvoiceType, path string) {
	h := newInvoiceHandler(invoiceSvc, invoiceType)

	invoices := rg.Group("/" + path)
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
	}
}

// createInvoice godoc
// @Summary Record a purchase or sale
// @Description Atomically creates the invoice, its items, one stock movement per item, and the balance rollups
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice with items"
// @Success 201 {object} dto.InvoiceResponse "Created invoice"
// @Failure 400 {object} map[string]string "Invalid request or totals"
// @Failure 404 {object} map[string]string "Party or product not found"
// @Failure 409 {object} map[string]string "Invoice number already exists"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Router /purchases [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var invoice *domain.Invoice
	var err error
	if h.invoiceType == domain.InvoiceTypePurchase {
		invoice, err = h.invoiceSvc.CreatePurchase(c.Request.Context(), req, creatorUserID)
	} else {
		invoice, err = h.invoiceSvc.CreateSale(c.Request.Context(), req, creatorUserID)
	}
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientStock):
			logger.Warn("Insufficient stock for invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrInvoiceNoItems),
			errors.Is(err, services.ErrLineItemMismatch),
			errors.Is(err, services.ErrInvalidTotals),
			errors.Is(err, services.ErrPartyTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its items; payment status is derived against the current clock
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "Invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /purchases/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceSvc.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}

	// A purchases route must not serve sales and vice versa.
	if invoice.InvoiceType != h.invoiceType {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List purchases or sales
// @Description Retrieves a paginated list of invoices of one type, optionally filtered by party
// @Tags invoices
// @Produce  json
// @Param   partyID query string false "Filter by party"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListInvoicesResponse "One page of invoices"
// @Router /purchases [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceSvc.ListInvoices(c.Request.Context(), h.invoiceType, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
