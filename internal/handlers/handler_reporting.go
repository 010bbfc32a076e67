package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for reports and rollup
// reconciliation.
type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingSvc portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingSvc: reportingSvc}
}

// registerReportingRoutes registers report and reconciliation routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingSvc)

	reports := rg.Group("/reports")
	{
		reports.GET("/stock", h.stockReport)
		reports.GET("/payables", h.payablesReport)
		reports.GET("/receivables", h.receivablesReport)
		reports.GET("/low-stock", h.lowStockReport)
	}

	reconcile := rg.Group("/reconcile")
	{
		reconcile.GET("/products/:productID", h.reconcileProduct)
		reconcile.GET("/parties/:partyID", h.reconcileParty)
	}
}

// stockReport godoc
// @Summary Stock movement report
// @Description Returns the stock ledger joined with product data, optionally filtered by product and date range
// @Tags reports
// @Produce  json
// @Param   productID query string false "Filter by product"
// @Param   from query string false "Start of movement date range (YYYY-MM-DD)"
// @Param   to query string false "End of movement date range (YYYY-MM-DD)"
// @Success 200 {object} dto.StockReportResponse "Stock report"
// @Router /reports/stock [get]
func (h *reportingHandler) stockReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StockReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.reportingSvc.StockReport(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to build stock report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stock report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// payablesReport godoc
// @Summary Outstanding payables report
// @Description Returns unpaid purchase invoices grouped with their suppliers
// @Tags reports
// @Produce  json
// @Param   partyID query string false "Filter by supplier"
// @Success 200 {object} dto.OutstandingReportResponse "Payables report"
// @Router /reports/payables [get]
func (h *reportingHandler) payablesReport(c *gin.Context) {
	h.outstandingReport(c, domain.InvoiceTypePurchase)
}

// receivablesReport godoc
// @Summary Outstanding receivables report
// @Description Returns unpaid sale invoices grouped with their customers
// @Tags reports
// @Produce  json
// @Param   partyID query string false "Filter by customer"
// @Success 200 {object} dto.OutstandingReportResponse "Receivables report"
// @Router /reports/receivables [get]
func (h *reportingHandler) receivablesReport(c *gin.Context) {
	h.outstandingReport(c, domain.InvoiceTypeSale)
}

func (h *reportingHandler) outstandingReport(c *gin.Context, invoiceType domain.InvoiceType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var partyID *string
	if v, ok := c.GetQuery("partyID"); ok && v != "" {
		partyID = &v
	}

	resp, err := h.reportingSvc.OutstandingReport(c.Request.Context(), invoiceType, partyID)
	if err != nil {
		logger.Error("Failed to build outstanding report", slog.String("error", err.Error()), slog.String("invoice_type", string(invoiceType)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build outstanding report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// lowStockReport godoc
// @Summary Low stock report
// @Description Returns active products at or under their minimum stock level
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.LowStockReportResponse "Low stock report"
// @Router /reports/low-stock [get]
func (h *reportingHandler) lowStockReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingSvc.LowStockReport(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build low stock report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build low stock report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reconcileProduct godoc
// @Summary Reconcile a product's stock rollup
// @Description Recomputes stock from movement history and compares it against the cached value
// @Tags reports
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ReconciliationResponse "Rollup matches history"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} dto.ReconciliationResponse "Rollup drift detected"
// @Router /reconcile/products/{productID} [get]
func (h *reportingHandler) reconcileProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	resp, err := h.reportingSvc.ReconcileProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			c.JSON(http.StatusConflict, resp)
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to reconcile product", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile product"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reconcileParty godoc
// @Summary Reconcile a party's balance rollup
// @Description Recomputes the balance from invoice and settlement history and compares it against the cached value
// @Tags reports
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} dto.ReconciliationResponse "Rollup matches history"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 409 {object} dto.ReconciliationResponse "Rollup drift detected"
// @Router /reconcile/parties/{partyID} [get]
func (h *reportingHandler) reconcileParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	resp, err := h.reportingSvc.ReconcileParty(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			c.JSON(http.StatusConflict, resp)
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to reconcile party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile party"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
