package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productSvc portssvc.ProductSvcFacade
	invoiceSvc portssvc.InvoiceSvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(productSvc portssvc.ProductSvcFacade, invoiceSvc portssvc.InvoiceSvcFacade) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		invoiceSvc: invoiceSvc,
	}
}

// registerProductRoutes registers product CRUD and stock ledger routes.
func registerProductRoutes(rg *gin.RouterGroup, productSvc portssvc.ProductSvcFacade, invoiceSvc portssvc.InvoiceSvcFacade) {
	h := newProductHandler(productSvc, invoiceSvc)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deactivateProduct)
		products.GET("/:productID/movements", h.listProductMovements)
	}
}

// createProduct godoc
// @Summary Create a new product
// @Description Creates a product with zero opening stock
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse "Created product"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Product code already exists"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productSvc.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product
// @Description Retrieves a product by its ID
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse "Product"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productSvc.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Description Retrieves a paginated list of products
// @Tags products
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListProductsResponse "One page of products"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.productSvc.ListProducts(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates mutable product fields; stock cannot be edited here
// @Tags products
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse "Updated product"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productSvc.UpdateProduct(c.Request.Context(), productID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Description Marks a product inactive without touching its ledger history
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.productSvc.DeactivateProduct(c.Request.Context(), productID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to deactivate product", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listProductMovements godoc
// @Summary List a product's stock movements
// @Description Retrieves the append-only stock ledger of a product
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMovementsResponse "One page of movements"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID}/movements [get]
func (h *productHandler) listProductMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceSvc.ListProductMovements(c.Request.Context(), productID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list product movements", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
