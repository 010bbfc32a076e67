package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
// Stock is always zero at creation; it only moves through invoices.
type CreateProductRequest struct {
	Code          string          `json:"code" binding:"required,max=50"`
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description" binding:"max=1000"`
	Unit          string          `json:"unit" binding:"required,max=20"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Unit          *string          `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	MinimumStock  *decimal.Decimal `json:"minimumStock"`
	IsActive      *bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListProductsResponse carries one page of products.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListProductsResponse converts a page of domain products to the response DTO.
func ToListProductsResponse(products []domain.Product, nextToken *string) *ListProductsResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return &ListProductsResponse{Products: res, NextToken: nextToken}
}
