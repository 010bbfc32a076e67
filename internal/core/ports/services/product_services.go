package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, params dto.ListParams) (*dto.ListProductsResponse, error)
}

// ProductWriterSvc defines write operations for product data
type ProductWriterSvc interface {
	// CreateProduct persists a new product with zero opening stock.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct updates mutable product fields.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)

	// DeactivateProduct marks a product as inactive.
	DeactivateProduct(ctx context.Context, productID string, requestingUserID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
