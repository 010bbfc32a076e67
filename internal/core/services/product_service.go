package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// productService provides product catalog operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

// Ensure productService implements the portssvc.ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product. Stock starts at zero regardless of
// the request; it only ever changes through invoices.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() || req.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("%w: product prices and minimum stock must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: decimal.Zero,
		MinimumStock:  req.MinimumStock,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

// GetProductByID retrieves a specific product by its ID.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

// ListProducts retrieves a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, params dto.ListParams) (*dto.ListProductsResponse, error) {
	products, nextToken, err := s.productRepo.ListProducts(ctx, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return dto.ToListProductsResponse(products, nextToken), nil
}

// UpdateProduct updates mutable product fields. The stock rollup cannot be
// edited here; corrections go through compensating invoices.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: purchase price must not be negative", apperrors.ErrValidation)
		}
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price must not be negative", apperrors.ErrValidation)
		}
		product.SellingPrice = *req.SellingPrice
	}
	if req.MinimumStock != nil {
		if req.MinimumStock.IsNegative() {
			return nil, fmt.Errorf("%w: minimum stock must not be negative", apperrors.ErrValidation)
		}
		product.MinimumStock = *req.MinimumStock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = requestingUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}
	return product, nil
}

// DeactivateProduct marks a product as inactive. Existing ledger history is
// untouched; the product just stops being usable on new invoices.
func (s *productService) DeactivateProduct(ctx context.Context, productID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeactivateProduct(ctx, productID, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}
	logger.Info("Product deactivated", slog.String("product_id", productID), slog.String("user_id", requestingUserID))
	return nil
}
