package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/core/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockProductRepository is a mock type for the ProductRepositoryFacade interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return products, token, args.Error(2)
}

func (m *MockProductRepository) ListProductsBelowMinimum(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, productID, quantity, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProductRepository
	service  portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateProductRequest{
		Code:          "WIDGET-01",
		Name:          "Widget",
		Unit:          "pcs",
		PurchasePrice: decimal.NewFromInt(10),
		SellingPrice:  decimal.NewFromInt(15),
		MinimumStock:  decimal.NewFromInt(5),
	}

	suite.mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	created, err := suite.service.CreateProduct(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ProductID)
	suite.Equal(req.Code, created.Code)
	suite.True(created.StockQuantity.IsZero(), "opening stock must be zero")
	suite.True(created.IsActive)
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Code:          "WIDGET-02",
		Name:          "Widget",
		Unit:          "pcs",
		PurchasePrice: decimal.NewFromInt(-1),
	}

	created, err := suite.service.CreateProduct(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProduct")
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Code: "WIDGET-01", Name: "Widget", Unit: "pcs"}

	dupErr := fmt.Errorf("%w: product code WIDGET-01 already exists", apperrors.ErrDuplicate)
	suite.mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(dupErr).Once()

	created, err := suite.service.CreateProduct(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_MergesProvidedFields() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID:     productID,
		Code:          "WIDGET-01",
		Name:          "Widget",
		Unit:          "pcs",
		StockQuantity: decimal.NewFromInt(7),
		IsActive:      true,
	}
	newName := "Widget Mk2"
	newPrice := decimal.NewFromInt(20)
	req := dto.UpdateProductRequest{Name: &newName, SellingPrice: &newPrice}

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == newName && p.SellingPrice.Equal(newPrice) && p.Unit == "pcs"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProduct(ctx, productID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.True(updated.StockQuantity.Equal(decimal.NewFromInt(7)), "stock rollup must not change on update")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateProduct")
}

func (suite *ProductServiceTestSuite) TestDeactivateProduct_Success() {
	ctx := context.Background()
	productID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("DeactivateProduct", ctx, productID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateProduct(ctx, productID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestListProducts_PassesEffectiveLimit() {
	ctx := context.Background()
	products := []domain.Product{{ProductID: uuid.NewString(), Code: "A"}}

	// Limit 0 falls back to the default page size.
	suite.mockRepo.On("ListProducts", ctx, dto.DefaultListLimit, (*string)(nil)).Return(products, nil, nil).Once()

	resp, err := suite.service.ListProducts(ctx, dto.ListParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Products, 1)
	suite.Nil(resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
