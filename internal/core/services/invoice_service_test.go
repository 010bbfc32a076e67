package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/core/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryWithTx interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceType domain.InvoiceType, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceType, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListInvoicesFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	args := m.Called(ctx, productID, limit, nextToken)
	var movements []domain.StockMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.StockMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paidAmount decimal.Decimal, status domain.PaymentStatus, userID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, paidAmount, status, userID, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockProductRepo *MockProductRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.InvoiceSvcFacade

	customer *domain.Party
	supplier *domain.Party
	product  domain.Product
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProductRepo, suite.mockPartyRepo)

	suite.customer = &domain.Party{
		PartyID:   uuid.NewString(),
		PartyType: domain.PartyTypeCustomer,
		Code:      "CUST-01",
		IsActive:  true,
	}
	suite.supplier = &domain.Party{
		PartyID:   uuid.NewString(),
		PartyType: domain.PartyTypeSupplier,
		Code:      "SUP-01",
		IsActive:  true,
	}
	suite.product = domain.Product{
		ProductID:     uuid.NewString(),
		Code:          "WIDGET-01",
		StockQuantity: decimal.NewFromInt(10),
		IsActive:      true,
	}
}

// validSaleRequest builds a consistent two-unit sale against the suite's
// customer and product: 2 x 10 = 20 subtotal, 2 tax, 22 total.
func (suite *InvoiceServiceTestSuite) validSaleRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceNumber:   "SAL-2025-001",
		PartyID:         suite.customer.PartyID,
		TransactionDate: time.Now().UTC(),
		Subtotal:        decimal.NewFromInt(20),
		TaxAmount:       decimal.NewFromInt(2),
		DiscountAmount:  decimal.Zero,
		TotalAmount:     decimal.NewFromInt(22),
		Items: []dto.CreateInvoiceItemRequest{
			{
				ProductID:      suite.product.ProductID,
				Quantity:       decimal.NewFromInt(2),
				UnitPrice:      decimal.NewFromInt(10),
				DiscountAmount: decimal.Zero,
				TotalAmount:    decimal.NewFromInt(20),
			},
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.validSaleRequest()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	created, err := suite.service.CreateSale(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.InvoiceTypeSale, created.InvoiceType)
	suite.True(created.PaidAmount.IsZero())
	suite.Equal(domain.PaymentStatusPending, created.PaymentStatus)
	suite.Require().Len(created.Items, 1)
	suite.Equal(created.InvoiceID, created.Items[0].InvoiceID)
	suite.Equal(creatorUserID, created.CreatedBy)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.InvoiceNumber = "PUR-2025-001"
	req.PartyID = suite.supplier.PartyID

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.supplier.PartyID).Return(suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	created, err := suite.service.CreatePurchase(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceTypePurchase, created.InvoiceType)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoItems() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.Items = nil

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvoiceNoItems)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_LineItemMismatch() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.Items[0].TotalAmount = decimal.NewFromInt(19) // 2 x 10 - 0 is 20

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineItemMismatch)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DiscountExceedsLineAmount() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.Items = []dto.CreateInvoiceItemRequest{
		{
			ProductID:      suite.product.ProductID,
			Quantity:       decimal.NewFromInt(1),
			UnitPrice:      decimal.NewFromInt(1),
			DiscountAmount: decimal.NewFromInt(5),
			TotalAmount:    decimal.NewFromInt(-4), // arithmetically consistent but negative
		},
	}
	req.Subtotal = decimal.NewFromInt(-4)
	req.TaxAmount = decimal.Zero
	req.TotalAmount = decimal.NewFromInt(-4)

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeTotal() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.DiscountAmount = decimal.NewFromInt(30) // subtotal 20 + tax 2 - discount 30
	req.TotalAmount = decimal.NewFromInt(-8)

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_HeaderTotalsMismatch() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.TotalAmount = decimal.NewFromInt(25) // subtotal + tax - discount is 22

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTotals)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateSale_PartyTypeMismatch() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.PartyID = suite.supplier.PartyID

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.supplier.PartyID).Return(suite.supplier, nil).Once()

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartyTypeMismatch)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateSale_InactiveParty() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	suite.customer.IsActive = false

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *InvoiceServiceTestSuite) TestCreateSale_UnknownProduct() {
	ctx := context.Background()
	req := suite.validSaleRequest()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{}, nil).Once()

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	suite.product.StockQuantity = decimal.NewFromInt(1) // selling 2

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()

	created, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreatePurchase_IgnoresStockLevel() {
	ctx := context.Background()
	req := suite.validSaleRequest()
	req.InvoiceNumber = "PUR-2025-002"
	req.PartyID = suite.supplier.PartyID
	suite.product.StockQuantity = decimal.Zero // purchases never need stock

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.supplier.PartyID).Return(suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	created, err := suite.service.CreatePurchase(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_RederivesOverdue() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	pastDue := time.Now().UTC().Add(-48 * time.Hour)
	stored := &domain.Invoice{
		InvoiceID:     invoiceID,
		InvoiceType:   domain.InvoiceTypeSale,
		TotalAmount:   decimal.NewFromInt(100),
		PaidAmount:    decimal.Zero,
		DueDate:       &pastDue,
		PaymentStatus: domain.PaymentStatusPending, // stale stored status
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockInvoiceRepo.On("FindItemsByInvoiceID", ctx, invoiceID).Return([]domain.InvoiceItem{}, nil).Once()

	got, err := suite.service.GetInvoiceByID(ctx, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusOverdue, got.PaymentStatus)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_FiltersByTypeAndParty() {
	ctx := context.Background()
	partyID := suite.customer.PartyID
	invoices := []domain.Invoice{{
		InvoiceID:     uuid.NewString(),
		InvoiceType:   domain.InvoiceTypeSale,
		TotalAmount:   decimal.NewFromInt(50),
		PaidAmount:    decimal.NewFromInt(50),
		PaymentStatus: domain.PaymentStatusPaid,
	}}
	expectedFilter := portsrepo.ListInvoicesFilter{InvoiceType: domain.InvoiceTypeSale, PartyID: &partyID}

	suite.mockInvoiceRepo.On("ListInvoices", ctx, expectedFilter, dto.DefaultListLimit, (*string)(nil)).Return(invoices, nil, nil).Once()

	resp, err := suite.service.ListInvoices(ctx, domain.InvoiceTypeSale, dto.ListInvoicesParams{PartyID: &partyID})

	suite.Require().NoError(err)
	suite.Len(resp.Invoices, 1)
	suite.Equal(domain.PaymentStatusPaid, resp.Invoices[0].PaymentStatus)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListProductMovements_UnknownProduct() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListProductMovements(ctx, productID, dto.ListParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ListMovementsByProduct")
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
