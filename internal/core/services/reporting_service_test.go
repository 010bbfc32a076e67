package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/core/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) StockReport(ctx context.Context, productID *string, from, to *time.Time) ([]domain.StockReportRow, error) {
	args := m.Called(ctx, productID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockReportRow), args.Error(1)
}

func (m *MockReportingRepository) OutstandingReport(ctx context.Context, invoiceType domain.InvoiceType, partyID *string) ([]domain.OutstandingReportRow, error) {
	args := m.Called(ctx, invoiceType, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingReportRow), args.Error(1)
}

func (m *MockReportingRepository) RecomputeProductStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) RecomputePartyBalance(ctx context.Context, partyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, partyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockProductRepo   *MockProductRepository
	mockPartyRepo     *MockPartyRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockProductRepo, suite.mockPartyRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestReconcileProduct_Consistent() {
	ctx := context.Background()
	productID := uuid.NewString()
	product := &domain.Product{
		ProductID:     productID,
		Code:          "WIDGET-01",
		StockQuantity: decimal.NewFromInt(12),
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockReportingRepo.On("RecomputeProductStock", ctx, productID).Return(decimal.NewFromInt(12), nil).Once()

	resp, err := suite.service.ReconcileProduct(ctx, productID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.Consistent)
	suite.True(resp.Cached.Equal(resp.Recomputed))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestReconcileProduct_Drift() {
	ctx := context.Background()
	productID := uuid.NewString()
	product := &domain.Product{
		ProductID:     productID,
		Code:          "WIDGET-01",
		StockQuantity: decimal.NewFromInt(12),
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockReportingRepo.On("RecomputeProductStock", ctx, productID).Return(decimal.NewFromInt(9), nil).Once()

	resp, err := suite.service.ReconcileProduct(ctx, productID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvariantViolation)
	suite.Require().NotNil(resp, "drift still returns the comparison for the caller")
	suite.False(resp.Consistent)
	suite.True(resp.Cached.Equal(decimal.NewFromInt(12)))
	suite.True(resp.Recomputed.Equal(decimal.NewFromInt(9)))
}

func (suite *ReportingServiceTestSuite) TestReconcileParty_Drift() {
	ctx := context.Background()
	partyID := uuid.NewString()
	party := &domain.Party{
		PartyID:        partyID,
		Code:           "CUST-01",
		PartyType:      domain.PartyTypeCustomer,
		CurrentBalance: decimal.NewFromInt(500),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, partyID).Return(party, nil).Once()
	suite.mockReportingRepo.On("RecomputePartyBalance", ctx, partyID).Return(decimal.NewFromInt(470), nil).Once()

	resp, err := suite.service.ReconcileParty(ctx, partyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvariantViolation)
	suite.Require().NotNil(resp)
	suite.False(resp.Consistent)
}

func (suite *ReportingServiceTestSuite) TestReconcileParty_UnknownParty() {
	ctx := context.Background()
	partyID := uuid.NewString()

	suite.mockPartyRepo.On("FindPartyByID", ctx, partyID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ReconcileParty(ctx, partyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "RecomputePartyBalance")
}

func (suite *ReportingServiceTestSuite) TestOutstandingReport_RederivesStatusAndSums() {
	ctx := context.Background()
	pastDue := time.Now().UTC().Add(-24 * time.Hour)
	rows := []domain.OutstandingReportRow{
		{
			InvoiceNumber:     "SAL-2025-001",
			TotalAmount:       decimal.NewFromInt(100),
			PaidAmount:        decimal.Zero,
			OutstandingAmount: decimal.NewFromInt(100),
			DueDate:           &pastDue,
			PaymentStatus:     domain.PaymentStatusPending, // stale stored status
		},
		{
			InvoiceNumber:     "SAL-2025-002",
			TotalAmount:       decimal.NewFromInt(80),
			PaidAmount:        decimal.NewFromInt(30),
			OutstandingAmount: decimal.NewFromInt(50),
		},
	}

	suite.mockReportingRepo.On("OutstandingReport", ctx, domain.InvoiceTypeSale, (*string)(nil)).Return(rows, nil).Once()

	resp, err := suite.service.OutstandingReport(ctx, domain.InvoiceTypeSale, nil)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 2)
	suite.Equal(domain.PaymentStatusOverdue, resp.Items[0].PaymentStatus)
	suite.Equal(domain.PaymentStatusPartial, resp.Items[1].PaymentStatus)
	suite.True(resp.TotalOutstanding.Equal(decimal.NewFromInt(150)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestLowStockReport() {
	ctx := context.Background()
	products := []domain.Product{{
		ProductID:     uuid.NewString(),
		Code:          "WIDGET-01",
		StockQuantity: decimal.NewFromInt(2),
		MinimumStock:  decimal.NewFromInt(5),
	}}

	suite.mockProductRepo.On("ListProductsBelowMinimum", ctx).Return(products, nil).Once()

	resp, err := suite.service.LowStockReport(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Products, 1)
	suite.Equal("WIDGET-01", resp.Products[0].Code)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestStockReport_PassesFilters() {
	ctx := context.Background()
	productID := uuid.NewString()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.StockReportRow{{
		ProductCode:  "WIDGET-01",
		MovementType: domain.InvoiceTypePurchase,
		QuantityIn:   decimal.NewFromInt(5),
		BalanceAfter: decimal.NewFromInt(5),
	}}

	suite.mockReportingRepo.On("StockReport", ctx, &productID, &from, (*time.Time)(nil)).Return(rows, nil).Once()

	resp, err := suite.service.StockReport(ctx, dto.StockReportParams{ProductID: &productID, From: &from})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.True(resp.Items[0].BalanceAfter.Equal(decimal.NewFromInt(5)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
