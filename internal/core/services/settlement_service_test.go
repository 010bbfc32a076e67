package services_test

import (
	"context"
	"fmt"
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

// MockSettlementRepository is a mock type for the SettlementRepositoryWithTx interface
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlements(ctx context.Context, filter portsrepo.ListSettlementsFilter, limit int, nextToken *string) ([]domain.Settlement, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var settlements []domain.Settlement
	if args.Get(0) != nil {
		settlements = args.Get(0).([]domain.Settlement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return settlements, token, args.Error(2)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) (*domain.Invoice, error) {
	args := m.Called(ctx, settlement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementRepository) DeleteSettlement(ctx context.Context, settlementID string, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, settlementID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSettlementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSettlementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---

type SettlementServiceTestSuite struct {
	suite.Suite
	mockSettlementRepo *MockSettlementRepository
	mockInvoiceRepo    *MockInvoiceRepository
	mockPartyRepo      *MockPartyRepository
	service            portssvc.SettlementSvcFacade

	customer    *domain.Party
	supplier    *domain.Party
	saleInvoice *domain.Invoice
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewSettlementService(suite.mockSettlementRepo, suite.mockInvoiceRepo, suite.mockPartyRepo)

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
	suite.saleInvoice = &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceType:   domain.InvoiceTypeSale,
		InvoiceNumber: "SAL-2025-001",
		PartyID:       suite.customer.PartyID,
		TotalAmount:   decimal.NewFromInt(100),
		PaidAmount:    decimal.Zero,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func (suite *SettlementServiceTestSuite) validRequest() dto.CreateSettlementRequest {
	return dto.CreateSettlementRequest{
		PaymentNumber: "RCV-2025-001",
		PartyID:       suite.customer.PartyID,
		InvoiceID:     &suite.saleInvoice.InvoiceID,
		PaymentDate:   time.Now().UTC(),
		PaymentAmount: decimal.NewFromInt(40),
		PaymentMethod: domain.PaymentMethodBankTransfer,
	}
}

// --- Test Cases ---

func (suite *SettlementServiceTestSuite) TestRecordSettlement_AgainstInvoice() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.validRequest()

	updatedInvoice := *suite.saleInvoice
	updatedInvoice.PaidAmount = decimal.NewFromInt(40)
	updatedInvoice.PaymentStatus = domain.PaymentStatusPartial

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.saleInvoice.InvoiceID).Return(suite.saleInvoice, nil).Once()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.SettlementType == domain.SettlementTypeReceivable &&
			s.PaymentAmount.Equal(decimal.NewFromInt(40)) &&
			s.InvoiceID != nil && *s.InvoiceID == suite.saleInvoice.InvoiceID
	})).Return(&updatedInvoice, nil).Once()

	settlement, invoice, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)
	suite.NotEmpty(settlement.SettlementID)
	suite.Equal(creatorUserID, settlement.CreatedBy)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.PaymentStatusPartial, invoice.PaymentStatus)
	suite.True(invoice.PaidAmount.Equal(decimal.NewFromInt(40)))

	suite.mockSettlementRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_OnAccount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.InvoiceID = nil
	req.PaymentMethod = "" // defaults to cash

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.InvoiceID == nil && s.PaymentMethod == domain.PaymentMethodCash
	})).Return(nil, nil).Once()

	settlement, invoice, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)
	suite.Nil(invoice, "on-account settlement touches no invoice")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID")
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.PaymentAmount = decimal.Zero

	settlement, invoice, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSettlementNotPositive)
	suite.Nil(settlement)
	suite.Nil(invoice)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_PartyTypeMismatch() {
	ctx := context.Background()
	req := suite.validRequest()
	req.PartyID = suite.supplier.PartyID

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.supplier.PartyID).Return(suite.supplier, nil).Once()

	_, _, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPartyTypeMismatch)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_InvoiceTypeMismatch() {
	ctx := context.Background()
	req := suite.validRequest()
	purchase := *suite.saleInvoice
	purchase.InvoiceType = domain.InvoiceTypePurchase

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.saleInvoice.InvoiceID).Return(&purchase, nil).Once()

	_, _, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvoiceTypeMismatch)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_InvoicePartyMismatch() {
	ctx := context.Background()
	req := suite.validRequest()
	other := *suite.saleInvoice
	other.PartyID = uuid.NewString()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.saleInvoice.InvoiceID).Return(&other, nil).Once()

	_, _, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvoicePartyMismatch)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_Overpayment() {
	ctx := context.Background()
	req := suite.validRequest()
	req.PaymentAmount = decimal.NewFromInt(150)

	overpayErr := fmt.Errorf("%w: invoice SAL-2025-001 has 100 outstanding, payment of 150 exceeds it", apperrors.ErrOverpayment)

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.customer.PartyID).Return(suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.saleInvoice.InvoiceID).Return(suite.saleInvoice, nil).Once()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(nil, overpayErr).Once()

	settlement, invoice, err := suite.service.RecordSettlement(ctx, domain.SettlementTypeReceivable, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.Nil(settlement)
	suite.Nil(invoice)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_Success() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	userID := uuid.NewString()

	rolledBack := *suite.saleInvoice
	rolledBack.PaidAmount = decimal.Zero
	rolledBack.PaymentStatus = domain.PaymentStatusPending

	suite.mockSettlementRepo.On("DeleteSettlement", ctx, settlementID, userID).Return(&rolledBack, nil).Once()

	invoice, err := suite.service.ReverseSettlement(ctx, settlementID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.PaidAmount.IsZero())
	suite.Equal(domain.PaymentStatusPending, invoice.PaymentStatus)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_NotFound() {
	ctx := context.Background()
	settlementID := uuid.NewString()

	suite.mockSettlementRepo.On("DeleteSettlement", ctx, settlementID, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.ReverseSettlement(ctx, settlementID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(invoice)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestListSettlements_FiltersByType() {
	ctx := context.Background()
	settlements := []domain.Settlement{{
		SettlementID:   uuid.NewString(),
		SettlementType: domain.SettlementTypePayable,
		PaymentNumber:  "PAY-2025-001",
		PaymentAmount:  decimal.NewFromInt(60),
	}}
	expectedFilter := portsrepo.ListSettlementsFilter{SettlementType: domain.SettlementTypePayable}

	suite.mockSettlementRepo.On("ListSettlements", ctx, expectedFilter, dto.DefaultListLimit, (*string)(nil)).Return(settlements, nil, nil).Once()

	resp, err := suite.service.ListSettlements(ctx, domain.SettlementTypePayable, dto.ListSettlementsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Settlements, 1)
	suite.Equal("PAY-2025-001", resp.Settlements[0].PaymentNumber)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
