package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockReportParams holds filters for the stock report.
type StockReportParams struct {
	ProductID *string    `form:"productID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// StockReportItemResponse is one row of the stock report.
type StockReportItemResponse struct {
	ProductCode     string             `json:"productCode"`
	ProductName     string             `json:"productName"`
	MovementDate    time.Time          `json:"movementDate"`
	ReferenceNumber string             `json:"referenceNumber"`
	MovementType    domain.InvoiceType `json:"movementType"`
	QuantityIn      decimal.Decimal    `json:"quantityIn"`
	QuantityOut     decimal.Decimal    `json:"quantityOut"`
	BalanceAfter    decimal.Decimal    `json:"balanceAfter"`
	UnitCost        decimal.Decimal    `json:"unitCost"`
}

// StockReportResponse is the full stock report.
type StockReportResponse struct {
	Items []StockReportItemResponse `json:"items"`
}

// OutstandingReportItemResponse is one row of the payables or receivables
// report. PaymentStatus is recomputed against the clock at read time.
type OutstandingReportItemResponse struct {
	PartyCode         string               `json:"partyCode"`
	PartyName         string               `json:"partyName"`
	InvoiceNumber     string               `json:"invoiceNumber"`
	TransactionDate   time.Time            `json:"transactionDate"`
	DueDate           *time.Time           `json:"dueDate,omitempty"`
	TotalAmount       decimal.Decimal      `json:"totalAmount"`
	PaidAmount        decimal.Decimal      `json:"paidAmount"`
	OutstandingAmount decimal.Decimal      `json:"outstandingAmount"`
	PaymentStatus     domain.PaymentStatus `json:"paymentStatus"`
}

// OutstandingReportResponse is the payables or receivables report plus its
// outstanding grand total.
type OutstandingReportResponse struct {
	Items            []OutstandingReportItemResponse `json:"items"`
	TotalOutstanding decimal.Decimal                 `json:"totalOutstanding"`
}

// LowStockReportResponse lists products at or under their minimum stock.
type LowStockReportResponse struct {
	Products []ProductResponse `json:"products"`
}

// ReconciliationResponse reports a rollup-drift check: the cached value, the
// value recomputed from history, and whether they match exactly.
type ReconciliationResponse struct {
	EntityID   string          `json:"entityID"`
	Cached     decimal.Decimal `json:"cached"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Consistent bool            `json:"consistent"`
}

// ToStockReportResponse converts domain report rows to the response DTO.
func ToStockReportResponse(rows []domain.StockReportRow) *StockReportResponse {
	items := make([]StockReportItemResponse, len(rows))
	for i, r := range rows {
		items[i] = StockReportItemResponse{
			ProductCode:     r.ProductCode,
			ProductName:     r.ProductName,
			MovementDate:    r.MovementDate,
			ReferenceNumber: r.ReferenceNumber,
			MovementType:    r.MovementType,
			QuantityIn:      r.QuantityIn,
			QuantityOut:     r.QuantityOut,
			BalanceAfter:    r.BalanceAfter,
			UnitCost:        r.UnitCost,
		}
	}
	return &StockReportResponse{Items: items}
}

// ToOutstandingReportResponse converts domain report rows to the response
// DTO, summing the outstanding amounts.
func ToOutstandingReportResponse(rows []domain.OutstandingReportRow) *OutstandingReportResponse {
	items := make([]OutstandingReportItemResponse, len(rows))
	total := decimal.Zero
	for i, r := range rows {
		items[i] = OutstandingReportItemResponse{
			PartyCode:         r.PartyCode,
			PartyName:         r.PartyName,
			InvoiceNumber:     r.InvoiceNumber,
			TransactionDate:   r.TransactionDate,
			DueDate:           r.DueDate,
			TotalAmount:       r.TotalAmount,
			PaidAmount:        r.PaidAmount,
			OutstandingAmount: r.OutstandingAmount,
			PaymentStatus:     r.PaymentStatus,
		}
		total = total.Add(r.OutstandingAmount)
	}
	return &OutstandingReportResponse{Items: items, TotalOutstanding: total}
}
