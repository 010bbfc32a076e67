package models

import "github.com/shopspring/decimal"

// PartyType mirrors domain.PartyType at the persistence layer.
type PartyType string

const (
	Customer PartyType = "CUSTOMER"
	Supplier PartyType = "SUPPLIER"
)

// Party is the DB shape of a customer or supplier. current_balance is the
// cached outstanding rollup, written only under a row lock.
type Party struct {
	PartyID        string          `db:"party_id"`
	PartyType      PartyType       `db:"party_type"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
