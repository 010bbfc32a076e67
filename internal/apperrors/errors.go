package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates that a sale would drive a product's stock balance below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOverpayment indicates that a payment would push an invoice's paid amount above its total.
var ErrOverpayment = errors.New("payment exceeds invoice total")

// ErrInvariantViolation indicates an internal consistency check failed.
// This is a defect in the ledger engine, not a caller error.
var ErrInvariantViolation = errors.New("ledger invariant violated")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
