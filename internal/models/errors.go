package models

import "errors"

// Domain errors returned by the ledger engine. The HTTP layer maps these
// to status codes: validation errors to 400, missing accounts to 404 and
// conflicts to 409.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrBalanceNotZero    = errors.New("account balance must be zero to delete")
)
