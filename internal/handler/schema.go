package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type createAccountRequest struct {
	Name           string           `json:"name" validate:"required"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

type renameAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

type amountRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description"`
}

type transferRequest struct {
	FromAccountID string           `json:"fromAccountId" validate:"required"`
	ToAccountID   string           `json:"toAccountId" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Description   string           `json:"description"`
}
