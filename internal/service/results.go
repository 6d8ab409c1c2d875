package service

import (
	"time"

	"github.com/avolkov/ledger-service/internal/models"
	"github.com/avolkov/ledger-service/internal/money"
)

// AccountSummary is an account as rendered to callers, with the balance
// as a fixed two-decimal string.
type AccountSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionResult reports a completed deposit or withdrawal.
type TransactionResult struct {
	TransactionID string `json:"transactionId"`
	Balance       string `json:"balance"`
}

// AccountBalance is one side of a completed transfer.
type AccountBalance struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
}

// TransferResult reports both sides of a completed transfer. TransferID
// is the grouping key shared by the two transaction legs.
type TransferResult struct {
	TransferID string         `json:"transferId"`
	From       AccountBalance `json:"from"`
	To         AccountBalance `json:"to"`
}

// TransactionSummary is a log entry as rendered to callers.
type TransactionSummary struct {
	ID                    string    `json:"id"`
	AccountID             string    `json:"accountId"`
	Type                  string    `json:"type"`
	Amount                string    `json:"amount"`
	BalanceAfter          string    `json:"balanceAfter"`
	CounterpartyAccountID string    `json:"counterpartyAccountId,omitempty"`
	TransferID            string    `json:"transferId,omitempty"`
	Description           string    `json:"description"`
	CreatedAt             time.Time `json:"createdAt"`
}

func summarizeAccount(account *models.Account) AccountSummary {
	return AccountSummary{
		ID:        account.ID,
		Name:      account.Name,
		Balance:   money.FromCents(account.BalanceCents),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func summarizeTransaction(tx models.Transaction) TransactionSummary {
	return TransactionSummary{
		ID:                    tx.ID,
		AccountID:             tx.AccountID,
		Type:                  tx.Type,
		Amount:                money.FromCents(tx.AmountCents),
		BalanceAfter:          money.FromCents(tx.BalanceAfterCents),
		CounterpartyAccountID: tx.CounterpartyAccountID,
		TransferID:            tx.TransferID,
		Description:           tx.Description,
		CreatedAt:             tx.CreatedAt,
	}
}
