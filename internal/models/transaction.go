package models

import "time"

// Transaction types.
const (
	TypeDeposit     = "DEPOSIT"
	TypeWithdraw    = "WITHDRAW"
	TypeTransferOut = "TRANSFER_OUT"
	TypeTransferIn  = "TRANSFER_IN"
)

// Transaction represents a single balance-changing event. Entries are
// created once by the ledger engine and never mutated afterwards.
// The two legs of a transfer share one TransferID.
type Transaction struct {
	ID                    string    `json:"id"`
	AccountID             string    `json:"accountId"`
	Type                  string    `json:"type"`
	AmountCents           int64     `json:"amountCents"`
	BalanceAfterCents     int64     `json:"balanceAfterCents"`
	CounterpartyAccountID string    `json:"counterpartyAccountId,omitempty"`
	TransferID            string    `json:"transferId,omitempty"`
	Description           string    `json:"description"`
	CreatedAt             time.Time `json:"createdAt"`
}
