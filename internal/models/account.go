package models

import "time"

// Account represents a ledger account. Balances are stored as integer
// minor currency units (cents) and must never go negative.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BalanceCents int64     `json:"balanceCents"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
