package models

// Snapshot is the complete serialized state of the ledger: all accounts,
// the full transaction history and the next-identifier counter. It is the
// sole on-disk contract of the persistence layer.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Counter      int64         `json:"counter"`
}

// EmptySnapshot returns the state of a ledger that has never been used.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Counter:      1,
	}
}
