package repository

import "github.com/avolkov/ledger-service/internal/models"

// TransactionLog is the append-only record of monetary events. Entries
// are admitted fully formed by the ledger engine and never updated or
// removed individually.
type TransactionLog struct {
	entries []models.Transaction
}

// NewTransactionLog initializes an empty log.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Append records a validated transaction at the end of the log.
func (l *TransactionLog) Append(tx models.Transaction) {
	l.entries = append(l.entries, tx)
}

// Query returns entries most recent first. An empty accountID returns the
// entire history; otherwise only entries owned by that account.
func (l *TransactionLog) Query(accountID string) []models.Transaction {
	out := make([]models.Transaction, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		if accountID != "" && l.entries[i].AccountID != accountID {
			continue
		}
		out = append(out, l.entries[i])
	}
	return out
}

// Len reports the number of recorded entries.
func (l *TransactionLog) Len() int {
	return len(l.entries)
}

// Export copies the full history in append order for snapshotting.
func (l *TransactionLog) Export() []models.Transaction {
	out := make([]models.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Restore replaces the log's contents from snapshot data.
func (l *TransactionLog) Restore(entries []models.Transaction) {
	l.entries = make([]models.Transaction, len(entries))
	copy(l.entries, entries)
}
