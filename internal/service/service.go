// Package service implements the ledger engine. Every mutating operation
// validates its inputs first, applies the balance change and the matching
// transaction append inside one critical section, then persists a
// snapshot before reporting success. A failed persist rolls the in-memory
// mutation back so memory and disk never diverge.
package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ledger-service/internal/models"
	"github.com/avolkov/ledger-service/internal/money"
	"github.com/avolkov/ledger-service/internal/repository"
	"github.com/avolkov/ledger-service/internal/storage"
)

// Service handles the ledger business logic.
type Service struct {
	mu       sync.RWMutex
	accounts *repository.AccountStore
	journal  *repository.TransactionLog
	store    storage.Adapter
	log      *logrus.Logger
}

// NewService initializes the engine over the given stores.
func NewService(accounts *repository.AccountStore, journal *repository.TransactionLog, store storage.Adapter, log *logrus.Logger) *Service {
	return &Service{accounts: accounts, journal: journal, store: store, log: log}
}

// Restore replaces the in-memory ledger state from a snapshot. Called at
// startup before the engine serves any operation.
func (s *Service) Restore(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts.Restore(snapshot.Accounts, snapshot.Counter)
	s.journal.Restore(snapshot.Transactions)
}

// Snapshot exports a consistent copy of the full ledger state.
func (s *Service) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportLocked()
}

// CreateAccount registers a new account. A positive initial deposit is
// applied atomically with the creation and recorded as a DEPOSIT
// transaction; a negative one is rejected before any state changes.
func (s *Service) CreateAccount(name string, initialDeposit decimal.Decimal) (AccountSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AccountSummary{}, models.ErrNameRequired
	}
	cents := money.ToCents(initialDeposit)
	if cents < 0 {
		return AccountSummary{}, models.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.exportLocked()
	now := time.Now().UTC()
	account := s.accounts.Create(name, now)
	if cents > 0 {
		account.BalanceCents = cents
		s.journal.Append(models.Transaction{
			ID:                uuid.NewString(),
			AccountID:         account.ID,
			Type:              models.TypeDeposit,
			AmountCents:       cents,
			BalanceAfterCents: account.BalanceCents,
			Description:       "Initial deposit",
			CreatedAt:         now,
		})
	}
	if err := s.persistLocked(prev); err != nil {
		return AccountSummary{}, err
	}

	s.log.Infof("Account %s created: %s", account.ID, account.Name)
	return summarizeAccount(account), nil
}

// GetAccount returns a summary of one account.
func (s *Service) GetAccount(id string) (AccountSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, err := s.accounts.Get(id)
	if err != nil {
		return AccountSummary{}, err
	}
	return summarizeAccount(account), nil
}

// ListAccounts returns all accounts in creation order.
func (s *Service) ListAccounts() []AccountSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := s.accounts.List()
	out := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, summarizeAccount(account))
	}
	return out
}

// RenameAccount updates the account's display name.
func (s *Service) RenameAccount(id, name string) (AccountSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AccountSummary{}, models.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accounts.Get(id); err != nil {
		return AccountSummary{}, err
	}
	prev := s.exportLocked()
	account, err := s.accounts.Rename(id, name, time.Now().UTC())
	if err != nil {
		return AccountSummary{}, err
	}
	if err := s.persistLocked(prev); err != nil {
		return AccountSummary{}, err
	}
	return summarizeAccount(account), nil
}

// DeleteAccount removes an account with a zero balance. Its transaction
// history is retained so the audit trail survives the deletion.
func (s *Service) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.exportLocked()
	if err := s.accounts.Delete(id); err != nil {
		return err
	}
	if err := s.persistLocked(prev); err != nil {
		return err
	}

	s.log.Infof("Account %s deleted", id)
	return nil
}

// Deposit increases the account balance and appends a DEPOSIT entry whose
// balanceAfter is the balance produced by this exact mutation.
func (s *Service) Deposit(id string, amount decimal.Decimal, description string) (TransactionResult, error) {
	cents := money.ToCents(amount)
	if cents <= 0 {
		return TransactionResult{}, models.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.Get(id)
	if err != nil {
		return TransactionResult{}, err
	}

	prev := s.exportLocked()
	now := time.Now().UTC()
	account.BalanceCents += cents
	account.UpdatedAt = now
	tx := models.Transaction{
		ID:                uuid.NewString(),
		AccountID:         account.ID,
		Type:              models.TypeDeposit,
		AmountCents:       cents,
		BalanceAfterCents: account.BalanceCents,
		Description:       orDefault(description, "Deposit"),
		CreatedAt:         now,
	}
	s.journal.Append(tx)
	if err := s.persistLocked(prev); err != nil {
		return TransactionResult{}, err
	}

	s.log.Infof("Deposit of %s to account %s", money.FromCents(cents), account.ID)
	return TransactionResult{TransactionID: tx.ID, Balance: money.FromCents(account.BalanceCents)}, nil
}

// Withdraw decreases the account balance. Insufficient funds reject the
// operation before any state changes.
func (s *Service) Withdraw(id string, amount decimal.Decimal, description string) (TransactionResult, error) {
	cents := money.ToCents(amount)
	if cents <= 0 {
		return TransactionResult{}, models.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.Get(id)
	if err != nil {
		return TransactionResult{}, err
	}
	if account.BalanceCents < cents {
		return TransactionResult{}, models.ErrInsufficientFunds
	}

	prev := s.exportLocked()
	now := time.Now().UTC()
	account.BalanceCents -= cents
	account.UpdatedAt = now
	tx := models.Transaction{
		ID:                uuid.NewString(),
		AccountID:         account.ID,
		Type:              models.TypeWithdraw,
		AmountCents:       cents,
		BalanceAfterCents: account.BalanceCents,
		Description:       orDefault(description, "Withdraw"),
		CreatedAt:         now,
	}
	s.journal.Append(tx)
	if err := s.persistLocked(prev); err != nil {
		return TransactionResult{}, err
	}

	s.log.Infof("Withdrawal of %s from account %s", money.FromCents(cents), account.ID)
	return TransactionResult{TransactionID: tx.ID, Balance: money.FromCents(account.BalanceCents)}, nil
}

// Transfer debits one account, credits another and appends the linked
// TRANSFER_OUT/TRANSFER_IN pair as one indivisible unit. Both legs carry
// the same timestamp and transfer id.
func (s *Service) Transfer(fromID, toID string, amount decimal.Decimal, description string) (TransferResult, error) {
	cents := money.ToCents(amount)
	if cents <= 0 {
		return TransferResult{}, models.ErrInvalidAmount
	}
	if fromID == toID {
		return TransferResult{}, models.ErrSameAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.accounts.Get(fromID)
	if err != nil {
		return TransferResult{}, err
	}
	to, err := s.accounts.Get(toID)
	if err != nil {
		return TransferResult{}, err
	}
	if from.BalanceCents < cents {
		return TransferResult{}, models.ErrInsufficientFunds
	}

	prev := s.exportLocked()
	now := time.Now().UTC()
	from.BalanceCents -= cents
	to.BalanceCents += cents
	from.UpdatedAt = now
	to.UpdatedAt = now

	transferID := uuid.NewString()
	s.journal.Append(models.Transaction{
		ID:                    uuid.NewString(),
		AccountID:             from.ID,
		Type:                  models.TypeTransferOut,
		AmountCents:           cents,
		BalanceAfterCents:     from.BalanceCents,
		CounterpartyAccountID: to.ID,
		TransferID:            transferID,
		Description:           orDefault(description, fmt.Sprintf("Transfer to %s", to.ID)),
		CreatedAt:             now,
	})
	s.journal.Append(models.Transaction{
		ID:                    uuid.NewString(),
		AccountID:             to.ID,
		Type:                  models.TypeTransferIn,
		AmountCents:           cents,
		BalanceAfterCents:     to.BalanceCents,
		CounterpartyAccountID: from.ID,
		TransferID:            transferID,
		Description:           orDefault(description, fmt.Sprintf("Transfer from %s", from.ID)),
		CreatedAt:             now,
	})
	if err := s.persistLocked(prev); err != nil {
		return TransferResult{}, err
	}

	s.log.Infof("Transfer of %s from account %s to account %s", money.FromCents(cents), from.ID, to.ID)
	return TransferResult{
		TransferID: transferID,
		From:       AccountBalance{ID: from.ID, Balance: money.FromCents(from.BalanceCents)},
		To:         AccountBalance{ID: to.ID, Balance: money.FromCents(to.BalanceCents)},
	}, nil
}

// ListTransactions returns the history most recent first, optionally
// filtered to one account. An empty accountID returns everything.
func (s *Service) ListTransactions(accountID string) []TransactionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summarizeLocked(accountID)
}

// ListAccountTransactions returns the history of one existing account,
// most recent first.
func (s *Service) ListAccountTransactions(accountID string) ([]TransactionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.accounts.Get(accountID); err != nil {
		return nil, err
	}
	return s.summarizeLocked(accountID), nil
}

func (s *Service) summarizeLocked(accountID string) []TransactionSummary {
	entries := s.journal.Query(accountID)
	out := make([]TransactionSummary, 0, len(entries))
	for _, tx := range entries {
		out = append(out, summarizeTransaction(tx))
	}
	return out
}

func (s *Service) exportLocked() models.Snapshot {
	return models.Snapshot{
		Accounts:     s.accounts.Export(),
		Transactions: s.journal.Export(),
		Counter:      s.accounts.NextID(),
	}
}

// persistLocked saves the current state and, if the save fails, restores
// the pre-operation state captured in prev before returning the error.
func (s *Service) persistLocked(prev models.Snapshot) error {
	if err := s.store.Save(s.exportLocked()); err != nil {
		s.accounts.Restore(prev.Accounts, prev.Counter)
		s.journal.Restore(prev.Transactions)
		s.log.Errorf("Persist failed, operation rolled back: %v", err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
