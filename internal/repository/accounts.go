package repository

import (
	"strconv"
	"time"

	"github.com/avolkov/ledger-service/internal/models"
)

// AccountStore holds the set of accounts in memory and allocates their
// identifiers. Identifiers are monotonic and never reused, even after a
// deletion, so historical transaction references stay unambiguous.
//
// The store is not safe for concurrent use on its own; the service layer
// serializes access with its own lock.
type AccountStore struct {
	nextID   int64
	accounts map[string]*models.Account
	order    []string
}

// NewAccountStore initializes an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		nextID:   1,
		accounts: make(map[string]*models.Account),
	}
}

// Create allocates the next identifier and registers a new account with a
// zero balance.
func (s *AccountStore) Create(name string, now time.Time) *models.Account {
	id := strconv.FormatInt(s.nextID, 10)
	s.nextID++
	account := &models.Account{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[id] = account
	s.order = append(s.order, id)
	return account
}

// Get returns the account with the given id.
func (s *AccountStore) Get(id string) (*models.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return account, nil
}

// List returns all accounts in creation order.
func (s *AccountStore) List() []*models.Account {
	out := make([]*models.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id])
	}
	return out
}

// Rename updates the account's display name and advances its update time.
func (s *AccountStore) Rename(id, name string, now time.Time) (*models.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	account.Name = name
	account.UpdatedAt = now
	return account, nil
}

// Delete removes the account. It fails unless the balance is exactly
// zero. The identifier is never handed out again.
func (s *AccountStore) Delete(id string) error {
	account, ok := s.accounts[id]
	if !ok {
		return models.ErrAccountNotFound
	}
	if account.BalanceCents != 0 {
		return models.ErrBalanceNotZero
	}
	delete(s.accounts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// NextID reports the identifier counter as persisted in snapshots.
func (s *AccountStore) NextID() int64 {
	return s.nextID
}

// Export copies all accounts in creation order for snapshotting.
func (s *AccountStore) Export() []models.Account {
	out := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.accounts[id])
	}
	return out
}

// Restore replaces the store's contents from snapshot data.
func (s *AccountStore) Restore(accounts []models.Account, counter int64) {
	if counter < 1 {
		counter = 1
	}
	s.nextID = counter
	s.accounts = make(map[string]*models.Account, len(accounts))
	s.order = s.order[:0]
	for i := range accounts {
		account := accounts[i]
		s.accounts[account.ID] = &account
		s.order = append(s.order, account.ID)
	}
}
