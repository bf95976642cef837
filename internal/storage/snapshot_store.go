package storage

import (
	"sync"

	"github.com/switchpay/switchpay-go/internal/domain"
)

// SnapshotStore is the sole owner of the current transaction snapshot. It is
// refreshed wholesale: the whole list is replaced, never merged or patched,
// so a refresh that resolves late overwrites a newer one (last-refresh-wins).
type SnapshotStore struct {
	transactions []domain.Transaction
	mu           sync.RWMutex
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		transactions: []domain.Transaction{},
	}
}

// Replace swaps in a new snapshot, preserving whatever order the backend
// returned.
func (s *SnapshotStore) Replace(transactions []domain.Transaction) {
	copied := make([]domain.Transaction, len(transactions))
	copy(copied, transactions)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = copied
}

// List returns a copy of the current snapshot.
func (s *SnapshotStore) List() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]domain.Transaction, len(s.transactions))
	copy(copied, s.transactions)
	return copied
}

func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.transactions)
}

func (s *SnapshotStore) Get(id string) (domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return domain.Transaction{}, false
}
