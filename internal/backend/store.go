// Package backend is a local stand-in for the routing/persistence service,
// implementing just enough of it to run and test the client: id/psp/latency
// stamping, idempotent creation and webhook status transitions. It does not
// implement real PSP selection.
package backend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/switchpay/switchpay-go/internal/domain"
)

// DefaultPSPs mirrors the processors the demo routes across. Assignment is
// uniform random, not a routing decision.
var DefaultPSPs = []string{"stripe", "adyen", "wise", "rapyd"}

type Store struct {
	transactions map[string]*domain.Transaction
	order        []string // most recent first
	psps         []string
	rng          *rand.Rand
	mu           sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		transactions: make(map[string]*domain.Transaction),
		psps:         DefaultPSPs,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create stamps server-assigned fields and stores the transaction as pending.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latency := 40 + s.rng.Intn(760)

	tx := &domain.Transaction{
		ID:        uuid.New().String(),
		Amount:    domain.NewAmount(decimal.NewFromFloat(draft.Amount)),
		Currency:  domain.Currency(draft.Currency),
		Country:   draft.Country,
		Device:    domain.Device(draft.Device),
		PSP:       s.psps[s.rng.Intn(len(s.psps))],
		Status:    domain.StatusPending,
		LatencyMs: &latency,
		CreatedAt: time.Now().UTC(),
	}

	s.transactions[tx.ID] = tx
	s.order = append([]string{tx.ID}, s.order...)

	copied := *tx
	return &copied, nil
}

// List returns all transactions most-recent-first.
func (s *Store) List(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Transaction, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.transactions[id])
	}
	return result, nil
}

func (s *Store) Has(ctx context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.transactions[id]
	return exists
}

// ApplyStatus transitions a pending transaction to the given terminal status.
// Any other starting state is a no-op, which makes redelivered webhook events
// safe. Returns whether a transition happened.
func (s *Store) ApplyStatus(ctx context.Context, txID string, status domain.TransactionStatus) (bool, error) {
	if !status.Terminal() {
		return false, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, exists := s.transactions[txID]
	if !exists {
		return false, domain.ErrTransactionNotFound
	}

	if tx.Status != domain.StatusPending {
		return false, nil
	}

	tx.Status = status
	return true, nil
}

// Metrics computes the server-side aggregate the landing view renders.
func (s *Store) Metrics(ctx context.Context) (*domain.ServerMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	volume := decimal.Zero
	byPSP := make(map[string]int)

	for _, tx := range s.transactions {
		volume = volume.Add(tx.Amount.Decimal())
		byPSP[tx.PSP]++
	}

	totalVolume, _ := volume.Float64()

	return &domain.ServerMetrics{
		TotalTransactions: len(s.transactions),
		TotalVolume:       totalVolume,
		TransactionsByPSP: byPSP,
	}, nil
}
