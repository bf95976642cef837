package service

import (
	"context"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/internal/storage"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// TransactionService keeps the snapshot store in sync with the backend.
type TransactionService struct {
	gateway domain.Gateway
	store   *storage.SnapshotStore
	logger  *logger.Logger
}

func NewTransactionService(gateway domain.Gateway, store *storage.SnapshotStore, log *logger.Logger) *TransactionService {
	return &TransactionService{
		gateway: gateway,
		store:   store,
		logger:  log,
	}
}

// Refresh fetches the full collection and replaces the snapshot. On failure
// the previous snapshot stays available (stale-but-available) and the error
// is both logged and returned.
func (s *TransactionService) Refresh(ctx context.Context) error {
	transactions, err := s.gateway.ListTransactions(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to refresh transactions",
			"error", err,
		)
		return err
	}

	s.store.Replace(transactions)

	s.logger.Debug(ctx, "Snapshot refreshed",
		"count", len(transactions),
	)

	return nil
}

// RefreshBestEffort is the landing/metrics variant: failures are swallowed
// entirely and the snapshot is left untouched.
func (s *TransactionService) RefreshBestEffort(ctx context.Context) {
	transactions, err := s.gateway.ListTransactions(ctx)
	if err != nil {
		s.logger.Debug(ctx, "Best-effort refresh failed",
			"error", err,
		)
		return
	}

	s.store.Replace(transactions)
}

func (s *TransactionService) List() []domain.Transaction {
	return s.store.List()
}
