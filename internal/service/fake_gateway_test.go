package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/switchpay/switchpay-go/internal/domain"
)

// fakeGateway records every call so tests can assert on headers-equivalent
// arguments without a real HTTP round trip.
type fakeGateway struct {
	mu sync.Mutex

	transactions []domain.Transaction
	listErr      error
	listCalls    int

	createErr    error
	createDrafts []domain.Draft
	createKeys   []string
	apiKeys      []string

	webhookErr     error
	webhookUpdates []domain.StatusUpdate

	metrics *domain.ServerMetrics
}

var _ domain.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func (f *fakeGateway) CreateTransaction(ctx context.Context, draft domain.Draft, apiKey, idempotencyKey string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createDrafts = append(f.createDrafts, draft)
	f.createKeys = append(f.createKeys, idempotencyKey)
	f.apiKeys = append(f.apiKeys, apiKey)

	if f.createErr != nil {
		return nil, f.createErr
	}

	return &domain.Transaction{
		ID:     fmt.Sprintf("tx-%d", len(f.createDrafts)),
		Status: domain.StatusPending,
		PSP:    "stripe",
	}, nil
}

func (f *fakeGateway) FetchMetrics(ctx context.Context) (*domain.ServerMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.metrics == nil {
		return &domain.ServerMetrics{TransactionsByPSP: map[string]int{}}, nil
	}
	return f.metrics, nil
}

func (f *fakeGateway) PostWebhook(ctx context.Context, update domain.StatusUpdate) (*domain.WebhookAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.webhookUpdates = append(f.webhookUpdates, update)
	if f.webhookErr != nil {
		return nil, f.webhookErr
	}
	return &domain.WebhookAck{TxID: update.TxID, Status: update.Status}, nil
}
