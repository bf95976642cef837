package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// OutcomePicker chooses the simulated settlement outcome. It is an injection
// point so tests can force deterministic results.
type OutcomePicker interface {
	Pick() domain.TransactionStatus
}

// RandomOutcome picks success or failed uniformly at random, independent of
// the transaction's current state.
type RandomOutcome struct {
	rng *rand.Rand
	mu  sync.Mutex
}

func NewRandomOutcome(seed int64) *RandomOutcome {
	return &RandomOutcome{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomOutcome) Pick() domain.TransactionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rng.Intn(2) == 0 {
		return domain.StatusSuccess
	}
	return domain.StatusFailed
}

// WebhookSimulator triggers a simulated asynchronous status transition for
// one transaction. It never patches the snapshot store directly; the new
// status only appears after the next refresh.
type WebhookSimulator struct {
	gateway  domain.Gateway
	outcomes OutcomePicker
	logger   *logger.Logger
}

func NewWebhookSimulator(gateway domain.Gateway, log *logger.Logger) *WebhookSimulator {
	return NewWebhookSimulatorWithOutcomes(gateway, NewRandomOutcome(time.Now().UnixNano()), log)
}

func NewWebhookSimulatorWithOutcomes(gateway domain.Gateway, outcomes OutcomePicker, log *logger.Logger) *WebhookSimulator {
	return &WebhookSimulator{
		gateway:  gateway,
		outcomes: outcomes,
		logger:   log,
	}
}

// Simulate posts a 50/50 success/failed outcome to the webhook endpoint. On
// failure the transaction's status is unchanged from the client's point of
// view.
func (w *WebhookSimulator) Simulate(ctx context.Context, txID string) (*domain.WebhookAck, error) {
	ctx = logger.WithTxID(ctx, txID)

	status := w.outcomes.Pick()

	ack, err := w.gateway.PostWebhook(ctx, domain.StatusUpdate{
		TxID:   txID,
		Status: status,
	})
	if err != nil {
		w.logger.Error(ctx, "Webhook simulation failed",
			"status", status,
			"error", err,
		)
		return nil, err
	}

	w.logger.Info(ctx, "Webhook status posted",
		"status", ack.Status,
	)

	return ack, nil
}
