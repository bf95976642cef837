package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// StatusApplier applies a settlement outcome to a stored transaction.
// Applying must be idempotent: only pending transactions transition, anything
// else is a no-op.
type StatusApplier interface {
	ApplyStatus(ctx context.Context, txID string, status domain.TransactionStatus) (bool, error)
}

// SettlementConsumer drains status-update events and applies the transition
// asynchronously, so webhook posts are acknowledged before the store changes.
type SettlementConsumer struct {
	store       StatusApplier
	logger      *logger.Logger
	workerCount int
}

func NewSettlementConsumer(store StatusApplier, log *logger.Logger, workerCount int) *SettlementConsumer {
	return &SettlementConsumer{
		store:       store,
		logger:      log,
		workerCount: workerCount,
	}
}

func (sc *SettlementConsumer) Consume(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(StatusUpdateEvent)
	if !ok {
		sc.logger.Error(ctx, "Invalid payload type for status update event",
			"event_id", event.ID,
		)
		return fmt.Errorf("invalid payload type")
	}

	ctx = logger.WithTxID(ctx, payload.TxID)

	applied, err := sc.store.ApplyStatus(ctx, payload.TxID, payload.Status)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			// Nothing to settle; retrying will not create the transaction.
			sc.logger.Warn(ctx, "Status update for unknown transaction",
				"event_id", event.ID,
			)
			return nil
		}

		sc.logger.Error(ctx, "Failed to apply status update",
			"event_id", event.ID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}

	if applied {
		sc.logger.Debug(ctx, "Status transition applied",
			"event_id", event.ID,
			"status", payload.Status,
		)
	} else {
		sc.logger.Debug(ctx, "Status update was a no-op",
			"event_id", event.ID,
			"status", payload.Status,
		)
	}

	return nil
}

func (sc *SettlementConsumer) GetWorkerCount() int {
	return sc.workerCount
}
