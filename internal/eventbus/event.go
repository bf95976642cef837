package eventbus

import (
	"time"

	"github.com/switchpay/switchpay-go/internal/domain"
)

type EventType string

const (
	EventTypeStatusUpdate EventType = "status_update"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Retries   int         `json:"retries"`
}

// StatusUpdateEvent carries a webhook-delivered settlement outcome for one
// transaction.
type StatusUpdateEvent struct {
	TxID   string                   `json:"tx_id"`
	Status domain.TransactionStatus `json:"status"`
}
