package domain

import "context"

// Gateway is the backend boundary: the client only shapes and consumes
// requests and responses, it never owns routing or persistence.
type Gateway interface {
	// ListTransactions fetches the full collection, most-recent-first as the
	// backend returns it.
	ListTransactions(ctx context.Context) ([]Transaction, error)

	// CreateTransaction submits a draft carrying the API key and a fresh
	// idempotency key as request headers.
	CreateTransaction(ctx context.Context, draft Draft, apiKey, idempotencyKey string) (*Transaction, error)

	// FetchMetrics returns the backend-computed aggregate.
	FetchMetrics(ctx context.Context) (*ServerMetrics, error)

	// PostWebhook delivers a simulated status update for one transaction.
	PostWebhook(ctx context.Context, update StatusUpdate) (*WebhookAck, error)
}
