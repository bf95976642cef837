// Package api implements the HTTP gateway to the payment-routing backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

const (
	headerAPIKey         = "x-api-key"
	headerIdempotencyKey = "Idempotency-Key"
)

// APIError carries the server-provided detail message for a non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// New builds a gateway client for the given backend origin. No request
// timeout is configured: a hung request stalls only its own call.
func New(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log,
	}
}

var _ domain.Gateway = (*Client)(nil)

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", nil, nil, &transactions)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, draft domain.Draft, apiKey, idempotencyKey string) (*domain.Transaction, error) {
	headers := map[string]string{
		headerAPIKey:         apiKey,
		headerIdempotencyKey: idempotencyKey,
	}

	var tx domain.Transaction
	err := c.do(ctx, http.MethodPost, "/transaction", draft, headers, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) FetchMetrics(ctx context.Context) (*domain.ServerMetrics, error) {
	var metrics domain.ServerMetrics
	err := c.do(ctx, http.MethodGet, "/metrics", nil, nil, &metrics)
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (c *Client) PostWebhook(ctx context.Context, update domain.StatusUpdate) (*domain.WebhookAck, error) {
	var ack domain.WebhookAck
	err := c.do(ctx, http.MethodPost, "/webhook/stripe", update, nil, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(ctx, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(ctx context.Context, resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}

	c.logger.Debug(ctx, "Backend returned error",
		"status", resp.StatusCode,
		"detail", apiErr.Detail,
	)

	return apiErr
}
