package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

func TestCreateTransaction_SendsHeaders(t *testing.T) {
	var gotAPIKey, gotIdemKey string
	var gotDraft domain.Draft

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction", r.URL.Path)

		gotAPIKey = r.Header.Get("x-api-key")
		gotIdemKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDraft))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Transaction{ID: "tx-1", Status: domain.StatusPending})
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	draft := domain.Draft{Amount: 100, Currency: "EUR", Country: "FR", Device: "web"}
	tx, err := client.CreateTransaction(context.Background(), draft, "sk_test", "key-123")
	require.NoError(t, err)

	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "sk_test", gotAPIKey)
	assert.Equal(t, "key-123", gotIdemKey)
	assert.Equal(t, draft, gotDraft)
}

func TestCreateTransaction_SurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid API key"})
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	_, err := client.CreateTransaction(context.Background(), domain.Draft{}, "bad", "key")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid API key", apiErr.Error())
}

func TestCreateTransaction_GenericFallbackWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	_, err := client.CreateTransaction(context.Background(), domain.Draft{}, "sk", "key")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestListTransactions_DecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"b","amount":30,"status":"pending"},
			{"id":"a","amount":"20.5","status":"success"}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	transactions, err := client.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// Backend order preserved.
	assert.Equal(t, "b", transactions[0].ID)
	assert.Equal(t, 30.0, transactions[0].Amount.Float64())
	assert.Equal(t, 20.5, transactions[1].Amount.Float64())
}

func TestFetchMetrics_DecodesAggregate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/metrics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_transactions":3,"total_volume":150.5,"transactions_by_psp":{"stripe":2,"wise":1}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	metrics, err := client.FetchMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, metrics.TotalTransactions)
	assert.Equal(t, 150.5, metrics.TotalVolume)
	assert.Equal(t, map[string]int{"stripe": 2, "wise": 1}, metrics.TransactionsByPSP)
}

func TestPostWebhook_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/webhook/stripe", r.URL.Path)

		var update domain.StatusUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.WebhookAck{TxID: update.TxID, Status: update.Status})
	}))
	defer srv.Close()

	client := New(srv.URL, logger.NewNop())

	ack, err := client.PostWebhook(context.Background(), domain.StatusUpdate{TxID: "tx-1", Status: domain.StatusFailed})
	require.NoError(t, err)

	assert.Equal(t, "tx-1", ack.TxID)
	assert.Equal(t, domain.StatusFailed, ack.Status)
}
