package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchpay/switchpay-go/internal/domain"
)

func openTestIdempotencyStore(t *testing.T) *IdempotencyStore {
	t.Helper()

	store, err := OpenIdempotencyStore(filepath.Join(t.TempDir(), "idem.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestIdempotencyStore_ReplayUnknownKey(t *testing.T) {
	store := openTestIdempotencyStore(t)

	_, found, err := store.Replay("never-seen")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIdempotencyStore_RecordAndReplay(t *testing.T) {
	store := openTestIdempotencyStore(t)

	tx := &domain.Transaction{ID: "tx-1", Amount: "100", Status: domain.StatusPending, PSP: "stripe"}
	require.NoError(t, store.Record("key-1", tx))

	stored, found, err := store.Replay("key-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "tx-1", stored.ID)
	assert.Equal(t, "stripe", stored.PSP)
	assert.Equal(t, 100.0, stored.Amount.Float64())
}

func TestIdempotencyStore_FirstWriteWins(t *testing.T) {
	store := openTestIdempotencyStore(t)

	require.NoError(t, store.Record("key-1", &domain.Transaction{ID: "tx-1"}))
	require.NoError(t, store.Record("key-1", &domain.Transaction{ID: "tx-2"}))

	stored, found, err := store.Replay("key-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tx-1", stored.ID)
}

func TestIdempotencyStore_KeysAreIndependent(t *testing.T) {
	store := openTestIdempotencyStore(t)

	require.NoError(t, store.Record("key-1", &domain.Transaction{ID: "tx-1"}))
	require.NoError(t, store.Record("key-2", &domain.Transaction{ID: "tx-2"}))

	stored, found, err := store.Replay("key-2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tx-2", stored.ID)
}
