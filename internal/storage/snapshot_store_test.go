package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchpay/switchpay-go/internal/domain"
)

func TestSnapshotStore_StartsEmpty(t *testing.T) {
	store := NewSnapshotStore()

	assert.Empty(t, store.List())
	assert.Equal(t, 0, store.Len())
}

func TestSnapshotStore_ReplaceIsWholesale(t *testing.T) {
	store := NewSnapshotStore()

	store.Replace([]domain.Transaction{
		{ID: "a", Status: domain.StatusPending},
		{ID: "b", Status: domain.StatusSuccess},
	})
	require.Equal(t, 2, store.Len())

	// A later refresh replaces everything, it never merges.
	store.Replace([]domain.Transaction{
		{ID: "c", Status: domain.StatusFailed},
	})

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].ID)
}

func TestSnapshotStore_PreservesBackendOrder(t *testing.T) {
	store := NewSnapshotStore()

	store.Replace([]domain.Transaction{
		{ID: "newest"},
		{ID: "older"},
		{ID: "oldest"},
	})

	list := store.List()
	assert.Equal(t, "newest", list[0].ID)
	assert.Equal(t, "oldest", list[2].ID)
}

func TestSnapshotStore_ListReturnsCopy(t *testing.T) {
	store := NewSnapshotStore()
	store.Replace([]domain.Transaction{{ID: "a", Status: domain.StatusPending}})

	list := store.List()
	list[0].Status = domain.StatusSuccess

	fresh := store.List()
	assert.Equal(t, domain.StatusPending, fresh[0].Status)
}

func TestSnapshotStore_Get(t *testing.T) {
	store := NewSnapshotStore()
	store.Replace([]domain.Transaction{{ID: "a"}, {ID: "b"}})

	tx, ok := store.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", tx.ID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}
