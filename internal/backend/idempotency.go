package backend

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/switchpay/switchpay-go/internal/domain"
)

const idempotencyBucket = "idempotency"

// IdempotencyStore maps Idempotency-Key header values to the transaction
// first created under that key. Replays of the same attempt get the stored
// response back unchanged; a new key is always a new logical transaction.
// BoltDB keeps everything in a single file, so no database process is needed
// for the demo.
type IdempotencyStore struct {
	db *bolt.DB
}

func OpenIdempotencyStore(path string) (*IdempotencyStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open idempotency db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(idempotencyBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create idempotency bucket: %w", err)
	}

	return &IdempotencyStore{db: db}, nil
}

func (s *IdempotencyStore) Close() error {
	return s.db.Close()
}

// Replay returns the transaction previously recorded for the key, if any.
func (s *IdempotencyStore) Replay(key string) (*domain.Transaction, bool, error) {
	var tx domain.Transaction
	found := false

	err := s.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket([]byte(idempotencyBucket))
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &tx); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("replay idempotency key: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	return &tx, true, nil
}

// Record stores the response for a key if none exists yet. The first write
// wins, so concurrent replays of one attempt converge on one response.
func (s *IdempotencyStore) Record(key string, tx *domain.Transaction) error {
	err := s.db.Update(func(btx *bolt.Tx) error {
		b := btx.Bucket([]byte(idempotencyBucket))

		if existing := b.Get([]byte(key)); existing != nil {
			return nil
		}

		data, err := json.Marshal(tx)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("record idempotency key: %w", err)
	}
	return nil
}
