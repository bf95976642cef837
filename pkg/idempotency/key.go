// Package idempotency generates per-attempt idempotency keys. Every
// user-initiated submission gets a fresh key: only transport-level replays of
// the same attempt are deduplicated server-side, never a new submit.
package idempotency

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NewKey returns a random UUID, falling back to a timestamp+random token when
// the secure generator is unavailable.
func NewKey() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%d-%08x", time.Now().UnixMilli(), rand.Uint32())
	}
	return id.String()
}
