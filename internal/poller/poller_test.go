package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/switchpay/switchpay-go/pkg/logger"
)

func TestPoller_RunsImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32

	p := New(20*time.Millisecond, func(ctx context.Context) {
		calls.Add(1)
	}, logger.NewNop())

	p.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	p.Stop()

	// Immediate first run plus at least two ticks.
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestPoller_StopHaltsTicks(t *testing.T) {
	var calls atomic.Int32

	p := New(10*time.Millisecond, func(ctx context.Context) {
		calls.Add(1)
	}, logger.NewNop())

	p.Start(context.Background())
	time.Sleep(25 * time.Millisecond)
	p.Stop()

	after := calls.Load()
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, after, calls.Load())
}

func TestPoller_StartTwiceIsNoOp(t *testing.T) {
	var calls atomic.Int32

	p := New(time.Hour, func(ctx context.Context) {
		calls.Add(1)
	}, logger.NewNop())

	p.Start(context.Background())
	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	// A double start must not leak a duplicate timer.
	assert.Equal(t, int32(1), calls.Load())
}

func TestPoller_StopBeforeStart(t *testing.T) {
	p := New(time.Hour, func(ctx context.Context) {}, logger.NewNop())

	p.Stop()
	p.Stop()
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	p := New(10*time.Millisecond, func(ctx context.Context) {
		calls.Add(1)
	}, logger.NewNop())

	p.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())

	p.Stop()
}
