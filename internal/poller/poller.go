// Package poller runs the fixed-interval metrics refresh as a scoped
// resource: started once on activation, guaranteed to stop on deactivation.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/switchpay/switchpay-go/pkg/logger"
)

type Poller struct {
	interval time.Duration
	task     func(ctx context.Context)
	logger   *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func New(interval time.Duration, task func(ctx context.Context), log *logger.Logger) *Poller {
	return &Poller{
		interval: interval,
		task:     task,
		logger:   log,
	}
}

// Start runs the task immediately and then on every tick until Stop is called
// or ctx is cancelled. Calling Start twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.started = true

	p.logger.Debug(runCtx, "Poller started",
		"interval", p.interval,
	)

	go p.run(runCtx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.task(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug(context.Background(), "Poller stopped")
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}

// Stop cancels the loop and waits for the in-flight tick to finish. Safe to
// call more than once or before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}
