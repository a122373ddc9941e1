package sync

import (
	"context"
	"log"
	"sync"
	"time"
)

// Poller runs a refresh func on a fixed interval. It is an explicit,
// cancellable scheduled task: Start ties it to a consuming view's
// lifetime and Stop must be called on teardown. A refresh failure is
// logged and the poller keeps going; the next interval retries.
type Poller struct {
	refresh func(context.Context) error

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewPoller(refresh func(context.Context) error) *Poller {
	return &Poller{refresh: refresh}
}

// Start begins polling every interval. Intervals of zero or less
// disable polling entirely. Start on a running poller is a no-op.
func (p *Poller) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(interval, p.stop, p.done)
}

// Stop cancels polling and waits for the goroutine to exit. Safe to
// call on a stopped poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (p *Poller) run(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if err := p.refresh(ctx); err != nil {
				log.Printf("⚠️  Auto-refresh failed: %v", err)
			}
			cancel()
		}
	}
}
