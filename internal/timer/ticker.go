package timer

import (
	"sync"
	"time"
)

// Tick is one task's recomputed elapsed time for a display refresh.
type Tick struct {
	TaskID  int
	Elapsed int64
}

// Ticker recomputes elapsed time for every running timer on a fixed
// interval and hands the batch to a single callback. Work per interval
// is bounded by the number of running timers, not the number of tasks.
// Stop must be called on teardown or the goroutine leaks.
type Ticker struct {
	rec       *Reconciler
	committed func(taskID int) (int64, bool)
	fn        func([]Tick)

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewTicker builds a ticker. committed resolves a task id to its
// committed seconds; tasks it does not know are skipped.
func NewTicker(rec *Reconciler, committed func(int) (int64, bool), fn func([]Tick)) *Ticker {
	return &Ticker{rec: rec, committed: committed, fn: fn}
}

// Start begins ticking at the given interval. Calling Start on a
// running ticker is a no-op.
func (t *Ticker) Start(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(interval, t.stop, t.done)
}

// Stop cancels the ticker and waits for its goroutine to exit. Safe to
// call on a stopped ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (t *Ticker) run(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			t.broadcast()
		}
	}
}

func (t *Ticker) broadcast() {
	ids := t.rec.Registry.RunningIDs()
	if len(ids) == 0 {
		return
	}
	ticks := make([]Tick, 0, len(ids))
	for _, id := range ids {
		c, ok := t.committed(id)
		if !ok {
			continue
		}
		ticks = append(ticks, Tick{TaskID: id, Elapsed: t.rec.Elapsed(id, c)})
	}
	if len(ticks) > 0 {
		t.fn(ticks)
	}
}
