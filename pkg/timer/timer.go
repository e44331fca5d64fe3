package timer

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Timer is a clock source. Stop releases any background resources.
type Timer interface {
	Now() time.Time
	Stop()
}

// System reads the wall clock on every call.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Stop() {}

// CachedTimer refreshes its reading once per step from a background goroutine,
// trading precision for a Now that never enters the runtime clock.
type CachedTimer struct {
	now    atomic.Time
	step   time.Duration
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewCachedTimer(step time.Duration) *CachedTimer {
	if step <= 0 {
		step = time.Millisecond
	}

	t := &CachedTimer{
		step:   step,
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}
	t.now.Store(time.Now())

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *CachedTimer) run() {
	defer t.wg.Done()

	for {
		select {
		case now := <-t.ticker.C:
			t.now.Store(now)
		case <-t.done:
			t.ticker.Stop()
			return
		}
	}
}

func (t *CachedTimer) Now() time.Time {
	return t.now.Load()
}

// Stop halts the refresh goroutine. Safe to call more than once.
func (t *CachedTimer) Stop() {
	t.once.Do(func() { close(t.done) })
	t.wg.Wait()
}

// Since returns the time elapsed since start according to t.
func Since(t Timer, start time.Time) time.Duration {
	return t.Now().Sub(start)
}
