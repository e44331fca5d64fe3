package queue

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-waitqueue/pkg/timer"
)

var _ Queue[int] = (*Blocking[int])(nil)

// Stats is a snapshot of the queue counters.
type Stats struct {
	Name    string
	Size    int64
	Waiting int64
	Visited uint64
}

// Blocking is an unbounded multiple-producer multiple-consumer FIFO queue.
//
// Consumers that find the queue empty park in arrival order and are woken one
// at a time, only while queued items outnumber consumers already woken. Both
// lists and the wakeup live in one critical section, so a consumer can never
// see an item it is unable to claim, and no wakeup is lost or sent twice.
//
// Items are never inspected or copied beyond the assignment of T.
type Blocking[T any] struct {
	mu        sync.Mutex
	values    valueList[T]
	waiters   *waitingList
	pending   int64 // consumers woken but not yet back under mu
	destroyed bool

	visited atomic.Uint64

	name     string
	logger   *zap.Logger
	clock    timer.Timer
	slowWait time.Duration
}

// New creates an empty queue. It replaces any global init: share the returned
// pointer with every producer and consumer.
func New[T any](opts ...Option) *Blocking[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Blocking[T]{
		waiters:  newWaitingList(),
		name:     o.name,
		logger:   o.logger.Named("queue").With(zap.String("queue", o.name)),
		clock:    o.clock,
		slowWait: o.slowWait,
	}
}

// Enqueue appends item. On the empty to nonempty transition it wakes the
// longest parked consumer within the same critical section.
func (q *Blocking[T]) Enqueue(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.destroyed {
		return ErrDestroyed
	}

	wasEmpty := q.values.isEmpty()
	q.values.append(item)
	if wasEmpty {
		q.handoffLocked()
	}
	return nil
}

// EnqueueBatch appends items in order. Returns count of items enqueued.
func (q *Blocking[T]) EnqueueBatch(items []T) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.destroyed {
		return 0, ErrDestroyed
	}
	if len(items) == 0 {
		return 0, nil
	}

	wasEmpty := q.values.isEmpty()
	for _, item := range items {
		q.values.append(item)
	}
	// Further consumers are woken one by one as each claims an item.
	if wasEmpty {
		q.handoffLocked()
	}
	return len(items), nil
}

// Dequeue removes and returns the head item, parking until one is available.
// It fails only with ErrDestroyed.
func (q *Blocking[T]) Dequeue() (T, error) {
	return q.DequeueContext(context.Background())
}

// DequeueContext is Dequeue that returns ctx.Err() once ctx is done.
// A wakeup received just before giving up is passed to the next consumer.
func (q *Blocking[T]) DequeueContext(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	if q.destroyed {
		q.mu.Unlock()
		return zero, ErrDestroyed
	}
	if v, ok := q.claimLocked(); ok {
		q.mu.Unlock()
		return v, nil
	}

	w := newWaiter(q.clock.Now())
	q.waiters.park(w)
	q.logger.Debug("consumer parked", zap.Int64("waiting", q.waiters.len()))

	for {
		q.mu.Unlock()

		select {
		case <-w.ready:
		case <-ctx.Done():
			q.mu.Lock()
			q.abandonLocked(w)
			q.mu.Unlock()
			return zero, errors.WithStack(ctx.Err())
		}

		q.mu.Lock()
		q.pending--
		if v, ok := q.claimLocked(); ok {
			q.mu.Unlock()
			q.observeWait(w)
			return v, nil
		}

		// Someone claimed the item first; keep seniority.
		q.waiters.parkFront(w)
		q.logger.Debug("consumer re-parked", zap.Int64("waiting", q.waiters.len()))
	}
}

// TryDequeue removes and returns the head item without parking.
// Returns (zero, false) if the queue is empty or destroyed.
func (q *Blocking[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.destroyed {
		var zero T
		return zero, false
	}
	return q.claimLocked()
}

// DequeueBatch removes up to len(out) items into out without parking.
// Returns count dequeued.
func (q *Blocking[T]) DequeueBatch(out []T) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.destroyed {
		return 0
	}

	count := 0
	for i := range out {
		v, err := q.values.popHead()
		if err != nil {
			break
		}
		out[i] = v
		count++
	}

	if count > 0 {
		q.visited.Add(uint64(count))
		q.handoffLocked()
	}
	return count
}

// Destroy drops every queued item and makes further calls fail.
// It refuses with ErrConsumersBlocked while any consumer waits, leaving the
// queue untouched.
func (q *Blocking[T]) Destroy() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.destroyed {
		return ErrDestroyed
	}
	if blocked := q.waiters.len() + q.pending; blocked > 0 {
		return errors.Wrapf(ErrConsumersBlocked, "%d consumers waiting", blocked)
	}

	dropped := q.values.reset()
	q.destroyed = true
	q.logger.Info("queue destroyed",
		zap.Int("dropped", dropped),
		zap.Uint64("visited", q.visited.Load()))
	return nil
}

// Size returns the number of queued items. Advisory under concurrency.
func (q *Blocking[T]) Size() int64 { return q.values.len() }

// IsEmpty returns true if queue appears empty.
func (q *Blocking[T]) IsEmpty() bool { return q.Size() == 0 }

// WaitingCount returns the number of parked consumers. Advisory under concurrency.
func (q *Blocking[T]) WaitingCount() int64 { return q.waiters.len() }

// VisitedCount returns the number of items ever dequeued. Never decreases.
func (q *Blocking[T]) VisitedCount() uint64 { return q.visited.Load() }

// Name returns the queue label.
func (q *Blocking[T]) Name() string { return q.name }

// Stats returns all counters at once.
func (q *Blocking[T]) Stats() Stats {
	return Stats{
		Name:    q.name,
		Size:    q.Size(),
		Waiting: q.WaitingCount(),
		Visited: q.VisitedCount(),
	}
}

// claimLocked pops the head item, if any, and hands off to the next parked
// consumer when items remain.
func (q *Blocking[T]) claimLocked() (T, bool) {
	v, err := q.values.popHead()
	if err != nil {
		return v, false
	}

	q.visited.Inc()
	q.handoffLocked()
	return v, true
}

// handoffLocked wakes the longest parked consumer if queued items outnumber
// consumers already woken.
func (q *Blocking[T]) handoffLocked() {
	if q.values.len() <= q.pending {
		return
	}
	if q.waiters.wakeOne() {
		q.pending++
	}
}

// abandonLocked withdraws w after its context ended.
func (q *Blocking[T]) abandonLocked(w *waiter) {
	if w.signaled {
		q.pending--
		q.handoffLocked()
		return
	}
	q.waiters.remove(w)
}

func (q *Blocking[T]) observeWait(w *waiter) {
	waited := timer.Since(q.clock, w.parkedAt)
	if q.slowWait > 0 && waited >= q.slowWait {
		q.logger.Warn("slow consumer wait", zap.Duration("waited", waited))
		return
	}
	q.logger.Debug("consumer resumed", zap.Duration("waited", waited))
}
