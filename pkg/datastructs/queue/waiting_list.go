package queue

import (
	"time"

	"github.com/edwingeng/deque"
	"go.uber.org/atomic"
)

// waiter is the parking handle of one blocking Dequeue call.
type waiter struct {
	ready    chan struct{} // capacity 1, receives the wakeup
	signaled bool          // guarded by the queue mutex
	parkedAt time.Time
}

func newWaiter(now time.Time) *waiter {
	return &waiter{
		ready:    make(chan struct{}, 1),
		parkedAt: now,
	}
}

// waitingList is a FIFO of parked consumers.
// It is NOT thread-safe; every method except len must run under the queue
// mutex. A waiter is present only while it is parked and unsignaled.
type waitingList struct {
	dq    deque.Deque
	count atomic.Int64
}

func newWaitingList() *waitingList {
	return &waitingList{dq: deque.NewDeque()}
}

// park adds w behind every other parked consumer.
func (l *waitingList) park(w *waiter) {
	w.signaled = false
	l.dq.PushBack(w)
	l.count.Inc()
}

// parkFront puts w back at the head, keeping its seniority after a stolen wakeup.
func (l *waitingList) parkFront(w *waiter) {
	w.signaled = false
	l.dq.PushFront(w)
	l.count.Inc()
}

// wakeOne signals the longest waiting consumer.
// Returns false if nobody is parked.
func (l *waitingList) wakeOne() bool {
	if l.dq.Len() == 0 {
		return false
	}

	w := l.dq.PopFront().(*waiter)
	l.count.Dec()

	w.signaled = true
	// Never blocks: a parked waiter's channel is always drained.
	w.ready <- struct{}{}
	return true
}

// remove unlinks w, keeping the order of the others.
// Returns false if w was not parked.
func (l *waitingList) remove(w *waiter) bool {
	found := false
	for n := l.dq.Len(); n > 0; n-- {
		e := l.dq.PopFront().(*waiter)
		if e == w && !found {
			found = true
			continue
		}
		l.dq.PushBack(e)
	}

	if found {
		l.count.Dec()
	}
	return found
}

func (l *waitingList) len() int64 {
	return l.count.Load()
}
