package queue

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyQueue is returned by the value list when popping an empty list.
	// It never escapes the package: every caller checks under the queue lock.
	ErrEmptyQueue = errors.New("queue: empty")

	// ErrDestroyed is returned by operations on a queue after Destroy.
	ErrDestroyed = errors.New("queue: destroyed")

	// ErrConsumersBlocked is returned by Destroy while consumers still wait.
	ErrConsumersBlocked = errors.New("queue: consumers blocked")
)

// Queue is a generic interface for unbounded blocking FIFO queues.
type Queue[T any] interface {
	// Enqueue appends an item to the tail and wakes a waiting consumer if needed.
	Enqueue(item T) error

	// Dequeue removes and returns the head item, blocking until one exists.
	Dequeue() (T, error)

	// DequeueContext is Dequeue that gives up when ctx is done.
	DequeueContext(ctx context.Context) (T, error)

	// TryDequeue removes and returns the head item without blocking.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	TryDequeue() (T, bool)

	// Size returns the number of queued items.
	Size() int64

	// WaitingCount returns the number of parked consumers.
	WaitingCount() int64

	// VisitedCount returns the number of items ever removed.
	VisitedCount() uint64
}
