package worker

import "context"

// Handler is the interface that must be implemented by users of the Pool.
// It is responsible for processing a single item.
type Handler[T any] interface {
	// Handle processes one item.
	// A returned error is logged and counted; it never stops the pool.
	Handle(ctx context.Context, item T) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[T any] func(ctx context.Context, item T) error

// Handle calls f(ctx, item).
func (f HandlerFunc[T]) Handle(ctx context.Context, item T) error {
	return f(ctx, item)
}

// Source is the consuming side of a queue.
type Source[T any] interface {
	// DequeueContext blocks until an item is available or ctx is done.
	DequeueContext(ctx context.Context) (T, error)

	// TryDequeue returns an item without blocking.
	TryDequeue() (T, bool)
}
