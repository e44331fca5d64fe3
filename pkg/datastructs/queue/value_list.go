package queue

import (
	"go.uber.org/atomic"
)

// valueNode represents a single queued item.
type valueNode[T any] struct {
	value T
	next  *valueNode[T]
}

// valueList is a singly linked FIFO of items.
// It is NOT thread-safe; Blocking guards it with its mutex. Only size may be
// read without the lock.
type valueList[T any] struct {
	head *valueNode[T]
	tail *valueNode[T]
	size atomic.Int64
}

// append adds v to the tail.
func (l *valueList[T]) append(v T) {
	n := &valueNode[T]{value: v}

	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}

	l.tail = n
	l.size.Inc()
}

// popHead removes and returns the head item.
func (l *valueList[T]) popHead() (T, error) {
	var zero T
	if l.head == nil {
		return zero, ErrEmptyQueue
	}

	front := l.head
	l.head = front.next
	if l.head == nil {
		l.tail = nil
	}

	v := front.value
	front.value = zero
	front.next = nil
	l.size.Dec()

	return v, nil
}

func (l *valueList[T]) isEmpty() bool {
	return l.head == nil
}

func (l *valueList[T]) len() int64 {
	return l.size.Load()
}

// reset unlinks every node and returns how many items were dropped.
func (l *valueList[T]) reset() int {
	dropped := 0
	for _, err := l.popHead(); err == nil; _, err = l.popHead() {
		dropped++
	}
	return dropped
}
