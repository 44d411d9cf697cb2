// Package future provides a single-assignment, multi-waiter asynchronous
// result holder, the producer side of a future unbound to any function.
package future

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrAlreadyCompleted is returned when completing a source that has already completed.
var ErrAlreadyCompleted = errors.New("completion source has already completed")

// ErrNotMutable is returned by Mutate when the source is still pending or completed with an error.
var ErrNotMutable = errors.New("completion source does not hold a mutable value")

// CompletionSource resolves at most once with a value or an error, and
// releases any number of concurrent waiters on completion. A waiter that
// arrives after completion returns immediately without blocking.
type CompletionSource[T any] struct {
	completed atomic.Bool

	mu    sync.RWMutex
	done  chan struct{}
	value T
	err   error
}

// New returns a pending CompletionSource with no waiters.
func New[T any]() *CompletionSource[T] {
	return &CompletionSource[T]{
		done: make(chan struct{}),
	}
}

// NewCompleted returns a CompletionSource already resolved with value.
// Await completes synchronously on such a source.
func NewCompleted[T any](value T) *CompletionSource[T] {
	s := &CompletionSource[T]{
		done:  make(chan struct{}),
		value: value,
	}
	s.completed.Store(true)
	close(s.done)
	return s
}

// SetValue resolves the source with value, releasing all current waiters.
func (s *CompletionSource[T]) SetValue(value T) error {
	return s.complete(value, nil)
}

// SetError completes the source with err, releasing all current waiters.
func (s *CompletionSource[T]) SetError(err error) error {
	var zero T
	return s.complete(zero, err)
}

func (s *CompletionSource[T]) complete(value T, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed.Load() {
		return ErrAlreadyCompleted
	}

	s.value = value
	s.err = err
	s.completed.Store(true)
	close(s.done)
	return nil
}

// Completed reports whether the source has resolved with a value or an error.
func (s *CompletionSource[T]) Completed() bool {
	return s.completed.Load()
}

// Result returns the stored outcome without blocking. The final return is
// false while the source is still pending.
func (s *CompletionSource[T]) Result() (T, error, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.completed.Load() {
		var zero T
		return zero, nil, false
	}
	return s.value, s.err, true
}

// Mutate updates the stored value of a source that completed successfully.
// The updated value is observed by every subsequent Await. Mutate fails with
// ErrNotMutable while the source is pending or completed with an error; this
// restriction keeps completion itself a single-assignment event.
func (s *CompletionSource[T]) Mutate(value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.completed.Load() || s.err != nil {
		return ErrNotMutable
	}
	s.value = value
	return nil
}

// Await returns the resolved value or error, blocking until the source
// completes. A source that has already completed returns immediately.
func (s *CompletionSource[T]) Await(ctx context.Context) (T, error) {
	if s.completed.Load() {
		return s.get()
	}

	select {
	case <-s.done:
		return s.get()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (s *CompletionSource[T]) get() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value, s.err
}
