package async

import (
	"context"
	"errors"
	"fmt"
)

// ErrPanic wraps a panic recovered from the background function.
var ErrPanic = errors.New("async: function panicked")

// Future is the pending result of a background computation.
type Future[T any] struct {
	val  T
	err  error
	done chan struct{}
}

// Go runs fn in a new goroutine. A context that is already canceled
// completes the future with ctx.Err() without calling fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.val, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the function returns.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.val, f.err
}

// AwaitContext blocks until the function returns or ctx is done.
// Giving up on the wait does not stop the function.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the function returns.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the function has returned, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
