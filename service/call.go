package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wesleyorama2/parry/response"
)

// Call is a cancelable in-flight request. It terminates with exactly one
// event: a decoded value, an empty completion, or an error. Canceling
// before the transport completes aborts the underlying operation and
// suppresses the terminal event; canceling afterwards is a no-op.
type Call[T any] struct {
	cancel    context.CancelFunc
	canceled  atomic.Bool
	done      chan struct{}
	once      sync.Once
	published bool
	out       response.Outcome[T]
}

func newCall[T any](cancel context.CancelFunc) *Call[T] {
	return &Call[T]{cancel: cancel, done: make(chan struct{})}
}

// Done is closed once the call has settled, whether by terminal event or
// cancellation.
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Cancel aborts the underlying transport operation. Safe to call at any
// time, from any goroutine, any number of times.
func (c *Call[T]) Cancel() {
	c.canceled.Store(true)
	c.cancel()
}

// Canceled reports whether the call was canceled before publishing its
// terminal event.
func (c *Call[T]) Canceled() bool {
	select {
	case <-c.done:
		return !c.published
	default:
		return false
	}
}

// Outcome blocks until the call settles and returns its terminal outcome.
// A canceled call yields a context.Canceled failure.
func (c *Call[T]) Outcome() response.Outcome[T] {
	<-c.done
	if !c.published {
		return response.Failure[T](context.Canceled)
	}
	return c.out
}

// Result blocks and splits the outcome: ok is false for an empty
// completion.
func (c *Call[T]) Result() (T, bool, error) {
	o := c.Outcome()
	if err := o.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := o.Value()
	return v, ok, nil
}

// settle records the terminal event exactly once. A call canceled before
// settling closes without publishing.
func (c *Call[T]) settle(o response.Outcome[T]) {
	c.once.Do(func() {
		if !c.canceled.Load() {
			c.out = o
			c.published = true
		}
		close(c.done)
	})
}
