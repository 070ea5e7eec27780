// Package readiness publishes a value exactly once and lets any number of
// goroutines wait for it.
package readiness

import (
	"context"
	"sync"
)

type Gate[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
}

func NewGate[T any]() *Gate[T] {
	return &Gate[T]{done: make(chan struct{})}
}

// Open publishes v and releases all waiters. Later calls are ignored and
// report false.
func (g *Gate[T]) Open(v T) bool {
	opened := false
	g.once.Do(func() {
		g.value = v
		close(g.done)
		opened = true
	})
	return opened
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-g.done:
		return g.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (g *Gate[T]) Ready() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Value returns the published value, or the zero value before Open.
func (g *Gate[T]) Value() T {
	if !g.Ready() {
		var zero T
		return zero
	}
	return g.value
}
