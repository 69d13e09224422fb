// Package gate provides a binary, coalescing signal for handing one
// "new data ready" event from a non-blocking producer context to a
// single blocking consumer task.
//
// The gate has exactly two states, unsignaled and signaled. Signaling
// an already signaled gate is a no-op, so rapid producer activity
// collapses into one pending wakeup instead of accumulating credit.
// Producer and consumer sides are separate handle types: a producer
// cannot wait and a consumer cannot signal.
package gate

import (
	"context"
	"sync/atomic"
	"time"
)

// gate is the shared state behind the two handles. The 1-buffered
// channel holds the pending bit; waiting counts consumers parked in
// Wait so Signal can report whether it made one runnable.
type gate struct {
	ch      chan struct{}
	waiting atomic.Int32
}

// Producer signals the gate. Safe for use from the timer dispatch
// goroutine: no operation on it ever blocks.
type Producer struct {
	g *gate
}

// Consumer waits on the gate. Intended for exactly one task; waiting
// from multiple goroutines at once is a contract violation and leaves
// which waiter consumes a signal undefined.
type Consumer struct {
	g *gate
}

// New creates an unsignaled gate and returns its two handles. The gate
// exists before either side can reference it, so a handler or task
// built on these handles can never observe a missing gate.
func New() (*Producer, *Consumer) {
	g := &gate{ch: make(chan struct{}, 1)}
	return &Producer{g: g}, &Consumer{g: g}
}

// Signal marks the gate signaled without blocking. If the gate was
// already signaled nothing changes. Returns true when this call made a
// blocked consumer runnable; callers use that to yield so the consumer
// runs with minimal latency. The report is advisory: it can miss a
// consumer that parks an instant later, which at worst delays that
// wakeup by one scheduling quantum.
func (p *Producer) Signal() bool {
	waiting := p.g.waiting.Load() > 0
	select {
	case p.g.ch <- struct{}{}:
		return waiting
	default:
		return false
	}
}

// Wait blocks until the gate is signaled, consumes the signal and
// returns nil. Waiting on an already signaled gate returns at once.
// When ctx is canceled first, Wait returns the context error and
// leaves any pending signal for the next call.
func (c *Consumer) Wait(ctx context.Context) error {
	c.g.waiting.Add(1)
	defer c.g.waiting.Add(-1)

	select {
	case <-c.g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout is Wait with a deadline: it returns true when a signal
// was consumed and false when d elapsed with no signal. A non-positive
// d checks for a pending signal without blocking.
func (c *Consumer) WaitTimeout(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-c.g.ch:
			return true
		default:
			return false
		}
	}

	c.g.waiting.Add(1)
	defer c.g.waiting.Add(-1)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-c.g.ch:
		return true
	case <-timer.C:
		return false
	}
}
