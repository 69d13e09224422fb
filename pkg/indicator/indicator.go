// Package indicator provides the heartbeat output the sampler toggles
// on every alarm.
package indicator

import "sync/atomic"

// Pin is a single digital output with readable state. Get and Set must
// be bounded: they are called from the timer dispatch goroutine.
type Pin interface {
	Get() (bool, error)
	Set(v bool) error
}

// MemoryPin is an in-memory pin for hosts without GPIO and for tests.
type MemoryPin struct {
	v atomic.Bool
}

// Ensure MemoryPin implements Pin.
var _ Pin = (*MemoryPin)(nil)

// Get returns the pin state.
func (p *MemoryPin) Get() (bool, error) {
	return p.v.Load(), nil
}

// Set drives the pin state.
func (p *MemoryPin) Set(v bool) error {
	p.v.Store(v)
	return nil
}
