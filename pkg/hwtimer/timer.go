// Package hwtimer models a hardware alarm timer: a prescaled counter
// that invokes an attached handler every time it reaches the alarm
// count. The handler runs on the timer's single dispatch goroutine,
// the producer context of the system: invocations are serialized, run
// to completion and must never block.
package hwtimer

import (
	"fmt"
	"sync"
	"time"
)

// DefaultBaseClockHz is the reference timer's base clock (80 MHz).
const DefaultBaseClockHz = 80000000

// Config describes an alarm timer. With the reference values (80 MHz
// base, divider 80, alarm count 100000) the counter ticks at 1 us and
// the alarm fires every 100 ms.
type Config struct {
	BaseClockHz uint32 // base clock before the divider, default 80 MHz
	Divider     uint32 // prescaler applied to the base clock
	AlarmCount  uint64 // ticks per alarm
	AutoReload  bool   // rearm after each alarm; false fires once
}

// Timer generates alarm callbacks on a dedicated dispatch goroutine.
type Timer struct {
	cfg     Config
	handler func()

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a timer with the given configuration. The configuration
// is validated when the timer is enabled.
func New(cfg Config) *Timer {
	if cfg.BaseClockHz == 0 {
		cfg.BaseClockHz = DefaultBaseClockHz
	}

	return &Timer{cfg: cfg}
}

// Period returns the configured alarm interval:
// alarm_count * divider / base_clock.
func (t *Timer) Period() time.Duration {
	ns := t.cfg.AlarmCount * uint64(t.cfg.Divider) * uint64(time.Second) / uint64(t.cfg.BaseClockHz)
	return time.Duration(ns)
}

// AttachHandler sets the alarm handler, replacing any previous one.
// It must be called before Enable.
func (t *Timer) AttachHandler(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = fn
}

// Enable validates the configuration and starts alarm generation.
func (t *Timer) Enable() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("already enabled")
	}
	if t.handler == nil {
		return fmt.Errorf("no handler attached")
	}
	if t.cfg.Divider == 0 {
		return fmt.Errorf("timer divider must be positive")
	}
	if t.cfg.AlarmCount == 0 {
		return fmt.Errorf("alarm count must be positive")
	}

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	t.running = true

	go dispatch(t.Period(), t.handler, t.cfg.AutoReload, t.stop, t.done)

	return nil
}

// Disable stops alarm generation and waits for an in-flight handler
// invocation to finish. Disabling a stopped timer is a no-op; after a
// one-shot alarm has fired, Disable resets the timer for reuse.
func (t *Timer) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	close(t.stop)
	<-t.done
	t.running = false
}

// dispatch is the timer's producer context. A handler that overruns
// the period skips alarms rather than queueing them.
func dispatch(period time.Duration, handler func(), autoReload bool, stop, done chan struct{}) {
	defer close(done)

	if !autoReload {
		alarm := time.NewTimer(period)
		defer alarm.Stop()

		select {
		case <-alarm.C:
			handler()
		case <-stop:
		}
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			handler()
		case <-stop:
			return
		}
	}
}
