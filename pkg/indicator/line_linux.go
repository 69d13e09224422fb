//go:build linux

package indicator

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// Line drives a GPIO line through the character device. The line is
// requested as an output driven low; Close reverts it to an input and
// releases it. The driven state is tracked locally so Get never has to
// read the line back.
type Line struct {
	mu    sync.RWMutex
	line  *gpiocdev.Line
	state bool
}

// Ensure Line implements Pin.
var _ Pin = (*Line)(nil)

// NewLine requests the line at offset on the given chip (e.g.
// "gpiochip0") as an output.
func NewLine(chip string, offset int) (*Line, error) {
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("govolt"))
	if err != nil {
		return nil, fmt.Errorf("failed to request gpio line %s:%d: %w", chip, offset, err)
	}

	return &Line{line: l}, nil
}

// Get returns the currently driven state.
func (l *Line) Get() (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, nil
}

// Set drives the line.
func (l *Line) Set(v bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	val := 0
	if v {
		val = 1
	}
	if err := l.line.SetValue(val); err != nil {
		return fmt.Errorf("failed to set gpio line: %w", err)
	}

	l.state = v
	return nil
}

// Close reverts the line to an input and releases it.
func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.line == nil {
		return nil
	}

	// Stop driving the pin before handing it back.
	if err := l.line.Reconfigure(gpiocdev.AsInput); err != nil {
		return fmt.Errorf("failed to reconfigure gpio line as input: %w", err)
	}
	if err := l.line.Close(); err != nil {
		return fmt.Errorf("failed to release gpio line: %w", err)
	}

	l.line = nil
	return nil
}
