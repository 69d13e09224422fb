//go:build !linux

package indicator

import (
	"errors"
	"fmt"
)

// Line is only available on linux, where GPIO lines are exposed
// through the character device. NewLine never returns a Line on other
// platforms, so the methods exist only to satisfy Pin.
type Line struct{}

// Ensure Line implements Pin.
var _ Pin = (*Line)(nil)

// NewLine fails on platforms without GPIO character-device support.
func NewLine(chip string, offset int) (*Line, error) {
	return nil, fmt.Errorf("gpio line %s:%d: %w", chip, offset, errors.ErrUnsupported)
}

func (l *Line) Get() (bool, error) {
	return false, errors.ErrUnsupported
}

func (l *Line) Set(v bool) error {
	return errors.ErrUnsupported
}

func (l *Line) Close() error {
	return nil
}
