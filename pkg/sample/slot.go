// Package sample holds the shared single-value sample slot and the
// raw-reading-to-volts conversion.
package sample

import "sync/atomic"

// Slot is a single shared cell holding the most recent raw reading.
// The reading is kept zero-extended in a 32-bit atomic, so stores and
// loads are single untearable operations. There is no history: a store
// replaces the previous reading whether or not it was read.
type Slot struct {
	v atomic.Uint32
}

// Writer stores readings into a slot. It belongs in the producing
// context; the sampling handler is its only intended holder.
type Writer struct {
	s *Slot
}

// Reader loads readings from a slot. It belongs in the consuming task.
type Reader struct {
	s *Slot
}

// NewSlot creates a slot holding zero and returns its two capability
// handles, one for the single writer and one for the single reader.
func NewSlot() (*Writer, *Reader) {
	s := &Slot{}
	return &Writer{s: s}, &Reader{s: s}
}

// Store publishes a new reading, replacing the previous one.
func (w *Writer) Store(v uint16) {
	w.s.v.Store(uint32(v))
}

// Load returns the most recently stored reading.
func (r *Reader) Load() uint16 {
	return uint16(r.s.v.Load())
}
