// Package report provides the line-oriented reporting sinks the
// consumer task writes to.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer reports lines to an io.Writer, newline-terminated.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a sink on w. A nil w reports to stdout.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		w = os.Stdout
	}

	return &Writer{w: w}
}

// Report writes one line.
func (r *Writer) Report(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return fmt.Errorf("failed to write report line: %w", err)
	}

	return nil
}
