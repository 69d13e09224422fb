package report

// Sink receives one textual line per consumed sample.
type Sink interface {
	Report(line string) error
}

// Ensure Writer implements Sink.
var _ Sink = (*Writer)(nil)

// Ensure SerialPort implements Sink.
var _ Sink = (*SerialPort)(nil)
