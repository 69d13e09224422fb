// Package adc provides measurement devices: a serial-fed converter
// stream and a simulated one for hosts with no hardware attached.
package adc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the standard rate of the reference console.
	DefaultBaudRate = 115200
)

// Serial reads raw samples from an MCU that streams one decimal
// reading per line. A background goroutine parses the stream and keeps
// the most recent reading in an atomic cell, so ReadRaw never touches
// the port and never blocks.
type Serial struct {
	port     string
	baudRate int

	conn      serial.Port
	latest    atomic.Uint32
	haveValue atomic.Bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// NewSerial creates a serial-fed device on the given port.
func NewSerial(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect opens the serial port and starts reading the stream.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading the stream in a goroutine
	go d.readLines()

	return nil
}

// Close stops the reader goroutine and releases the port.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	// Cancel context to stop reading goroutine
	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// ReadRaw returns the most recent reading received from the stream.
// Before the first line arrives it fails, which the caller masks like
// any other device fault.
func (d *Serial) ReadRaw(ch Channel) (uint16, error) {
	if !d.IsConnected() {
		return 0, fmt.Errorf("not connected")
	}
	if !d.haveValue.Load() {
		return 0, fmt.Errorf("no reading received yet")
	}
	return uint16(d.latest.Load()), nil
}

// Resolution returns the stream's full-scale reading.
func (d *Serial) Resolution() uint16 {
	return 4095
}

// readLines reads lines from the serial port and keeps the latest
// valid reading. Invalid lines are dropped.
func (d *Serial) readLines() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readLines: %v", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil && err != io.EOF {
					log.Printf("Error reading from serial port: %v", err)
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			v, err := parseLine(line)
			if err != nil {
				log.Printf("Failed to parse line '%s': %v", line, err)
				continue
			}

			d.latest.Store(uint32(v))
			d.haveValue.Store(true)
		}
	}
}

// parseLine parses a streamed reading.
// Format: one decimal raw value per line, e.g. "2048".
func parseLine(line string) (uint16, error) {
	v, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid reading: %w", err)
	}
	if v > 4095 {
		return 0, fmt.Errorf("reading out of range: %d (max 4095)", v)
	}
	return uint16(v), nil
}
