package report

import (
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the standard rate of the reference console.
	DefaultBaudRate = 115200
)

// Ports returns the names of the serial ports available on this host.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	return ports, nil
}

// SerialPort reports lines over a serial connection.
type SerialPort struct {
	port     string
	baudRate int

	mu        sync.Mutex
	conn      serial.Port
	connected bool
}

// NewSerialPort creates a sink on the given port.
func NewSerialPort(port string, baudRate int) *SerialPort {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	return &SerialPort{
		port:     port,
		baudRate: baudRate,
	}
}

// Connect opens the serial port.
func (s *SerialPort) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: s.baudRate,
	}

	conn, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = conn
	s.connected = true

	return nil
}

// Report writes one line to the port.
func (s *SerialPort) Report(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := s.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("failed to write report line: %w", err)
	}

	return nil
}

// Close releases the port.
func (s *SerialPort) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	if err := s.conn.Close(); err != nil {
		log.Printf("Error closing serial port: %v", err)
	}
	s.conn = nil
	s.connected = false

	return nil
}

// IsConnected returns whether the port is currently open.
func (s *SerialPort) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
