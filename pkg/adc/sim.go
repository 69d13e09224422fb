package adc

import (
	"math"
	"sync"
	"time"

	"github.com/itohio/govolt/pkg/config"
)

// Sim simulates a converter channel for development and tests: a slow
// sine sweep around a bias voltage with a little deterministic noise,
// clamped to the 12-bit window. Readings are computed on demand, so
// ReadRaw is bounded and producer-context safe.
type Sim struct {
	cfg *config.SimConfig

	start time.Time

	mu    sync.RWMutex
	fault error
}

// NewSim creates a new simulated device instance.
func NewSim(cfg *config.SimConfig) *Sim {
	if cfg == nil {
		cfg = &config.SimConfig{
			Bias:       1.65,
			Amplitude:  1.0,
			Period:     10 * time.Second,
			NoiseLevel: 0.01,
		}
	}

	return &Sim{
		cfg:   cfg,
		start: time.Now(),
	}
}

// SetFault makes subsequent reads fail with err. SetFault(nil)
// restores normal readings.
func (s *Sim) SetFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

// ReadRaw computes the simulated reading for the current instant.
func (s *Sim) ReadRaw(ch Channel) (uint16, error) {
	s.mu.RLock()
	fault := s.fault
	s.mu.RUnlock()

	if fault != nil {
		return 0, fault
	}

	elapsed := time.Since(s.start)

	period := s.cfg.Period
	if period <= 0 {
		period = 10 * time.Second
	}

	// Slow sweep plus noise
	phase := 2 * math.Pi * elapsed.Seconds() / period.Seconds()
	volts := s.cfg.Bias + s.cfg.Amplitude*math.Sin(phase)
	noise := (math.Sin(float64(elapsed.Nanoseconds())*0.001) +
		math.Cos(float64(elapsed.Nanoseconds())*0.0013)) *
		s.cfg.NoiseLevel * 0.5
	volts += noise

	// Convert to ADC counts (12-bit, 0-4095, 3.3V reference)
	val := (volts / 3.3) * 4095
	if val < 0 {
		val = 0
	} else if val > 4095 {
		val = 4095
	}

	return uint16(val), nil
}

// Resolution returns the simulated converter's full-scale reading.
func (s *Sim) Resolution() uint16 {
	return 4095
}
