// Package monitor assembles the voltage monitor: a hardware-style
// periodic timer whose alarm handler samples the device, a single
// shared slot for the latest reading, a binary gate and the consumer
// task that reports readings as volts.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/itohio/govolt/pkg/adc"
	"github.com/itohio/govolt/pkg/config"
	"github.com/itohio/govolt/pkg/gate"
	"github.com/itohio/govolt/pkg/hwtimer"
	"github.com/itohio/govolt/pkg/indicator"
	"github.com/itohio/govolt/pkg/report"
	"github.com/itohio/govolt/pkg/sample"
)

// Monitor owns the sampling arrangement end to end. New builds it in
// dependency order: the gate and the slot exist before the alarm
// handler is attached and before the consumer can run.
type Monitor struct {
	timer    *hwtimer.Timer
	consumer *Consumer
	stats    *Stats

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New wires a monitor from an ADC device, an indicator pin and a
// report sink. A nil cfg uses config.Default().
func New(cfg *config.Config, dev adc.Device, pin indicator.Pin, sink report.Sink) (*Monitor, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if dev == nil {
		return nil, fmt.Errorf("device is required")
	}
	if pin == nil {
		return nil, fmt.Errorf("indicator pin is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("report sink is required")
	}

	// Gate and slot come first; everything else holds handles into
	// them.
	producer, waiter := gate.New()
	writer, reader := sample.NewSlot()
	stats := &Stats{}

	sampler := NewSampler(dev, adc.Channel(cfg.ADC.Channel), pin, writer, producer, stats)

	timer := hwtimer.New(hwtimer.Config{
		BaseClockHz: cfg.Timer.BaseClockHz,
		Divider:     cfg.Timer.Divider,
		AlarmCount:  cfg.Timer.AlarmCount,
		AutoReload:  !cfg.Timer.OneShot,
	})
	timer.AttachHandler(sampler.OnAlarm)

	scale := sample.Scale{
		VRef:      float32(cfg.Scale.VRef),
		FullScale: float32(cfg.Scale.FullScale),
	}
	consumer := NewConsumer(waiter, reader, scale, sink, cfg.Consumer.CPU, stats)

	return &Monitor{
		timer:    timer,
		consumer: consumer,
		stats:    stats,
	}, nil
}

// Period returns the configured sampling interval.
func (m *Monitor) Period() time.Duration {
	return m.timer.Period()
}

// Start spawns the consumer task and then enables the timer.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := m.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Consumer stopped: %v", err)
		}
	}()

	if err := m.timer.Enable(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to enable timer: %w", err)
	}

	m.cancel = cancel
	m.done = done
	m.running = true

	return nil
}

// Stop disables the timer, cancels the consumer task and waits for it
// to exit. Stopping a monitor that is not running is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.timer.Disable()
	m.cancel()
	<-m.done
	m.running = false
}

// Stats returns a snapshot of the activity counters.
func (m *Monitor) Stats() Snapshot {
	return m.stats.Snapshot()
}
