package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/govolt/pkg/adc"
	"github.com/itohio/govolt/pkg/config"
	"github.com/itohio/govolt/pkg/indicator"
	"github.com/itohio/govolt/pkg/report"
)

// fastConfig returns a config with a 5 ms sampling period.
func fastConfig() *config.Config {
	cfg := config.Default()
	cfg.Timer.AlarmCount = 5000
	return cfg
}

// slowSink simulates a consumer that cannot keep up with the sampler.
type slowSink struct {
	delay time.Duration
	inner *captureSink
}

func (s *slowSink) Report(line string) error {
	time.Sleep(s.delay)
	return s.inner.Report(line)
}

func TestNew_Validation(t *testing.T) {
	dev := &fakeDevice{}
	pin := &indicator.MemoryPin{}
	sink := newCaptureSink()

	tests := []struct {
		name string
		dev  adc.Device
		pin  indicator.Pin
		sink report.Sink
	}{
		{"nil device", nil, pin, sink},
		{"nil pin", dev, nil, sink},
		{"nil sink", dev, pin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(config.Default(), tt.dev, tt.pin, tt.sink)
			assert.Error(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	m, err := New(nil, &fakeDevice{}, &indicator.MemoryPin{}, newCaptureSink())
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, m.Period())
}

func TestMonitor_Period(t *testing.T) {
	m, err := New(fastConfig(), &fakeDevice{}, &indicator.MemoryPin{}, newCaptureSink())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, m.Period())
}

func TestMonitor_EndToEnd(t *testing.T) {
	dev := &fakeDevice{v: 2048}
	sink := newCaptureSink()

	m, err := New(fastConfig(), dev, &indicator.MemoryPin{}, sink)
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	for i := 0; i < 3; i++ {
		select {
		case line := <-sink.ch:
			assert.Equal(t, "1.650", line)
		case <-time.After(2 * time.Second):
			t.Fatalf("report %d missing", i)
		}
	}

	snap := m.Stats()
	assert.NotZero(t, snap.Fires)
	assert.NotZero(t, snap.Consumed)
	assert.LessOrEqual(t, snap.Consumed, snap.Fires)
	assert.Zero(t, snap.ReadFaults)
}

func TestMonitor_StartTwice(t *testing.T) {
	m, err := New(fastConfig(), &fakeDevice{}, &indicator.MemoryPin{}, newCaptureSink())
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.Error(t, m.Start(context.Background()))
}

func TestMonitor_Restart(t *testing.T) {
	dev := &fakeDevice{v: 4095}
	sink := newCaptureSink()

	m, err := New(fastConfig(), dev, &indicator.MemoryPin{}, sink)
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	select {
	case <-sink.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no report before restart")
	}
	m.Stop()

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	drained := false
	for !drained {
		select {
		case <-sink.ch:
		default:
			drained = true
		}
	}

	select {
	case line := <-sink.ch:
		assert.Equal(t, "3.299", line)
	case <-time.After(2 * time.Second):
		t.Fatal("no report after restart")
	}
}

func TestMonitor_OneShot(t *testing.T) {
	cfg := fastConfig()
	cfg.Timer.OneShot = true

	dev := &fakeDevice{v: 1024}
	sink := newCaptureSink()

	m, err := New(cfg, dev, &indicator.MemoryPin{}, sink)
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	select {
	case line := <-sink.ch:
		assert.Equal(t, "0.825", line)
	case <-time.After(2 * time.Second):
		t.Fatal("one-shot report missing")
	}

	select {
	case line := <-sink.ch:
		t.Fatalf("unexpected second report %q", line)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_SlowConsumerCoalesces(t *testing.T) {
	cfg := config.Default()
	cfg.Timer.AlarmCount = 1000 // 1 ms period

	dev := &fakeDevice{v: 2048}
	sink := &slowSink{delay: 20 * time.Millisecond, inner: newCaptureSink()}

	m, err := New(cfg, dev, &indicator.MemoryPin{}, sink)
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	time.Sleep(200 * time.Millisecond)
	m.Stop()

	snap := m.Stats()
	assert.Greater(t, snap.Fires, snap.Consumed)
	assert.NotZero(t, snap.Consumed)
}
