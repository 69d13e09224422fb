package hwtimer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want time.Duration
	}{
		{
			name: "reference configuration",
			cfg:  Config{BaseClockHz: 80000000, Divider: 80, AlarmCount: 100000},
			want: 100 * time.Millisecond, // 1 us tick, 100000 ticks
		},
		{
			name: "default base clock",
			cfg:  Config{Divider: 80, AlarmCount: 100000},
			want: 100 * time.Millisecond,
		},
		{
			name: "millisecond alarm",
			cfg:  Config{BaseClockHz: 80000000, Divider: 80, AlarmCount: 1000},
			want: time.Millisecond,
		},
		{
			name: "slow base clock",
			cfg:  Config{BaseClockHz: 1000000, Divider: 2, AlarmCount: 500},
			want: time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(tt.cfg)
			assert.Equal(t, tt.want, tm.Period())
		})
	}
}

func TestEnable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		handler func()
		wantErr string
	}{
		{
			name:    "no handler",
			cfg:     Config{Divider: 80, AlarmCount: 100000},
			handler: nil,
			wantErr: "no handler",
		},
		{
			name:    "zero divider",
			cfg:     Config{Divider: 0, AlarmCount: 100000},
			handler: func() {},
			wantErr: "divider",
		},
		{
			name:    "zero alarm count",
			cfg:     Config{Divider: 80, AlarmCount: 0},
			handler: func() {},
			wantErr: "alarm count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(tt.cfg)
			if tt.handler != nil {
				tm.AttachHandler(tt.handler)
			}

			err := tm.Enable()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnable_AlreadyEnabled(t *testing.T) {
	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 10000, AutoReload: true})
	tm.AttachHandler(func() {})

	require.NoError(t, tm.Enable())
	defer tm.Disable()

	err := tm.Enable()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already enabled")
}

func TestTimer_FiresPeriodically(t *testing.T) {
	var fires atomic.Int64

	// 5 ms alarm
	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 5000, AutoReload: true})
	tm.AttachHandler(func() {
		fires.Add(1)
	})

	require.NoError(t, tm.Enable())
	time.Sleep(100 * time.Millisecond)
	tm.Disable()

	got := fires.Load()
	assert.GreaterOrEqual(t, got, int64(5), "Expected repeated alarms over 100ms, got %d", got)

	// No alarms after Disable.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, got, fires.Load(), "Timer fired after Disable")
}

func TestTimer_OneShot(t *testing.T) {
	var fires atomic.Int64

	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 10000, AutoReload: false}) // 10 ms
	tm.AttachHandler(func() {
		fires.Add(1)
	})

	require.NoError(t, tm.Enable())
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int64(1), fires.Load(), "One-shot alarm must fire exactly once")

	tm.Disable()
}

func TestTimer_SerializedDispatch(t *testing.T) {
	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var fires atomic.Int32

	// The handler deliberately overruns the 1 ms period; invocations
	// must still never overlap.
	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 1000, AutoReload: true})
	tm.AttachHandler(func() {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(3 * time.Millisecond)
		inFlight.Add(-1)
		fires.Add(1)
	})

	require.NoError(t, tm.Enable())
	time.Sleep(50 * time.Millisecond)
	tm.Disable()

	assert.False(t, overlapped.Load(), "Handler invocations overlapped")
	assert.Greater(t, fires.Load(), int32(2), "Overrunning handler should still be re-invoked")
}

func TestTimer_Reenable(t *testing.T) {
	var fires atomic.Int64

	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 5000, AutoReload: true})
	tm.AttachHandler(func() {
		fires.Add(1)
	})

	require.NoError(t, tm.Enable())
	time.Sleep(20 * time.Millisecond)
	tm.Disable()

	first := fires.Load()
	assert.Greater(t, first, int64(0))

	require.NoError(t, tm.Enable())
	time.Sleep(20 * time.Millisecond)
	tm.Disable()

	assert.Greater(t, fires.Load(), first, "Timer should fire again after re-enable")
}

func TestDisable_Idempotent(t *testing.T) {
	tm := New(Config{BaseClockHz: 1000000, Divider: 1, AlarmCount: 5000, AutoReload: true})
	tm.AttachHandler(func() {})

	// Disable before enable is a no-op.
	tm.Disable()

	require.NoError(t, tm.Enable())
	tm.Disable()
	tm.Disable()
}
