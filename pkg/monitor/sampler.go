package monitor

import (
	"runtime"

	"github.com/itohio/govolt/pkg/adc"
	"github.com/itohio/govolt/pkg/gate"
	"github.com/itohio/govolt/pkg/indicator"
	"github.com/itohio/govolt/pkg/sample"
)

// Sampler is the timer alarm handler. On each alarm it toggles the
// heartbeat pin, reads one raw value from the device, publishes it to
// the slot and signals the consumer. It runs in the timer dispatch
// goroutine and never blocks; device and indicator faults are counted
// and absorbed so the sampling period is not disturbed.
type Sampler struct {
	dev   adc.Device
	ch    adc.Channel
	pin   indicator.Pin
	slot  *sample.Writer
	sig   *gate.Producer
	stats *Stats
}

// NewSampler creates an alarm handler over the given collaborators.
func NewSampler(dev adc.Device, ch adc.Channel, pin indicator.Pin, slot *sample.Writer, sig *gate.Producer, stats *Stats) *Sampler {
	return &Sampler{
		dev:   dev,
		ch:    ch,
		pin:   pin,
		slot:  slot,
		sig:   sig,
		stats: stats,
	}
}

// OnAlarm handles one timer alarm.
func (s *Sampler) OnAlarm() {
	s.stats.fires.Add(1)

	if v, err := s.pin.Get(); err != nil {
		s.stats.pinFaults.Add(1)
	} else if err := s.pin.Set(!v); err != nil {
		s.stats.pinFaults.Add(1)
	}

	// A failed read keeps the previous value in the slot; the signal
	// is raised either way so the consumer keeps its cadence.
	if v, err := s.dev.ReadRaw(s.ch); err != nil {
		s.stats.readFaults.Add(1)
	} else {
		s.slot.Store(v)
	}

	if s.sig.Signal() {
		s.stats.wakeups.Add(1)
		// The consumer just became runnable; let it run now rather
		// than after the next alarm.
		runtime.Gosched()
	}
}
