package monitor

import "sync/atomic"

// Stats counts sampler and consumer activity. The counters are
// advisory diagnostics and never synchronize anything. Coalescing
// shows up as Fires running ahead of Consumed.
type Stats struct {
	fires      atomic.Uint64
	readFaults atomic.Uint64
	pinFaults  atomic.Uint64
	wakeups    atomic.Uint64
	consumed   atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Fires      uint64 // timer alarms handled
	ReadFaults uint64 // device reads that failed and were masked
	PinFaults  uint64 // indicator accesses that failed and were masked
	Wakeups    uint64 // signals that unblocked a waiting consumer
	Consumed   uint64 // samples reported by the consumer
}

// Snapshot returns a copy of the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Fires:      s.fires.Load(),
		ReadFaults: s.readFaults.Load(),
		PinFaults:  s.pinFaults.Load(),
		Wakeups:    s.wakeups.Load(),
		Consumed:   s.consumed.Load(),
	}
}
