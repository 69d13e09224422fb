package monitor

import (
	"context"
	"log"
	"runtime"

	"github.com/itohio/govolt/pkg/gate"
	"github.com/itohio/govolt/pkg/report"
	"github.com/itohio/govolt/pkg/sample"
)

// Consumer is the reporting task. It blocks on the gate and, for every
// wakeup, loads the latest reading, converts it to volts and reports a
// single line. Waiting on the gate is its only suspension point.
type Consumer struct {
	sig   *gate.Consumer
	slot  *sample.Reader
	scale sample.Scale
	sink  report.Sink
	cpu   int
	stats *Stats
}

// NewConsumer creates the reporting task. cpu pins the task to a core
// for its lifetime; -1 leaves it unpinned.
func NewConsumer(sig *gate.Consumer, slot *sample.Reader, scale sample.Scale, sink report.Sink, cpu int, stats *Stats) *Consumer {
	return &Consumer{
		sig:   sig,
		slot:  slot,
		scale: scale,
		sink:  sink,
		cpu:   cpu,
		stats: stats,
	}
}

// Run loops until ctx is canceled and returns the context's error.
// Sink failures are logged and skipped; they do not stop the loop.
func (c *Consumer) Run(ctx context.Context) error {
	if c.cpu >= 0 {
		// Affinity applies to the OS thread, so the task stays locked
		// to its thread for the whole loop.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := pinToCPU(c.cpu); err != nil {
			log.Printf("Failed to pin consumer to CPU %d: %v", c.cpu, err)
		}
	}

	for {
		if err := c.sig.Wait(ctx); err != nil {
			return err
		}

		raw := c.slot.Load()
		c.stats.consumed.Add(1)

		if err := c.sink.Report(c.scale.Line(raw)); err != nil {
			log.Printf("Failed to report sample: %v", err)
		}
	}
}
