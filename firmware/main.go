//go:build rp2040

//go:generate tinygo flash -target=pico

package main

import (
	"context"
	"machine"
	"runtime"
	"time"

	"github.com/itohio/govolt/pkg/gate"
	"github.com/itohio/govolt/pkg/sample"
)

var adcInput machine.ADC

func main() {
	// Configure the heartbeat LED and the ADC input
	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.InitADC()
	adcInput = machine.ADC{Pin: PIN_ADC}
	adcInput.Configure(machine.ADCConfig{})

	// The gate and the slot exist before either side starts
	producer, waiter := gate.New()
	writer, reader := sample.NewSlot()

	go produce(producer, writer)

	consume(waiter, reader)
}

func produce(sig *gate.Producer, slot *sample.Writer) {
	ledState := false

	for {
		ledState = !ledState
		PIN_LED.Set(ledState)

		// machine.ADC readings are left-aligned 16-bit; shift down to
		// the converter's native width.
		slot.Store(adcInput.Get() >> (16 - ADC_RESOLUTION))

		if sig.Signal() {
			// The consumer just became runnable; let it run now.
			runtime.Gosched()
		}

		time.Sleep(time.Duration(SAMPLE_INTERVAL_MS) * time.Millisecond)
	}
}

func consume(sig *gate.Consumer, slot *sample.Reader) {
	scale := sample.DefaultScale()

	for {
		if err := sig.Wait(context.Background()); err != nil {
			return
		}
		println(scale.Line(slot.Load()))
	}
}
