package adc

// Channel identifies a converter input on the device. The reference
// wiring samples channel 34.
type Channel uint8

// Device is a single measurement source. ReadRaw must complete in
// bounded time: it is called from the timer dispatch goroutine, which
// never blocks.
type Device interface {
	ReadRaw(ch Channel) (uint16, error)
	Resolution() uint16
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Sim implements Device.
var _ Device = (*Sim)(nil)
