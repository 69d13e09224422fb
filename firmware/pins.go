//go:build rp2040

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 100 // Sampling interval in milliseconds

	// ADC configuration
	ADC_RESOLUTION = 12 // ADC resolution in bits (12-bit = 0-4095)

	// Heartbeat indicator pin
	PIN_LED = machine.LED

	// ADC input pin
	PIN_ADC = machine.ADC0
)
