//go:build !linux

package monitor

// pinToCPU is a no-op on platforms without thread affinity control.
func pinToCPU(cpu int) error {
	return nil
}
