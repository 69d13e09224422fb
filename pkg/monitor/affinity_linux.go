//go:build linux

package monitor

import "golang.org/x/sys/unix"

// pinToCPU restricts the calling thread to a single CPU.
func pinToCPU(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
