// Package timex converts between clock rates and durations.
package timex

import "time"

// CyclesIn returns how many cycles of a freqHz clock fit in d. Whole seconds
// are taken first so the product cannot wrap for any Duration.
func CyclesIn(freqHz uint32, d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	hz := uint64(freqHz)
	sec, frac := uint64(d/time.Second), uint64(d%time.Second)
	return hz*sec + hz*frac/uint64(time.Second)
}
