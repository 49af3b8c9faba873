package timing

import (
	"fmt"
	"time"
)

// VTimeInCycle is simulated time measured in clock cycles since reset.
type VTimeInCycle uint64

// Freq is a clock frequency in Hz.
type Freq float64

// Frequency units.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the duration of one cycle.
func (f Freq) Period() time.Duration {
	if f <= 0 {
		panic(fmt.Sprintf("timing: invalid frequency %g", float64(f)))
	}

	return time.Duration(float64(time.Second) / float64(f))
}

// Elapsed converts a cycle count into wall time on a core running at f.
func (f Freq) Elapsed(c VTimeInCycle) time.Duration {
	if f <= 0 {
		panic(fmt.Sprintf("timing: invalid frequency %g", float64(f)))
	}

	return time.Duration(float64(c) / float64(f) * float64(time.Second))
}
