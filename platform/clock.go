package platform

import (
	"time"

	"github.com/csammis/BotwController/hal"
)

var _ hal.Clock = WallClock{}

// WallClock is the hardware-backed clock. DelayMicros spins on the timer
// instead of scheduling, so it stays accurate while interrupts are masked.
type WallClock struct{}

func (WallClock) Now() time.Time        { return time.Now() }
func (WallClock) Sleep(d time.Duration) { time.Sleep(d) }

func (WallClock) DelayMicros(us int) {
	d := time.Duration(us) * time.Microsecond
	start := time.Now()
	for time.Since(start) < d {
	}
}
