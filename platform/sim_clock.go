// platform/sim_clock.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"
	"time"

	"github.com/csammis/BotwController/hal"
)

var _ hal.Clock = (*SimClock)(nil)

// SimClock is a virtual clock. Sleep and DelayMicros advance it instantly,
// so sequences that hold for seconds run in microseconds of test time.
type SimClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func NewSimClock() *SimClock {
	return &SimClock{now: time.Unix(0, 0)}
}

func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
}

func (c *SimClock) DelayMicros(us int) {
	c.mu.Lock()
	c.now = c.now.Add(time.Duration(us) * time.Microsecond)
	c.mu.Unlock()
}

// Advance moves the clock forward without recording a sleep.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Sleeps returns every Sleep duration in call order.
func (c *SimClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
