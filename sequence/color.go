package sequence

import (
	"image/color"
	"time"

	"github.com/csammis/BotwController/x/mathx"
)

// FadeBy scales every color channel down by by/256, flooring toward zero.
// Repeated application reaches exact black in a bounded number of steps.
func FadeBy(c color.RGBA, by uint8) color.RGBA {
	scale := 255 - by
	return color.RGBA{
		R: mathx.Scale8(c.R, scale),
		G: mathx.Scale8(c.G, scale),
		B: mathx.Scale8(c.B, scale),
		A: c.A,
	}
}

func allBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// fadedShortcut is a cheaper end-of-fade test that inspects only two
// channels. With a palette whose colors always carry one zero channel it
// turns true on the same fade as allBlack, a few frames earlier.
func fadedShortcut(c color.RGBA) bool {
	return (c.R == 0 || c.G == 0) && c.B == 0
}

// tickGate passes at most once per period. A due tick is serviced exactly
// once with no catch-up, so a stalled caller runs late rather than
// skipping frames.
type tickGate struct {
	period time.Duration
	last   time.Time
}

func (g *tickGate) ready(now time.Time) bool {
	if now.Sub(g.last) >= g.period {
		g.last = now
		return true
	}
	return false
}

func (g *tickGate) reset(now time.Time) {
	g.last = now
}
