// platform/sim_strip.go
//go:build !rp2040 && !rp2350

package platform

import (
	"image/color"
	"sync"

	"github.com/csammis/BotwController/hal"
	"github.com/csammis/BotwController/x/mathx"
)

var _ hal.Strip = (*SimStrip)(nil)

// SimStrip records what a ring of LEDs would display. Fill and
// SetBrightness stage values; Show commits them and appends the committed
// fill to the frame history.
type SimStrip struct {
	mu    sync.Mutex
	count int

	fill       color.RGBA
	brightness uint8

	shownFill       color.RGBA
	shownBrightness uint8
	frames          []color.RGBA
	shows           int
}

func NewSimStrip(count int) *SimStrip {
	return &SimStrip{count: count, brightness: 255, shownBrightness: 255}
}

func (s *SimStrip) Len() int {
	return s.count
}

func (s *SimStrip) SetBrightness(level uint8) {
	s.mu.Lock()
	s.brightness = level
	s.mu.Unlock()
}

func (s *SimStrip) Fill(c color.RGBA) {
	s.mu.Lock()
	s.fill = c
	s.mu.Unlock()
}

func (s *SimStrip) Show() error {
	s.mu.Lock()
	s.shownFill = s.fill
	s.shownBrightness = s.brightness
	s.frames = append(s.frames, s.fill)
	s.shows++
	s.mu.Unlock()
	return nil
}

// Shows reports how many frames have been committed.
func (s *SimStrip) Shows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows
}

// Brightness returns the committed brightness level.
func (s *SimStrip) Brightness() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shownBrightness
}

// LastFrame returns the most recently committed fill before scaling.
func (s *SimStrip) LastFrame() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shownFill
}

// Frames returns every committed fill in order.
func (s *SimStrip) Frames() []color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]color.RGBA, len(s.frames))
	copy(out, s.frames)
	return out
}

// Rendered returns the committed fill scaled by the committed brightness,
// the color the LEDs would actually emit.
func (s *SimStrip) Rendered() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return color.RGBA{
		R: mathx.Scale8(s.shownFill.R, s.shownBrightness),
		G: mathx.Scale8(s.shownFill.G, s.shownBrightness),
		B: mathx.Scale8(s.shownFill.B, s.shownBrightness),
		A: s.shownFill.A,
	}
}
