// platform/board_rp2.go
//go:build rp2040 || rp2350

package platform

import (
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"

	"github.com/csammis/BotwController/hal"
	"github.com/csammis/BotwController/x/mathx"
)

// ---- GPIO ----

var _ hal.Pin = (*rp2Pin)(nil)

type rp2Pin struct {
	p machine.Pin
	n int
}

func newPin(n int) *rp2Pin { return &rp2Pin{p: machine.Pin(n), n: n} }

func (r *rp2Pin) ConfigureInput(pull hal.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(b bool)  { r.p.Set(b) }
func (r *rp2Pin) Get() bool   { return r.p.Get() }
func (r *rp2Pin) Number() int { return r.n }

// critical masks interrupts around f. The deferred restore covers every
// exit path, including a panic inside f.
func critical(f func()) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	f()
}

// ---- WS2812 ring ----

var _ hal.Strip = (*ringStrip)(nil)

// ringStrip pushes one uniform color to the ring. Brightness scaling is
// applied at Show time; the driver owns the GRB wire order.
type ringStrip struct {
	dev        ws2812.Device
	crit       hal.Critical
	buf        []color.RGBA
	fill       color.RGBA
	brightness uint8
}

func newRingStrip(pin machine.Pin, n int, crit hal.Critical) *ringStrip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ringStrip{
		dev:        ws2812.New(pin),
		crit:       crit,
		buf:        make([]color.RGBA, n),
		brightness: 255,
	}
}

func (s *ringStrip) Len() int                  { return len(s.buf) }
func (s *ringStrip) SetBrightness(level uint8) { s.brightness = level }
func (s *ringStrip) Fill(c color.RGBA)         { s.fill = c }

func (s *ringStrip) Show() error {
	c := color.RGBA{
		R: mathx.Scale8(s.fill.R, s.brightness),
		G: mathx.Scale8(s.fill.G, s.brightness),
		B: mathx.Scale8(s.fill.B, s.brightness),
		A: s.fill.A,
	}
	for i := range s.buf {
		s.buf[i] = c
	}
	// The bit-banged write is timing-critical end to end.
	var err error
	s.crit(func() { err = s.dev.WriteColors(s.buf) })
	return err
}

// ---- Board ----

// Board wires the fixture hardware: the touch pin pair, the LED ring,
// the clock and the interrupt mask.
type Board struct {
	Drive, Sense hal.Pin
	Strip        hal.Strip
	Clock        hal.Clock
	Critical     hal.Critical

	// Nil unless built with -tags touchdebug.
	ProbeFrame, ProbePhase hal.Pin
}

func NewBoard() *Board {
	b := &Board{
		Drive:    newPin(TouchDrivePin),
		Sense:    newPin(TouchSensePin),
		Clock:    WallClock{},
		Critical: critical,
	}
	b.Strip = newRingStrip(machine.Pin(LEDDataPin), LEDCount, b.Critical)
	if probesEnabled {
		b.ProbeFrame = newPin(ProbeFramePin)
		b.ProbePhase = newPin(ProbePhasePin)
	}
	return b
}
