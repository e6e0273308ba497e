// sequence/sequencer.go

// Package sequence runs the shrine light show: wait for a touch, glow
// orange, fade to black, pause, ramp up to blue, hold, then go dark and
// wait again. Once a touch is confirmed the sequence is unskippable; no
// new touch is sampled until the machine is back at Inactive.
package sequence

import (
	"context"
	"image/color"

	"github.com/csammis/BotwController/hal"
	"github.com/csammis/BotwController/x/mathx"
)

// TouchWaiter blocks until a confirmed touch.
type TouchWaiter interface {
	Wait(ctx context.Context) error
}

// Sequencer owns the light state machine. Not safe for concurrent use;
// drive it from one goroutine, either through Run or by calling Step in
// a loop of your own.
type Sequencer struct {
	strip hal.Strip
	touch TouchWaiter
	clk   hal.Clock
	cfg   Config

	state  State
	frame  color.RGBA // last fill handed to the strip
	fadeIn color.RGBA // accumulator for the blue ramp
	gate   tickGate
}

func New(strip hal.Strip, touch TouchWaiter, clk hal.Clock, cfg Config) *Sequencer {
	cfg = cfg.withDefaults()
	return &Sequencer{
		strip: strip,
		touch: touch,
		clk:   clk,
		cfg:   cfg,
		gate:  tickGate{period: cfg.FadeTick},
	}
}

func (q *Sequencer) State() State {
	return q.state
}

// Reset puts the fixture in its power-on posture: sequence brightness,
// ring dark, machine at Inactive.
func (q *Sequencer) Reset() {
	q.strip.SetBrightness(q.cfg.Brightness)
	q.fill(Black)
	q.show()
	q.state = Inactive
}

// Step evaluates the machine once. Inactive blocks on the touch wait and
// the set states block for their holds; the fade states do nothing until
// the next tick is due, so callers decide how tightly to spin.
func (q *Sequencer) Step(ctx context.Context) error {
	switch q.state {
	case Inactive:
		if err := q.touch.Wait(ctx); err != nil {
			return err
		}
		q.strip.SetBrightness(q.cfg.Brightness)
		q.fill(q.cfg.Shrine)
		q.show()
		q.to(OrangeSet)

	case OrangeSet:
		q.clk.Sleep(q.cfg.OrangeHold)
		q.gate.reset(q.clk.Now())
		q.to(FadeOut)

	case FadeOut:
		if q.gate.ready(q.clk.Now()) {
			q.fill(FadeBy(q.frame, q.cfg.FadeOutBy))
			q.show()
			if allBlack(q.frame) {
				q.to(BetweenFades)
			}
		}

	case BetweenFades:
		q.fill(Black)
		q.show()
		q.clk.Sleep(q.cfg.BetweenHold)
		q.gate.reset(q.clk.Now())
		q.fadeIn = Black
		q.to(FadeIn)

	case FadeIn:
		if q.gate.ready(q.clk.Now()) {
			q.fadeIn.B = mathx.AddSat8(q.fadeIn.B, q.cfg.FadeInStep)
			q.fill(q.fadeIn)
			q.show()
			if q.fadeIn.B >= 255-q.cfg.FadeInStep {
				q.fill(Blue)
				q.show()
				q.to(BlueSet)
			}
		}

	case BlueSet:
		q.clk.Sleep(q.cfg.BlueHold)
		q.fill(Black)
		q.show()
		q.to(IdleUntilTouchFinished)

	case IdleUntilTouchFinished:
		q.to(Inactive)
	}
	return nil
}

// Run drives the machine until ctx is cancelled. Between fade ticks the
// loop spins; pacing comes from the holds, the touch wait and the tick
// gate, the same way the fixture behaves on hardware.
func (q *Sequencer) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := q.Step(ctx); err != nil {
			return err
		}
	}
}

func (q *Sequencer) to(next State) {
	if q.cfg.Trace != nil {
		q.cfg.Trace(q.state, next)
	}
	q.state = next
}

func (q *Sequencer) fill(c color.RGBA) {
	q.frame = c
	q.strip.Fill(c)
}

func (q *Sequencer) show() {
	_ = q.strip.Show()
}
