// touch/sensor.go

// Package touch infers a finger on the sensing pad from RC timing. The
// pad hangs off a sense line that is charged and drained through a 1MOhm
// resistor on a drive line; a touch adds body capacitance, which moves
// the measured cycle time across a calibrated threshold.
package touch

import (
	"context"
	"time"

	"github.com/csammis/BotwController/hal"
)

// A touched lead completes a cycle well under a fifth of the timeout, so
// the classify threshold is derived instead of hand-tuned per board.
const thresholdDivisor = 5

const (
	defaultSampleTimeout    = 100000
	defaultSamplesToTrigger = 5
	defaultSettle           = 10 * time.Microsecond
)

type Config struct {
	// SampleTimeout bounds the accumulator for one measurement. Units are
	// arbitrary loop iterations, not cycles or microseconds.
	SampleTimeout uint32

	// SamplesToTrigger is how many consecutive touched samples confirm a
	// touch. Requiring several keeps pets brushing the pad from setting
	// off the sequence, at the cost of a slower response to a real touch.
	SamplesToTrigger uint8

	// Settle is how long the sense line is held at a forced level before
	// each timed phase begins.
	Settle time.Duration
}

func (c Config) withDefaults() Config {
	if c.SampleTimeout == 0 {
		c.SampleTimeout = defaultSampleTimeout
	}
	if c.SamplesToTrigger == 0 {
		c.SamplesToTrigger = defaultSamplesToTrigger
	}
	if c.Settle == 0 {
		c.Settle = defaultSettle
	}
	return c
}

// Threshold is the count below which a completed cycle counts as touched.
func (c Config) Threshold() uint32 {
	return c.SampleTimeout / thresholdDivisor
}

// Probes are optional instrumentation pins for a logic analyzer: Frame
// brackets a whole measurement, Phase brackets each timed count. Both
// toggle outside the counting loops, so wiring them changes nothing about
// the measured values. Either pin may be nil.
type Probes struct {
	Frame hal.Pin
	Phase hal.Pin
}

func (p Probes) frame(level bool) {
	if p.Frame != nil {
		p.Frame.Set(level)
	}
}

func (p Probes) phase(level bool) {
	if p.Phase != nil {
		p.Phase.Set(level)
	}
}

// Sensor owns the drive/sense pin pair. Nothing else may touch those pins
// while a Sensor is in use.
type Sensor struct {
	drive  hal.Pin
	sense  hal.Pin
	clk    hal.Clock
	crit   hal.Critical
	cfg    Config
	probes Probes
}

func New(drive, sense hal.Pin, clk hal.Clock, crit hal.Critical, cfg Config) *Sensor {
	return &Sensor{
		drive: drive,
		sense: sense,
		clk:   clk,
		crit:  crit,
		cfg:   cfg.withDefaults(),
	}
}

func (s *Sensor) Config() Config {
	return s.cfg
}

func (s *Sensor) SetProbes(p Probes) {
	if p.Frame != nil {
		_ = p.Frame.ConfigureOutput(false)
	}
	if p.Phase != nil {
		_ = p.Phase.ConfigureOutput(false)
	}
	s.probes = p
}

// MeasureCycle times one charge/discharge cycle of the sensing lead,
// counting loop iterations into acc while the lead sits on the wrong side
// of the input threshold. Both phases share acc and the same absolute
// timeout, and acc is never reset here, so repeated calls can share one
// budget. Interrupts stay masked for the duration of the cycle. Reports
// whether both phases finished before acc reached timeout.
func (s *Sensor) MeasureCycle(acc *uint32, timeout uint32) bool {
	_ = s.drive.ConfigureOutput(false)
	_ = s.sense.ConfigureInput(hal.PullNone)

	settle := int(s.cfg.Settle / time.Microsecond)

	s.probes.frame(true)
	s.crit(func() {
		// Hold the lead low so every cycle charges from the same level,
		// then release it and start charging through the resistor.
		s.drive.Set(false)
		_ = s.sense.ConfigureOutput(false)
		s.clk.DelayMicros(settle)
		_ = s.sense.ConfigureInput(hal.PullNone)
		s.drive.Set(true)

		s.probes.phase(true)
		for !s.sense.Get() && *acc < timeout {
			*acc++
		}
		s.probes.phase(false)

		// The lead is right around the input threshold now. Top it off,
		// then release it and time the drain.
		_ = s.sense.ConfigureOutput(true)
		s.clk.DelayMicros(settle)
		_ = s.sense.ConfigureInput(hal.PullNone)
		s.drive.Set(false)

		s.probes.phase(true)
		for s.sense.Get() && *acc < timeout {
			*acc++
		}
		s.probes.phase(false)
	})
	s.probes.frame(false)

	return *acc < timeout
}

// Wait blocks until the pad has produced SamplesToTrigger consecutive
// touched samples. A slow, timed-out or failed measurement just counts as
// not touched and resets the run; a dead sensing line therefore means
// Wait never returns rather than an error. Cancel ctx to give up.
func (s *Sensor) Wait(ctx context.Context) error {
	threshold := s.cfg.Threshold()
	var hits uint8
	for hits < s.cfg.SamplesToTrigger {
		if err := ctx.Err(); err != nil {
			return err
		}
		var total uint32
		s.MeasureCycle(&total, s.cfg.SampleTimeout)
		if total < threshold {
			hits++
		} else {
			hits = 0
		}
	}
	return nil
}
