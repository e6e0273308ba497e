package sequence

import (
	"image/color"
	"time"
)

const (
	defaultBrightness  = 100
	defaultOrangeHold  = time.Second
	defaultBetweenHold = 250 * time.Millisecond
	defaultBlueHold    = 5 * time.Second
	defaultFadeTick    = 20 * time.Millisecond
	defaultFadeStep    = 20
)

type Config struct {
	// Brightness applied to the ring while the sequence runs.
	Brightness uint8

	// Shrine is the color shown when a touch lands.
	Shrine color.RGBA

	// Holds are full blocking pauses. Nothing runs during them, touch
	// sensing included.
	OrangeHold  time.Duration
	BetweenHold time.Duration
	BlueHold    time.Duration

	// FadeTick paces both fades.
	FadeTick time.Duration

	// FadeOutBy is the per-tick scale-down fraction out of 256.
	FadeOutBy uint8

	// FadeInStep is the per-tick increment on the blue channel.
	FadeInStep uint8

	// Trace, when set, observes every state transition.
	Trace func(from, to State)
}

func (c Config) withDefaults() Config {
	if c.Brightness == 0 {
		c.Brightness = defaultBrightness
	}
	if c.Shrine == (color.RGBA{}) {
		c.Shrine = InternationalOrange
	}
	if c.OrangeHold == 0 {
		c.OrangeHold = defaultOrangeHold
	}
	if c.BetweenHold == 0 {
		c.BetweenHold = defaultBetweenHold
	}
	if c.BlueHold == 0 {
		c.BlueHold = defaultBlueHold
	}
	if c.FadeTick == 0 {
		c.FadeTick = defaultFadeTick
	}
	if c.FadeOutBy == 0 {
		c.FadeOutBy = defaultFadeStep
	}
	if c.FadeInStep == 0 {
		c.FadeInStep = defaultFadeStep
	}
	return c
}
