// hal/hal.go
package hal

import (
	"image/color"
	"time"
)

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is one digital I/O line. Platform adapters map it onto the target's
// GPIO controller; host builds supply scripted fakes.
type Pin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// ---- Timing ----

// Clock supplies time to the control loop. Sleep is the blocking hold
// primitive; DelayMicros is a short busy-wait that stays accurate while
// interrupts are masked (it spins on the timer rather than scheduling).
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	DelayMicros(us int)
}

// Critical runs f with interrupts masked and always restores them, on
// every exit path. Keep the region to microseconds; never wrap a hold.
type Critical func(f func())

// ---- LED output ----

// Strip drives the LED ring: one uniform color per frame, pushed to the
// hardware on Show. SetBrightness scales every channel at flush time
// ((v * (level + 1)) >> 8), matching the usual 8-bit video scaling law.
type Strip interface {
	Len() int
	SetBrightness(level uint8)
	Fill(c color.RGBA)
	Show() error
}
