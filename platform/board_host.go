// platform/board_host.go
//go:build !rp2040 && !rp2350

package platform

import "github.com/csammis/BotwController/hal"

// Board carries the simulated fixture used off-hardware. Drive, Sense,
// Strip and Clock satisfy the same contracts as the RP2 board; Line and
// Ring expose the simulations behind them for scripting and assertions.
type Board struct {
	Drive hal.Pin
	Sense hal.Pin

	Strip hal.Strip
	Clock hal.Clock

	Critical hal.Critical

	ProbeFrame hal.Pin
	ProbePhase hal.Pin

	Line *SimTouchLine
	Ring *SimStrip
}

// NewBoard builds a simulated board with an untouched line and a dark ring.
// Interrupts do not exist here, so Critical is a plain call-through.
func NewBoard() *Board {
	line := NewSimTouchLine()
	drive, sense := line.Pins()
	ring := NewSimStrip(LEDCount)
	return &Board{
		Drive:    drive,
		Sense:    sense,
		Strip:    ring,
		Clock:    WallClock{},
		Critical: func(f func()) { f() },
		Line:     line,
		Ring:     ring,
	}
}
