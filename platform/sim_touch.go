// platform/sim_touch.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"
	"time"

	"github.com/csammis/BotwController/hal"
)

// TouchProfile scripts one charge/discharge cycle on the simulated line:
// how many reads each phase spends below (charge) or above (discharge)
// the digital threshold before the level flips.
type TouchProfile struct {
	Charge    uint32
	Discharge uint32
}

// Stuck marks a phase that effectively never completes.
const Stuck = ^uint32(0)

var (
	// Touched approximates the fast cycle of a touched lead; the total
	// sits well under the timeout/5 threshold.
	Touched = TouchProfile{Charge: 9000, Discharge: 8000}

	// Untouched completes within the timeout but far above the threshold,
	// like a healthy pad nobody is touching.
	Untouched = TouchProfile{Charge: 30000, Discharge: 25000}

	// OpenPad never completes either phase, like a floating or shorted
	// sensing line. Every measurement against it times out.
	OpenPad = TouchProfile{Charge: Stuck, Discharge: Stuck}
)

type linePhase uint8

const (
	lineSettled linePhase = iota
	lineCharging
	lineDischarging
)

// SimTouchLine stands in for the RC sensing node. It follows the drive
// protocol the sensor speaks: a forced level on the sense pin settles the
// node, a drive rising edge while the node floats low starts a charge
// phase, a falling edge while it floats high starts a discharge phase.
// Queued profiles script successive cycles; the idle profile covers an
// empty queue.
type SimTouchLine struct {
	mu    sync.Mutex
	queue []TouchProfile
	idle  TouchProfile
	pace  time.Duration

	cur      TouchProfile
	phase    linePhase
	rem      uint32
	nodeHigh bool
	senseOut bool
	driveOn  bool
	cycles   int
}

func NewSimTouchLine() *SimTouchLine {
	return &SimTouchLine{idle: Untouched}
}

// Pins returns the drive and sense views of the line.
func (l *SimTouchLine) Pins() (drive, sense hal.Pin) {
	return &simDrivePin{l: l}, &simSensePin{l: l}
}

// Queue appends scripted cycles consumed in order, one per measurement.
func (l *SimTouchLine) Queue(ps ...TouchProfile) {
	l.mu.Lock()
	l.queue = append(l.queue, ps...)
	l.mu.Unlock()
}

// QueueTouches scripts n consecutive touched cycles.
func (l *SimTouchLine) QueueTouches(n int) {
	l.mu.Lock()
	for i := 0; i < n; i++ {
		l.queue = append(l.queue, Touched)
	}
	l.mu.Unlock()
}

// SetIdle replaces the profile used when the queue is empty.
func (l *SimTouchLine) SetIdle(p TouchProfile) {
	l.mu.Lock()
	l.idle = p
	l.mu.Unlock()
}

// SetPace adds a real-time sleep at each cycle start so interactive runs
// sample at roughly hardware speed. Leave zero for tests.
func (l *SimTouchLine) SetPace(d time.Duration) {
	l.mu.Lock()
	l.pace = d
	l.mu.Unlock()
}

// Cycles reports how many measurements have started on the line.
func (l *SimTouchLine) Cycles() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cycles
}

func (l *SimTouchLine) setDrive(level bool) {
	l.mu.Lock()
	rising := level && !l.driveOn
	falling := !level && l.driveOn
	l.driveOn = level

	var pause time.Duration
	switch {
	case rising && !l.senseOut && !l.nodeHigh:
		// Charge begins through the series resistor.
		if len(l.queue) > 0 {
			l.cur = l.queue[0]
			l.queue = l.queue[1:]
		} else {
			l.cur = l.idle
		}
		l.phase = lineCharging
		l.rem = l.cur.Charge
		l.cycles++
		pause = l.pace
	case falling && !l.senseOut && l.nodeHigh:
		l.phase = lineDischarging
		l.rem = l.cur.Discharge
	}
	l.mu.Unlock()

	if pause > 0 {
		time.Sleep(pause)
	}
}

func (l *SimTouchLine) forceSense(level bool) {
	l.mu.Lock()
	l.senseOut = true
	l.nodeHigh = level
	l.phase = lineSettled
	l.mu.Unlock()
}

func (l *SimTouchLine) releaseSense() {
	l.mu.Lock()
	l.senseOut = false
	l.mu.Unlock()
}

func (l *SimTouchLine) readSense() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.senseOut {
		return l.nodeHigh
	}
	switch l.phase {
	case lineCharging:
		if l.rem == 0 {
			l.nodeHigh = true
			l.phase = lineSettled
			return true
		}
		l.rem--
		return false
	case lineDischarging:
		if l.rem == 0 {
			l.nodeHigh = false
			l.phase = lineSettled
			return false
		}
		l.rem--
		return true
	default:
		return l.nodeHigh
	}
}

// ---- Pin views ----

var (
	_ hal.Pin = (*simDrivePin)(nil)
	_ hal.Pin = (*simSensePin)(nil)
)

type simDrivePin struct{ l *SimTouchLine }

func (p *simDrivePin) ConfigureInput(hal.Pull) error { return nil }
func (p *simDrivePin) ConfigureOutput(initial bool) error {
	p.l.setDrive(initial)
	return nil
}
func (p *simDrivePin) Set(level bool) { p.l.setDrive(level) }
func (p *simDrivePin) Get() bool {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()
	return p.l.driveOn
}
func (p *simDrivePin) Number() int { return TouchDrivePin }

type simSensePin struct{ l *SimTouchLine }

func (p *simSensePin) ConfigureInput(hal.Pull) error {
	p.l.releaseSense()
	return nil
}
func (p *simSensePin) ConfigureOutput(initial bool) error {
	p.l.forceSense(initial)
	return nil
}
func (p *simSensePin) Set(level bool) { p.l.forceSense(level) }
func (p *simSensePin) Get() bool      { return p.l.readSense() }
func (p *simSensePin) Number() int    { return TouchSensePin }
