//go:build !rp2040 && !rp2350

// cmd/shrine-sim/main.go
//
// Terminal simulator for the shrine fixture. The real sensor and
// sequencer run against the simulated touch line and LED ring, so the
// whole show can be watched without hardware: tap the pad, glow orange,
// fade, ramp to blue, go dark.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/csammis/BotwController/platform"
	"github.com/csammis/BotwController/sequence"
	"github.com/csammis/BotwController/touch"
	"github.com/csammis/BotwController/x/mathx"
)

const (
	frameMs   = 33 * time.Millisecond
	stepPause = 2 * time.Millisecond
	barWidth  = 24
)

type app struct {
	screen tcell.Screen
	board  *platform.Board
	seq    *sequence.Sequencer

	stateCh chan sequence.State
	state   sequence.State
	fault   bool
	taps    int
}

func newApp() (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen:  screen,
		board:   platform.NewBoard(),
		stateCh: make(chan sequence.State, 16),
		state:   sequence.Inactive,
	}

	// Pace the line so five confirming samples take about as long as they
	// do on hardware.
	a.board.Line.SetPace(20 * time.Millisecond)

	sensor := touch.New(a.board.Drive, a.board.Sense, a.board.Clock, a.board.Critical, touch.Config{})
	a.seq = sequence.New(a.board.Strip, sensor, a.board.Clock, sequence.Config{
		Trace: func(_, to sequence.State) {
			select {
			case a.stateCh <- to:
			default:
			}
		},
	})
	a.seq.Reset()
	return a, nil
}

func (a *app) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			if err := a.seq.Step(ctx); err != nil {
				return
			}
			time.Sleep(stepPause)
		}
	}()

	ticker := time.NewTicker(frameMs)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case s := <-a.stateCh:
			a.state = s
		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 't':
			// The fixture only samples while idle; a tap during the show
			// is never seen, same as on hardware.
			if a.state == sequence.Inactive && !a.fault {
				a.board.Line.QueueTouches(5)
				a.taps++
			}
		case 'f':
			a.fault = !a.fault
			if a.fault {
				a.board.Line.SetIdle(platform.OpenPad)
			} else {
				a.board.Line.SetIdle(platform.Untouched)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) draw() {
	a.screen.Clear()

	a.drawText(2, 1, tcell.StyleDefault.Bold(true), "shrine-sim")
	a.drawText(2, 2, tcell.StyleDefault, "a still shrine ornament that reacts to touch")

	// The ring, as the eye would see it.
	c := a.board.Ring.Rendered()
	swatch := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	for i := 0; i < a.board.Ring.Len(); i++ {
		a.screen.SetContent(4+i*2, 4, '●', nil, swatch)
	}

	a.drawBar(2, 6, "R", c.R, tcell.ColorRed)
	a.drawBar(2, 7, "G", c.G, tcell.ColorGreen)
	a.drawBar(2, 8, "B", c.B, tcell.ColorBlue)

	pad := "ok"
	if a.fault {
		pad = "stuck line, touches lost"
	}
	a.drawText(2, 10, tcell.StyleDefault, fmt.Sprintf("state: %-26s pad: %s", a.state, pad))
	a.drawText(2, 11, tcell.StyleDefault, fmt.Sprintf("taps: %d   samples: %d", a.taps, a.board.Line.Cycles()))
	a.drawText(2, 13, tcell.StyleDefault.Dim(true), "keys: t touch the pad, f toggle line fault, q quit")

	a.screen.Show()
}

func (a *app) drawBar(x, y int, label string, v uint8, color tcell.Color) {
	a.drawText(x, y, tcell.StyleDefault, label)
	filled := int(mathx.MapU16(uint16(v), 0, 255, 0, barWidth))
	style := tcell.StyleDefault.Foreground(color)
	for i := 0; i < barWidth; i++ {
		ch := '·'
		if i < filled {
			ch = '█'
		}
		a.screen.SetContent(x+2+i, y, ch, nil, style)
	}
	a.drawText(x+3+barWidth, y, tcell.StyleDefault, fmt.Sprintf("%3d", v))
}

func (a *app) drawText(x, y int, style tcell.Style, s string) {
	for i, ch := range s {
		a.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (a *app) cleanup() {
	a.screen.Fini()
}

func main() {
	app, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
}
