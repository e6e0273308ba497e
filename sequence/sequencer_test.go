package sequence

import (
	"context"
	"errors"
	"image/color"
	"slices"
	"testing"
	"time"

	"github.com/csammis/BotwController/platform"
	"github.com/csammis/BotwController/touch"
)

// touchStub confirms a touch instantly, or fails with err.
type touchStub struct {
	calls int
	err   error
}

func (s *touchStub) Wait(ctx context.Context) error {
	s.calls++
	return s.err
}

type transition struct{ from, to State }

func newTestSequencer(cfg Config) (*Sequencer, *platform.SimStrip, *platform.SimClock) {
	strip := platform.NewSimStrip(platform.LEDCount)
	clk := platform.NewSimClock()
	return New(strip, &touchStub{}, clk, cfg), strip, clk
}

// driveCycle steps the machine from Inactive all the way around to
// Inactive, advancing the clock one tick whenever a fade is in progress.
func driveCycle(t *testing.T, q *Sequencer, clk *platform.SimClock) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if err := q.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if q.State() == Inactive && i > 0 {
			return
		}
		if q.State() == FadeOut || q.State() == FadeIn {
			clk.Advance(defaultFadeTick)
		}
	}
	t.Fatal("sequence did not come back around to Inactive")
}

func TestSequencerConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Brightness != 100 {
		t.Errorf("Brightness = %d, want 100", cfg.Brightness)
	}
	if cfg.Shrine != InternationalOrange {
		t.Errorf("Shrine = %v, want %v", cfg.Shrine, InternationalOrange)
	}
	if cfg.OrangeHold != time.Second || cfg.BetweenHold != 250*time.Millisecond || cfg.BlueHold != 5*time.Second {
		t.Errorf("holds = %v/%v/%v, want 1s/250ms/5s", cfg.OrangeHold, cfg.BetweenHold, cfg.BlueHold)
	}
	if cfg.FadeTick != 20*time.Millisecond {
		t.Errorf("FadeTick = %v, want 20ms", cfg.FadeTick)
	}
	if cfg.FadeOutBy != 20 || cfg.FadeInStep != 20 {
		t.Errorf("fade steps = %d/%d, want 20/20", cfg.FadeOutBy, cfg.FadeInStep)
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{
		Inactive:               "inactive",
		OrangeSet:              "orange-set",
		FadeOut:                "fade-out",
		BetweenFades:           "between-fades",
		FadeIn:                 "fade-in",
		BlueSet:                "blue-set",
		IdleUntilTouchFinished: "idle-until-touch-finished",
		State(99):              "unknown",
	}
	for s, want := range names {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", uint8(s), got, want)
		}
	}
}

func TestSequenceCycleOrder(t *testing.T) {
	var got []transition
	q, _, clk := newTestSequencer(Config{
		Trace: func(from, to State) { got = append(got, transition{from, to}) },
	})
	q.Reset()
	driveCycle(t, q, clk)

	want := []transition{
		{Inactive, OrangeSet},
		{OrangeSet, FadeOut},
		{FadeOut, BetweenFades},
		{BetweenFades, FadeIn},
		{FadeIn, BlueSet},
		{BlueSet, IdleUntilTouchFinished},
		{IdleUntilTouchFinished, Inactive},
	}
	if !slices.Equal(got, want) {
		t.Errorf("transitions = %v, want %v", got, want)
	}
}

func TestSequenceHolds(t *testing.T) {
	q, _, clk := newTestSequencer(Config{})
	q.Reset()
	driveCycle(t, q, clk)

	want := []time.Duration{time.Second, 250 * time.Millisecond, 5 * time.Second}
	if got := clk.Sleeps(); !slices.Equal(got, want) {
		t.Errorf("holds = %v, want %v", got, want)
	}
}

func TestSequenceFrames(t *testing.T) {
	q, strip, clk := newTestSequencer(Config{})
	q.Reset()
	driveCycle(t, q, clk)

	frames := strip.Frames()
	// Reset black, shrine orange, 44 fade-out ticks, the between-fades
	// black, 12 fade-in ticks, the blue snap, and the final black.
	if len(frames) != 61 {
		t.Fatalf("got %d frames, want 61", len(frames))
	}
	if frames[0] != Black {
		t.Errorf("reset frame = %v, want black", frames[0])
	}
	if frames[1] != InternationalOrange {
		t.Errorf("touch frame = %v, want shrine orange", frames[1])
	}
	if want := (color.RGBA{R: 235, G: 78, B: 0, A: 255}); frames[2] != want {
		t.Errorf("first fade frame = %v, want %v", frames[2], want)
	}
	if want := (color.RGBA{R: 1, A: 255}); frames[44] != want {
		t.Errorf("penultimate fade frame = %v, want %v", frames[44], want)
	}
	if frames[45] != Black {
		t.Errorf("last fade-out frame = %v, want black", frames[45])
	}
	if frames[46] != Black {
		t.Errorf("between-fades frame = %v, want black", frames[46])
	}
	if want := (color.RGBA{B: 20, A: 255}); frames[47] != want {
		t.Errorf("first fade-in frame = %v, want %v", frames[47], want)
	}
	if want := (color.RGBA{B: 240, A: 255}); frames[58] != want {
		t.Errorf("last ramp frame = %v, want %v", frames[58], want)
	}
	if frames[59] != Blue {
		t.Errorf("snap frame = %v, want blue", frames[59])
	}
	if frames[60] != Black {
		t.Errorf("final frame = %v, want black", frames[60])
	}
	if got := strip.Brightness(); got != 100 {
		t.Errorf("brightness = %d, want 100", got)
	}
}

func TestFadeTickGateSkipsNoFrames(t *testing.T) {
	q, strip, clk := newTestSequencer(Config{})
	q.Reset()

	// Walk to FadeOut, then stall ten periods. Only one frame may land:
	// the fade runs late, it never jumps ahead.
	ctx := context.Background()
	if err := q.Step(ctx); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if err := q.Step(ctx); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if q.State() != FadeOut {
		t.Fatalf("state = %v, want fade-out", q.State())
	}

	before := strip.Shows()
	clk.Advance(200 * time.Millisecond)
	for i := 0; i < 5; i++ {
		if err := q.Step(ctx); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if got := strip.Shows() - before; got != 1 {
		t.Errorf("frames after a stall = %d, want 1", got)
	}
}

func TestRunPropagatesTouchError(t *testing.T) {
	sentinel := errors.New("sensing line unavailable")
	strip := platform.NewSimStrip(platform.LEDCount)
	clk := platform.NewSimClock()
	q := New(strip, &touchStub{err: sentinel}, clk, Config{})
	q.Reset()

	if err := q.Run(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("Run = %v, want the touch error", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	q, _, _ := newTestSequencer(Config{})
	q.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestEndToEndTouchToBlue(t *testing.T) {
	line := platform.NewSimTouchLine()
	line.QueueTouches(5)
	drive, sense := line.Pins()
	clk := platform.NewSimClock()
	sensor := touch.New(drive, sense, clk, func(f func()) { f() }, touch.Config{})
	strip := platform.NewSimStrip(platform.LEDCount)

	var visited []State
	q := New(strip, sensor, clk, Config{
		Trace: func(_, to State) { visited = append(visited, to) },
	})
	q.Reset()
	driveCycle(t, q, clk)

	// Five consecutive hits confirm the touch with nothing to spare.
	if got := line.Cycles(); got != 5 {
		t.Errorf("measurements taken = %d, want 5", got)
	}
	want := []State{OrangeSet, FadeOut, BetweenFades, FadeIn, BlueSet, IdleUntilTouchFinished, Inactive}
	if !slices.Equal(visited, want) {
		t.Errorf("visited = %v, want %v", visited, want)
	}
	if got := strip.LastFrame(); got != Black {
		t.Errorf("resting frame = %v, want black", got)
	}
	holds := clk.Sleeps()
	if !slices.Equal(holds, []time.Duration{time.Second, 250 * time.Millisecond, 5 * time.Second}) {
		t.Errorf("holds = %v", holds)
	}
}
