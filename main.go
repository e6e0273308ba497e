package main

import (
	"context"
	"time"

	"github.com/csammis/BotwController/platform"
	"github.com/csammis/BotwController/sequence"
	"github.com/csammis/BotwController/touch"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("Info: shrine controller boot")

	b := platform.NewBoard()

	sensor := touch.New(b.Drive, b.Sense, b.Clock, b.Critical, touch.Config{})
	if b.ProbeFrame != nil {
		sensor.SetProbes(touch.Probes{Frame: b.ProbeFrame, Phase: b.ProbePhase})
		println("Info: touch probes enabled")
	}

	seq := sequence.New(b.Strip, sensor, b.Clock, sequence.Config{
		Trace: func(from, to sequence.State) {
			println("Info: state", from.String(), "->", to.String())
		},
	})
	seq.Reset()
	println("Info: waiting for a touch")

	if err := seq.Run(context.Background()); err != nil {
		println("Error: sequencer stopped:", err.Error())
	}
}
