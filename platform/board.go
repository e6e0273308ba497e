// Package platform wires the fixture onto a concrete target: real RP2
// pins, the WS2812 ring and the interrupt mask on MCU builds, scripted
// stand-ins everywhere else. Core packages only ever see the hal
// contracts.
package platform

// Fixture wiring (Pico GP numbers) and ring geometry. The host fakes
// reuse the same numbers so logs read identically on both targets.
const (
	LEDCount = 5

	LEDDataPin    = 12
	TouchDrivePin = 14
	TouchSensePin = 15

	// Logic-analyzer probes, wired only under the touchdebug tag.
	ProbeFramePin = 16
	ProbePhasePin = 17
)
