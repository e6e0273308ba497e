package sequence

import "image/color"

// Colors that might look good as shrine lighting. InternationalOrange is
// the one on the fixture; the others are keepers from trying candidates
// on the actual LEDs.
var (
	InternationalOrange = color.RGBA{R: 0xff, G: 0x55, B: 0x00, A: 0xff}
	Orange              = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	HarvestGold         = color.RGBA{R: 0xcc, G: 0x88, B: 0x00, A: 0xff}
)

var (
	Blue  = color.RGBA{B: 0xff, A: 0xff}
	Black = color.RGBA{A: 0xff}
)
