//go:build rp2040

// cmd/touchcal/main.go
//
// Calibration console for the touch pad. Streams per-sample cycle totals
// over UART0 so a threshold can be picked while watching a finger land on
// the actual hardware.
//
//	t <counts>  try a classify threshold
//	s           toggle the sample stream
//	?           help

package main

import (
	"context"
	"image/color"
	"machine"
	"sync"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"github.com/csammis/BotwController/platform"
	"github.com/csammis/BotwController/sequence"
	"github.com/csammis/BotwController/touch"
	"github.com/csammis/BotwController/x/conv"
	"github.com/csammis/BotwController/x/mathx"
	"github.com/csammis/BotwController/x/strconvx"
)

const (
	baud   = 115200
	uartTX = 0 // GP0
	uartRX = 1 // GP1

	samplePause = 50 * time.Millisecond
)

func main() {
	// Give USB and the UART bridge a moment after reset.
	time.Sleep(2 * time.Second)

	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(uartTX),
		RX:       machine.Pin(uartRX),
	}); err != nil {
		println("Error: uart0 configure failed")
		return
	}

	b := platform.NewBoard()
	sensor := touch.New(b.Drive, b.Sense, b.Clock, b.Critical, touch.Config{})
	if b.ProbeFrame != nil {
		sensor.SetProbes(touch.Probes{Frame: b.ProbeFrame, Phase: b.ProbePhase})
	}
	cfg := sensor.Config()

	c := &console{
		u:         u,
		timeout:   cfg.SampleTimeout,
		threshold: cfg.Threshold(),
		stream:    true,
	}
	c.banner(cfg)
	go c.readLoop(context.Background())

	for {
		var total uint32
		complete := sensor.MeasureCycle(&total, cfg.SampleTimeout)
		c.sample(total, complete)
		time.Sleep(samplePause)
	}
}

type console struct {
	u       *uartx.UART
	timeout uint32

	mu        sync.Mutex
	threshold uint32
	stream    bool
}

func (c *console) banner(cfg touch.Config) {
	var hexbuf [8]byte
	c.writeln("")
	c.writeln("[cal] touch calibration console")
	c.writeln("[cal] drive=GP" + strconvx.Itoa(platform.TouchDrivePin) +
		" sense=GP" + strconvx.Itoa(platform.TouchSensePin))
	c.writeln("[cal] timeout=" + strconvx.Itoa(int(cfg.SampleTimeout)) +
		" threshold=" + strconvx.Itoa(int(c.threshold)))
	c.writeString("[cal] shrine color rgb=")
	_, _ = c.u.Write(conv.U32Hex(hexbuf[:], rgbWord(sequence.InternationalOrange)))
	c.writeln("")
	c.help()
}

func (c *console) help() {
	c.writeln("[cal] commands: t <counts> set threshold, s toggle stream, ? help")
}

func (c *console) sample(total uint32, complete bool) {
	c.mu.Lock()
	stream := c.stream
	threshold := c.threshold
	c.mu.Unlock()
	if !stream {
		return
	}

	var buf [20]byte
	c.writeString("total=")
	_, _ = c.u.Write(conv.Utoa(buf[:], uint64(total)))
	switch {
	case !complete:
		c.writeString(" timeout")
	case total < threshold:
		c.writeString(" touched")
	}
	c.writeln("")
}

func (c *console) readLoop(ctx context.Context) {
	buf := make([]byte, 64)
	line := make([]byte, 0, 64)
	for {
		n, err := c.u.RecvSomeContext(ctx, buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			switch b {
			case '\r':
			case '\n':
				c.handle(line)
				line = line[:0]
			default:
				if len(line) < cap(line) {
					line = append(line, b)
				}
			}
		}
	}
}

func (c *console) handle(line []byte) {
	f := fields(line)
	if len(f) == 0 {
		return
	}
	switch f[0] {
	case "t":
		if len(f) != 2 {
			c.writeln("usage: t <counts>")
			return
		}
		n, err := strconvx.Atoi(f[1])
		if err != nil {
			c.writeln("not a number: " + f[1])
			return
		}
		v := uint32(mathx.Clamp(n, 1, int(c.timeout)))
		c.mu.Lock()
		c.threshold = v
		c.mu.Unlock()
		c.writeln("threshold=" + strconvx.Itoa(int(v)))
	case "s":
		c.mu.Lock()
		c.stream = !c.stream
		on := c.stream
		c.mu.Unlock()
		if on {
			c.writeln("stream on")
		} else {
			c.writeln("stream off")
		}
	case "?":
		c.help()
	default:
		c.writeln("unknown command, ? for help")
	}
}

func (c *console) writeString(s string) {
	_, _ = c.u.Write([]byte(s))
}

func (c *console) writeln(s string) {
	c.writeString(s)
	c.writeString("\r\n")
}

// fields splits on runs of spaces and tabs.
func fields(line []byte) []string {
	var out []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		if j > i {
			out = append(out, string(line[i:j]))
		}
		i = j
	}
	return out
}

func rgbWord(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
