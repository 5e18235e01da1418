// Package console writes boot diagnostics to a serial port.
package console

import (
	"io"

	"tinygo.org/x/drivers"

	"clocktree-go/clock"
	"clocktree-go/errcode"
	"clocktree-go/x/fmtx"
	"clocktree-go/x/mathx"
)

const opBRR = "console.brr"

// BRR returns the USART_BRR value for baud at pclk with 16x oversampling:
// mantissa in bits 15:4 and the sixteenths in 3:0. That packing is just
// pclk/baud rounded to nearest.
func BRR(pclk, baud uint32) (uint32, error) {
	if baud == 0 {
		return 0, errcode.Wrap(errcode.InvalidParams, opBRR, "baud 0")
	}
	div := mathx.RoundDiv(pclk, baud)
	if div < 16 || div > 0xFFFF {
		return 0, errcode.Wrap(errcode.InvalidParams, opBRR, "baud out of range for pclk")
	}
	return div, nil
}

// Baud returns the rate a BRR value actually produces at pclk.
func Baud(pclk, brr uint32) uint32 {
	return mathx.DivOrZero(pclk, brr)
}

// Console prints over a UART. The zero value discards output.
type Console struct {
	w io.Writer
}

// New returns a Console writing to u.
func New(u drivers.UART) *Console {
	return &Console{w: u}
}

func (c *Console) out() io.Writer {
	if c == nil || c.w == nil {
		return io.Discard
	}
	return c.w
}

// Print writes msg verbatim.
func (c *Console) Print(msg string) error {
	_, err := io.WriteString(c.out(), msg)
	return err
}

// Printf formats through x/fmtx.
func (c *Console) Printf(format string, a ...any) error {
	_, err := fmtx.Fprintf(c.out(), format, a...)
	return err
}

// Report prints every derived frequency, one per line.
func (c *Console) Report(s clock.Speeds) error {
	for _, l := range []struct {
		name string
		hz   uint32
	}{
		{"sysclk", s.SysClk},
		{"hclk", s.HCLK},
		{"pclk1", s.PCLK1},
		{"pclk2", s.PCLK2},
		{"tim1clk", s.Tim1Clk},
		{"tim2clk", s.Tim2Clk},
		{"systick", s.SysTickClk},
		{"pll48", s.PLLAux},
	} {
		if err := c.Printf("%-8s %10d Hz\r\n", l.name, l.hz); err != nil {
			return err
		}
	}
	return nil
}

// Step logs a sequencer step. Suitable as clock.Sequencer.Trace.
func (c *Console) Step(s clock.Step) {
	c.Printf("clock: %s\r\n", s.String())
}

// Fail prints err with its code.
func (c *Console) Fail(err error) {
	c.Printf("Error: %s (%s)\r\n", err.Error(), string(errcode.Of(err)))
}
