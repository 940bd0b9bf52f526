package gameboy

import (
	"io"

	"github.com/thelolagemann/dmg/internal/cpu"
	"github.com/thelolagemann/dmg/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger of the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
		gb.MMU.Log = log
		gb.IO.Log = log
	}
}

// WithTracer attaches a tracer to the CPU.
func WithTracer(t cpu.Tracer) Opt {
	return func(gb *GameBoy) {
		gb.CPU.Tracer = t
	}
}

// WithMaxCycles stops Run after n machine cycles. Zero disables
// the limit.
func WithMaxCycles(n uint64) Opt {
	return func(gb *GameBoy) {
		gb.maxCycles = n
	}
}

// WithHaltBug enables or disables emulation of the HALT bug.
func WithHaltBug(enabled bool) Opt {
	return func(gb *GameBoy) {
		gb.CPU.HaltBug = enabled
	}
}

// WithSerialWriter copies every byte sent over the serial port
// to w.
func WithSerialWriter(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.IO.AttachSerial(w)
	}
}
