// Package timer provides an implementation of the Game Boy
// timer. The timer counter (TIMA) is driven by a falling edge
// of one bit of the internal 16-bit divider, selected and gated
// by the TAC register.
package timer

import (
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
)

// bits maps TAC bits 0-1 to the divider bit that clocks TIMA.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is a timer controller. It advances the divider on
// every M-cycle and requests the timer interrupt when TIMA
// overflows.
type Controller struct {
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	lastBit bool

	irq *interrupts.Service
}

// NewController returns a new timer controller that requests
// interrupts through irq.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// TickM ticks the timer controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) TickM() {
	for i := 0; i < 4; i++ {
		c.div++
		c.edge()
	}
}

// edge increments TIMA if the selected divider bit, gated by
// the enable bit, went from high to low.
func (c *Controller) edge() {
	bit := c.tac&types.Bit2 != 0 && c.div&bits[c.tac&0b11] != 0
	if c.lastBit && !bit {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
	c.lastBit = bit
}

// Divider returns the full 16-bit internal divider.
func (c *Controller) Divider() uint16 {
	return c.div
}

// Read returns the value of the timer register at address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write writes value to the timer register at address. Any
// write to DIV resets the whole divider, which may itself clock
// TIMA when the selected bit was high.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.div = 0
		c.edge()
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0x07
		c.edge()
	}
}
