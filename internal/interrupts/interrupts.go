// Package interrupts provides the interrupt enable and interrupt
// flag registers, and the priority lookup used by the CPU when
// dispatching an interrupt.
package interrupts

import (
	"github.com/thelolagemann/dmg/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), which
	// is requested every time the PPU enters VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which is
	// requested by the LCD STAT register when certain
	// conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2), which
	// is requested when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3), which
	// is requested when a serial transfer is completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4).
	JoypadFlag = types.Bit4
)

// Vectors holds the fixed handler address for each interrupt
// source, indexed by bit. Lower index means higher priority.
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// Service holds the interrupt enable and interrupt flag registers.
// It is the single owner of both: the bus delegates 0xFFFF to
// Enable, and the I/O device delegates types.IF to Flag.
//
// When an interrupt is requested, the corresponding bit in the
// Flag register is set. When an interrupt is enabled, the
// corresponding bit in the Enable register is set. The master
// enable (IME) is not stored here, it belongs to the CPU.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// ReadFlag returns the IF register as seen by software, the
// upper 3 bits always read as set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag writes the IF register, only the lower 5 bits are used.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & 0x1F
}

// ReadEnable returns the IE register.
func (s *Service) ReadEnable() uint8 {
	return s.Enable
}

// WriteEnable writes the IE register.
func (s *Service) WriteEnable(v uint8) {
	s.Enable = v
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Pending returns the index of the highest priority interrupt
// that is both requested and enabled. ok is false when there
// is none.
func (s *Service) Pending() (index uint8, ok bool) {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0, false
	}
	for i := uint8(0); i < 5; i++ {
		if pending&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}

// Acknowledge clears the Flag bit of the given interrupt and
// returns its vector.
func (s *Service) Acknowledge(index uint8) uint16 {
	s.Flag &^= 1 << index
	return Vectors[index]
}
