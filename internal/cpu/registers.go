package cpu

import "fmt"

// Register represents a single 8-bit register of the CPU.
type Register = uint8

// RegisterPair is a 16-bit view over two 8-bit registers. The
// value is composed on demand, so the pair can never drift from
// the registers it is made of.
type RegisterPair struct {
	High *Register
	Low  *Register

	mask uint8 // applied to the low register on write
}

// Uint16 returns the value of the RegisterPair as a uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair from a uint16.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.mask
}

// Registers holds the 8-bit registers of the CPU, and the 16-bit
// register pairs that are formed from them.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// newRegisters returns the registers with their post-boot values.
func newRegisters() *Registers {
	r := &Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
	}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, mask: 0xF0}
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, mask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, mask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, mask: 0xFF}

	return r
}

// registerNames are the operand names of the 3-bit register
// index used throughout the opcode space. Index 6 addresses
// memory at HL rather than a register.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerIndex returns a Register pointer for the given index.
func (r *Registers) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// Snapshot is a copy of every register, taken for trace output.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

// String formats the snapshot the way trace logs print it.
func (s Snapshot) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X PC: %04X SP: %04X",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.PC, s.SP)
}
