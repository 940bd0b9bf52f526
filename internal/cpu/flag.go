package cpu

// Flag is the bit index of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flag returns true if the given flag is set.
func (r *Registers) Flag(flag Flag) bool {
	return r.F&(1<<flag) != 0
}

// SetFlag sets or clears the given flag. Only the upper nibble
// of F is ever written.
func (r *Registers) SetFlag(flag Flag, value bool) {
	if value {
		r.F |= 1 << flag
	} else {
		r.F &^= 1 << flag
	}
	r.F &= 0xF0
}

// setFlags replaces all four flags at once.
func (r *Registers) setFlags(zero, subtract, halfCarry, carry bool) {
	r.F = 0
	if zero {
		r.F |= 1 << FlagZero
	}
	if subtract {
		r.F |= 1 << FlagSubtract
	}
	if halfCarry {
		r.F |= 1 << FlagHalfCarry
	}
	if carry {
		r.F |= 1 << FlagCarry
	}
}

// carryIn returns 1 if the carry flag is set, 0 otherwise.
func (r *Registers) carryIn() uint8 {
	if r.Flag(FlagCarry) {
		return 1
	}
	return 0
}
