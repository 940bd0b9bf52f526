package cpu

import "fmt"

// add adds b (and the carry flag if carry is true) to a, and
// sets the flags from the widened sum.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(a, b uint8, carry bool) uint8 {
	var cin uint8
	if carry {
		cin = c.carryIn()
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	result := uint8(sum)

	c.setFlags(result == 0, false, (a&0xF)+(b&0xF)+cin > 0xF, sum > 0xFF)
	return result
}

// sub subtracts b (and the carry flag if carry is true) from a.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(a, b uint8, carry bool) uint8 {
	var cin uint8
	if carry {
		cin = c.carryIn()
	}
	diff := int16(a) - int16(b) - int16(cin)
	result := uint8(diff)

	c.setFlags(result == 0, true, int16(a&0xF)-int16(b&0xF)-int16(cin) < 0, diff < 0)
	return result
}

// compare sets the flags as sub would, discarding the result.
func (c *CPU) compare(b uint8) {
	c.sub(c.A, b, false)
}

// and performs a bitwise AND on A.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(b uint8) {
	c.A &= b
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR on A.
func (c *CPU) or(b uint8) {
	c.A |= b
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR on A.
func (c *CPU) xor(b uint8) {
	c.A ^= b
	c.setFlags(c.A == 0, false, false, false)
}

// increment increments value, leaving the carry flag untouched.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
func (c *CPU) increment(value uint8) uint8 {
	result := value + 1
	c.SetFlag(FlagZero, result == 0)
	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, value&0xF == 0xF)
	return result
}

// decrement decrements value, leaving the carry flag untouched.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
func (c *CPU) decrement(value uint8) uint8 {
	result := value - 1
	c.SetFlag(FlagZero, result == 0)
	c.SetFlag(FlagSubtract, true)
	c.SetFlag(FlagHalfCarry, value&0xF == 0)
	return result
}

// addHL adds value to HL. Z is left untouched.
//
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(value)

	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.SetFlag(FlagCarry, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed displacement e. The
// carries are those of the unsigned addition of the low bytes.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	result := uint16(int32(c.SP) + int32(int8(e)))
	low := uint8(c.SP)

	c.setFlags(false, false, (low&0xF)+(e&0xF) > 0xF, uint16(low)+uint16(e) > 0xFF)
	return result
}

// daa adjusts A to binary-coded decimal after an addition or
// subtraction.
//
//	Z - Set if result is zero.
//	H - Reset.
//	C - Set or reset after addition, unchanged after subtraction.
func (c *CPU) daa() {
	if !c.Flag(FlagSubtract) {
		if c.Flag(FlagCarry) || c.A > 0x99 {
			c.A += 0x60
			c.SetFlag(FlagCarry, true)
		}
		if c.Flag(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else {
		if c.Flag(FlagCarry) {
			c.A -= 0x60
		}
		if c.Flag(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.SetFlag(FlagZero, c.A == 0)
	c.SetFlag(FlagHalfCarry, false)
}

// aluNames are the mnemonics of the 3-bit arithmetic operation
// index.
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// alu applies the arithmetic operation at index to A and value.
func (c *CPU) alu(index uint8, value uint8) {
	switch index {
	case 0:
		c.A = c.add(c.A, value, false)
	case 1:
		c.A = c.add(c.A, value, true)
	case 2:
		c.A = c.sub(c.A, value, false)
	case 3:
		c.A = c.sub(c.A, value, true)
	case 4:
		c.and(value)
	case 5:
		c.xor(value)
	case 6:
		c.or(value)
	case 7:
		c.compare(value)
	}
}

func generateALUInstructions() {
	for op := uint8(0); op < 8; op++ {
		op := op
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstruction(0x80|op<<3|r, fmt.Sprintf("%s %s", aluNames[op], registerNames[r]), memoryCycles(1, 1, r), func(c *CPU) {
				c.alu(op, c.readRegister(r))
			})
		}
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", aluNames[op]), 2, func(c *CPU) {
			c.alu(op, c.readOperand())
		})
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x04|r<<3, fmt.Sprintf("INC %s", registerNames[r]), memoryCycles(1, 2, r), func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
		})
		DefineInstruction(0x05|r<<3, fmt.Sprintf("DEC %s", registerNames[r]), memoryCycles(1, 2, r), func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
		})
	}

	for p := uint8(0); p < 4; p++ {
		p := p
		DefineInstruction(0x03|p<<4, fmt.Sprintf("INC %s", pairNames[p]), 2, func(c *CPU) {
			c.setPair(p, c.pair(p)+1)
			c.tickCycle()
		})
		DefineInstruction(0x0B|p<<4, fmt.Sprintf("DEC %s", pairNames[p]), 2, func(c *CPU) {
			c.setPair(p, c.pair(p)-1)
			c.tickCycle()
		})
		DefineInstruction(0x09|p<<4, fmt.Sprintf("ADD HL, %s", pairNames[p]), 2, func(c *CPU) {
			c.addHL(c.pair(p))
			c.tickCycle()
		})
	}

	DefineInstruction(0xE8, "ADD SP, e8", 4, func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
		c.tickCycle()
		c.tickCycle()
	})
}
