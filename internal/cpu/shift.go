package cpu

// shiftLeftArithmetic shifts value left into the carry flag, bit
// 0 is reset.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(value uint8) uint8 {
	result := value << 1
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts value right into the carry flag,
// bit 7 is unchanged.
func (c *CPU) shiftRightArithmetic(value uint8) uint8 {
	result := value>>1 | value&0x80
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// shiftRightLogical shifts value right into the carry flag, bit
// 7 is reset.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	result := value >> 1
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// swap swaps the upper and lower nibbles of value.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of value. The carry flag is unchanged.
//
//	Z - Set if bit b of value is 0.
//	N - Reset.
//	H - Set.
func (c *CPU) testBit(b uint8, value uint8) {
	c.SetFlag(FlagZero, value&(1<<b) == 0)
	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, true)
}
