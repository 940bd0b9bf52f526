package cpu

// rotateLeft rotates value left, bit 7 moves to bit 0 and into
// the carry flag.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(value uint8) uint8 {
	result := value<<1 | value>>7
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// rotateRight rotates value right, bit 0 moves to bit 7 and into
// the carry flag.
func (c *CPU) rotateRight(value uint8) uint8 {
	result := value>>1 | value<<7
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates value left through the carry
// flag.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(value uint8) uint8 {
	result := value<<1 | c.carryIn()
	c.setFlags(result == 0, false, false, value&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates value right through the carry
// flag.
func (c *CPU) rotateRightThroughCarry(value uint8) uint8 {
	result := value>>1 | c.carryIn()<<7
	c.setFlags(result == 0, false, false, value&0x01 != 0)
	return result
}

// rotateAccumulator applies rotate to A. The accumulator forms
// always reset the zero flag.
func (c *CPU) rotateAccumulator(rotate func(*CPU, uint8) uint8) {
	c.A = rotate(c, c.A)
	c.SetFlag(FlagZero, false)
}
