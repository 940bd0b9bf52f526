package cpu

import "fmt"

// cbOperations are the rotate and shift operations selected by
// bits 3-5 of a 0x00 - 0x3F CB opcode.
var cbOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// generateCBInstructions fills the InstructionSetCB. The opcode
// is split into the operation (bits 6-7), the bit index or
// rotate operation (bits 3-5) and the register (bits 0-2).
func generateCBInstructions() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		y := opcode >> 3 & 0b111
		r := opcode & 0b111
		reg := registerNames[r]

		switch opcode >> 6 {
		case 0:
			op := cbOperations[y]
			DefineInstructionCB(opcode, fmt.Sprintf("%s %s", op.name, reg), memoryCycles(2, 2, r), func(c *CPU) {
				c.writeRegister(r, op.fn(c, c.readRegister(r)))
			})
		case 1:
			DefineInstructionCB(opcode, fmt.Sprintf("BIT %d, %s", y, reg), memoryCycles(2, 1, r), func(c *CPU) {
				c.testBit(y, c.readRegister(r))
			})
		case 2:
			DefineInstructionCB(opcode, fmt.Sprintf("RES %d, %s", y, reg), memoryCycles(2, 2, r), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)&^(1<<y))
			})
		case 3:
			DefineInstructionCB(opcode, fmt.Sprintf("SET %d, %s", y, reg), memoryCycles(2, 2, r), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)|1<<y)
			})
		}
	}
}
