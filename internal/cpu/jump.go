package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmg/pkg/utils"
)

// conditionNames are the names of the 2-bit condition codes.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition evaluates the condition code cc.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 0b11 {
	case 0:
		return !c.Flag(FlagZero)
	case 1:
		return c.Flag(FlagZero)
	case 2:
		return !c.Flag(FlagCarry)
	default:
		return c.Flag(FlagCarry)
	}
}

// push pushes value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop pops a value from the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

// jumpRelative reads a signed displacement and adds it to PC
// when taken.
func (c *CPU) jumpRelative(taken bool) {
	e := int8(c.readOperand())
	if taken {
		c.PC = uint16(int32(c.PC) + int32(e))
		c.tickCycle()
	}
}

// jumpAbsolute reads a 16-bit address and jumps to it when taken.
func (c *CPU) jumpAbsolute(taken bool) {
	address := c.readOperand16()
	if taken {
		c.PC = address
		c.tickCycle()
	}
}

// call reads a 16-bit address, and when taken pushes the address
// of the next instruction and jumps to it.
func (c *CPU) call(taken bool) {
	address := c.readOperand16()
	if taken {
		c.tickCycle()
		c.push(c.PC)
		c.PC = address
	}
}

// ret pops PC from the stack.
func (c *CPU) ret() {
	c.PC = c.pop()
	c.tickCycle()
}

// retConditional spends a cycle evaluating the condition, then
// returns when taken.
func (c *CPU) retConditional(taken bool) {
	c.tickCycle()
	if taken {
		c.ret()
	}
}

// rst pushes PC and jumps to the fixed vector.
func (c *CPU) rst(vector uint16) {
	c.tickCycle()
	c.push(c.PC)
	c.PC = vector
}

func generateJumpInstructions() {
	DefineInstruction(0x18, "JR e8", 3, func(c *CPU) {
		c.jumpRelative(true)
	})
	DefineInstruction(0xC3, "JP a16", 4, func(c *CPU) {
		c.jumpAbsolute(true)
	})
	DefineInstruction(0xE9, "JP HL", 1, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0xCD, "CALL a16", 6, func(c *CPU) {
		c.call(true)
	})
	DefineInstruction(0xC9, "RET", 4, func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", 4, func(c *CPU) {
		c.ret()
		c.ime = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		DefineBranch(0x20|cc<<3, fmt.Sprintf("JR %s, e8", name), 2, 3, func(c *CPU) {
			c.jumpRelative(c.condition(cc))
		})
		DefineBranch(0xC2|cc<<3, fmt.Sprintf("JP %s, a16", name), 3, 4, func(c *CPU) {
			c.jumpAbsolute(c.condition(cc))
		})
		DefineBranch(0xC4|cc<<3, fmt.Sprintf("CALL %s, a16", name), 3, 6, func(c *CPU) {
			c.call(c.condition(cc))
		})
		DefineBranch(0xC0|cc<<3, fmt.Sprintf("RET %s", name), 2, 5, func(c *CPU) {
			c.retConditional(c.condition(cc))
		})
	}

	for v := uint8(0); v < 8; v++ {
		vector := uint16(v) << 3
		DefineInstruction(0xC7|v<<3, fmt.Sprintf("RST %02XH", vector), 4, func(c *CPU) {
			c.rst(vector)
		})
	}
}
