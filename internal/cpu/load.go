package cpu

import "fmt"

// pairNames are the names of the 2-bit register pair index used
// by 16-bit loads and arithmetic. The stack instructions replace
// SP with AF.
var (
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
)

// pair returns the value of the register pair at index.
func (c *CPU) pair(index uint8) uint16 {
	if index == 3 {
		return c.SP
	}
	return c.stackPair(index).Uint16()
}

// setPair sets the register pair at index.
func (c *CPU) setPair(index uint8, value uint16) {
	if index == 3 {
		c.SP = value
		return
	}
	c.stackPair(index).SetUint16(value)
}

// stackPair returns the register pair at index, as used by PUSH
// and POP.
func (c *CPU) stackPair(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return c.AF
}

// indirectHL returns HL, and then adjusts HL by delta.
func (c *CPU) indirectHL(delta int) uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(uint16(int(hl) + delta))
	return hl
}

// memoryCycles returns base, plus extra if either register index
// addresses memory.
func memoryCycles(base, extra uint8, indices ...uint8) uint8 {
	for _, i := range indices {
		if i == 6 {
			return base + extra
		}
	}
	return base
}

func generateLoadInstructions() {
	// 8-bit register to register, 0x76 is HALT
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			dst, src := dst, src
			DefineInstruction(0x40|dst<<3|src,
				fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]),
				memoryCycles(1, 1, dst, src),
				func(c *CPU) {
					c.writeRegister(dst, c.readRegister(src))
				})
		}
	}

	// 8-bit immediate
	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x06|r<<3, fmt.Sprintf("LD %s, d8", registerNames[r]), memoryCycles(2, 1, r), func(c *CPU) {
			c.writeRegister(r, c.readOperand())
		})
	}

	// 16-bit immediate
	for p := uint8(0); p < 4; p++ {
		p := p
		DefineInstruction(0x01|p<<4, fmt.Sprintf("LD %s, d16", pairNames[p]), 3, func(c *CPU) {
			c.setPair(p, c.readOperand16())
		})
	}

	// stack
	for p := uint8(0); p < 4; p++ {
		p := p
		DefineInstruction(0xC1|p<<4, fmt.Sprintf("POP %s", stackPairNames[p]), 3, func(c *CPU) {
			c.stackPair(p).SetUint16(c.pop())
		})
		DefineInstruction(0xC5|p<<4, fmt.Sprintf("PUSH %s", stackPairNames[p]), 4, func(c *CPU) {
			c.tickCycle()
			c.push(c.stackPair(p).Uint16())
		})
	}

	// A to and from memory addressed by a register pair
	indirect := []struct {
		store, load uint8
		operand     string
		address     func(*CPU) uint16
	}{
		{0x02, 0x0A, "(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
		{0x12, 0x1A, "(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
		{0x22, 0x2A, "(HL+)", func(c *CPU) uint16 { return c.indirectHL(1) }},
		{0x32, 0x3A, "(HL-)", func(c *CPU) uint16 { return c.indirectHL(-1) }},
	}
	for _, i := range indirect {
		address := i.address
		DefineInstruction(i.store, fmt.Sprintf("LD %s, A", i.operand), 2, func(c *CPU) {
			c.writeByte(address(c), c.A)
		})
		DefineInstruction(i.load, fmt.Sprintf("LD A, %s", i.operand), 2, func(c *CPU) {
			c.A = c.readByte(address(c))
		})
	}

	DefineInstruction(0xE0, "LDH (a8), A", 3, func(c *CPU) {
		c.writeByte(0xFF00|uint16(c.readOperand()), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 3, func(c *CPU) {
		c.A = c.readByte(0xFF00 | uint16(c.readOperand()))
	})
	DefineInstruction(0xE2, "LD (C), A", 2, func(c *CPU) {
		c.writeByte(0xFF00|uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", 2, func(c *CPU) {
		c.A = c.readByte(0xFF00 | uint16(c.C))
	})
	DefineInstruction(0xEA, "LD (a16), A", 4, func(c *CPU) {
		c.writeByte(c.readOperand16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", 4, func(c *CPU) {
		c.A = c.readByte(c.readOperand16())
	})
	DefineInstruction(0x08, "LD (a16), SP", 5, func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xF8, "LD HL, SP+e8", 3, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
		c.tickCycle()
	})
	DefineInstruction(0xF9, "LD SP, HL", 2, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tickCycle()
	})
}
