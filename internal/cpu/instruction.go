package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a single entry of an instruction table.
type Instruction struct {
	name   string
	length uint8
	// cycles is the cost in M-cycles, and for conditional
	// instructions the cost when the condition does not hold.
	cycles uint8
	// branchCycles is the cost of a conditional instruction when
	// the condition holds. For every other instruction it equals
	// cycles.
	branchCycles uint8
	fn           func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the length of the instruction in bytes,
// including the opcode.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the cost of the instruction in M-cycles.
func (i Instruction) Cycles() uint8 { return i.cycles }

// BranchCycles returns the cost of the instruction in M-cycles
// when its condition holds.
func (i Instruction) BranchCycles() uint8 { return i.branchCycles }

// Conditional returns true if the cost of the instruction
// depends on a condition code.
func (i Instruction) Conditional() bool { return i.cycles != i.branchCycles }

var (
	// InstructionSet holds the first 256 instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the
// InstructionSet, with the provided opcode.
func DefineInstruction(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	DefineBranch(opcode, name, cycles, cycles, fn)
}

// DefineBranch defines a conditional instruction, costing cycles
// when the condition does not hold, and taken when it does.
func DefineBranch(opcode uint8, name string, cycles, taken uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:         name,
		length:       instructionLength(name),
		cycles:       cycles,
		branchCycles: taken,
		fn:           fn,
	}
}

// DefineInstructionCB defines the instruction in the
// InstructionSetCB, with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:         name,
		length:       2,
		cycles:       cycles,
		branchCycles: cycles,
		fn:           fn,
	}
}

// instructionLength derives the length of an instruction from
// the operand placeholders in its mnemonic.
func instructionLength(name string) uint8 {
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		return 3
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"),
		strings.Contains(name, "e8"), name == "STOP", name == "PREFIX CB":
		return 2
	}
	return 1
}

// illegalOpcodes have no instruction on the LR35902.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func illegalOpcode(c *CPU) {
	panic(&IllegalOpcodeError{Opcode: c.currentOpcode, PC: c.currentPC})
}

func init() {
	generateLoadInstructions()
	generateALUInstructions()
	generateJumpInstructions()
	generateCBInstructions()

	DefineInstruction(0x00, "NOP", 1, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 1, func(c *CPU) {
		// skip the padding byte
		c.PC++
		c.state = StateStopped
	})
	DefineInstruction(0x76, "HALT", 1, func(c *CPU) {
		if !c.ime && c.irq.HasInterrupts() {
			// the CPU does not halt, and fails to increment PC
			// on the next fetch
			c.haltBugPending = c.HaltBug
			return
		}
		c.state = StateHalted
	})
	DefineInstruction(0xF3, "DI", 1, func(c *CPU) {
		c.ime = false
		c.imeScheduled = false
	})
	DefineInstruction(0xFB, "EI", 1, func(c *CPU) {
		c.imeScheduled = true
	})
	// PREFIX CB only marks the prefix for naming and length, decode
	// resolves the prefixed instruction before execution.
	DefineInstruction(0xCB, "PREFIX CB", 0, func(c *CPU) {
		panic(&UndecodedPrefixError{PC: c.currentPC})
	})

	DefineInstruction(0x07, "RLCA", 1, func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateLeft)
	})
	DefineInstruction(0x0F, "RRCA", 1, func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateRight)
	})
	DefineInstruction(0x17, "RLA", 1, func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateLeftThroughCarry)
	})
	DefineInstruction(0x1F, "RRA", 1, func(c *CPU) {
		c.rotateAccumulator((*CPU).rotateRightThroughCarry)
	})
	DefineInstruction(0x27, "DAA", 1, func(c *CPU) {
		c.daa()
	})
	DefineInstruction(0x2F, "CPL", 1, func(c *CPU) {
		c.A = ^c.A
		c.SetFlag(FlagSubtract, true)
		c.SetFlag(FlagHalfCarry, true)
	})
	DefineInstruction(0x37, "SCF", 1, func(c *CPU) {
		c.SetFlag(FlagSubtract, false)
		c.SetFlag(FlagHalfCarry, false)
		c.SetFlag(FlagCarry, true)
	})
	DefineInstruction(0x3F, "CCF", 1, func(c *CPU) {
		c.SetFlag(FlagSubtract, false)
		c.SetFlag(FlagHalfCarry, false)
		c.SetFlag(FlagCarry, !c.Flag(FlagCarry))
	})

	for _, opcode := range illegalOpcodes {
		DefineInstruction(opcode, fmt.Sprintf("ILLEGAL_%02X", opcode), 1, illegalOpcode)
	}
}
