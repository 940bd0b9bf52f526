// Package cpu provides an implementation of the LR35902 CPU
// of the Game Boy. Instructions are decoded through two 256-entry
// tables (the primary set and the 0xCB prefixed set), every
// memory access and internal delay advances the attached
// peripherals by one machine cycle.
package cpu

import (
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
)

// State is the execution state of the CPU.
type State uint8

const (
	// StateRunning is the normal state, fetching and executing.
	StateRunning State = iota
	// StateHalted is entered by HALT. No instructions are fetched
	// until an enabled interrupt is pending.
	StateHalted
	// StateStopped is entered by STOP, or after a fault. It is
	// terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Bus is the memory bus that the CPU reads and writes through.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Tracer receives every decoded instruction before it executes.
// It must not modify the CPU.
type Tracer interface {
	Trace(opcode uint8, name string, regs Snapshot)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	*Registers

	// Tracer, if not nil, is handed every instruction as it is decoded.
	Tracer Tracer
	// HaltBug enables the HALT bug: halting with IME disabled and an
	// interrupt pending fails to increment PC on the next fetch.
	HaltBug bool

	bus     Bus
	irq     *interrupts.Service
	tickers []types.Ticker

	state          State
	ime            bool
	imeScheduled   bool
	haltBugPending bool
	cycles         uint64

	// the instruction being executed, for fault reporting
	currentPC     uint16
	currentOpcode uint8
}

// NewCPU creates a new CPU with its registers set to their
// post-boot values. The tickers are advanced once for every
// machine cycle the CPU consumes.
func NewCPU(bus Bus, irq *interrupts.Service, tickers ...types.Ticker) *CPU {
	return &CPU{
		PC:        0x0100,
		SP:        0xFFFE,
		Registers: newRegisters(),
		HaltBug:   true,
		bus:       bus,
		irq:       irq,
		tickers:   tickers,
	}
}

// State returns the current execution state.
func (c *CPU) State() State {
	return c.state
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// Cycles returns the number of machine cycles consumed since
// the CPU was created.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Snapshot returns a copy of the registers.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C,
		D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
	}
}

// Step runs the CPU for a single instruction, or a single idle
// machine cycle when halted, and then services interrupts. It
// returns the number of machine cycles consumed. A fatal error
// raised by the instruction or the bus is returned as a *Fault,
// after which the CPU is stopped.
func (c *CPU) Step() (ticks uint8, err error) {
	start := c.cycles
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			c.state = StateStopped
			err = &Fault{PC: c.currentPC, Opcode: c.currentOpcode, Err: e}
			ticks = uint8(c.cycles - start)
		}
	}()

	switch c.state {
	case StateStopped:
		return 0, nil
	case StateHalted:
		c.tickCycle()
	case StateRunning:
		// EI takes effect after the instruction that follows it
		enableIME := c.imeScheduled
		c.runInstruction()
		if enableIME && c.imeScheduled {
			c.ime = true
			c.imeScheduled = false
		}
	}

	c.HandleInterrupts()
	return uint8(c.cycles - start), nil
}

// runInstruction fetches, decodes and executes one instruction.
func (c *CPU) runInstruction() {
	c.currentPC = c.PC
	c.currentOpcode = c.fetch()

	instruction := c.decode(c.currentOpcode)
	if c.Tracer != nil {
		s := c.Snapshot()
		s.PC = c.currentPC
		c.Tracer.Trace(c.currentOpcode, instruction.name, s)
	}

	instruction.fn(c)
}

// decode returns the instruction for opcode, reading the second
// byte when the opcode is the 0xCB prefix.
func (c *CPU) decode(opcode uint8) Instruction {
	if opcode == 0xCB {
		return InstructionSetCB[c.readOperand()]
	}
	return InstructionSet[opcode]
}

// HandleInterrupts checks for pending interrupts. A pending,
// enabled interrupt always wakes a halted CPU, but is only
// dispatched when IME is set. At most one interrupt is
// dispatched per call, taking 5 machine cycles.
func (c *CPU) HandleInterrupts() {
	if c.state == StateStopped || !c.irq.HasInterrupts() {
		return
	}
	if c.state == StateHalted {
		c.state = StateRunning
	}
	if !c.ime {
		return
	}

	index, _ := c.irq.Pending()
	c.ime = false
	c.currentPC = c.PC

	// an interrupt dispatched straight after a bugged HALT
	// returns to the HALT
	returnPC := c.PC
	if c.haltBugPending {
		c.haltBugPending = false
		returnPC--
	}

	c.tickCycle()
	c.tickCycle()
	c.push(returnPC)
	c.PC = c.irq.Acknowledge(index)
	c.tickCycle()
}

// fetch reads the opcode at PC. Following the HALT bug, PC is
// not incremented.
func (c *CPU) fetch() uint8 {
	value := c.readByte(c.PC)
	if c.haltBugPending {
		c.haltBugPending = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two operands as a little-endian
// 16-bit value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return utils.BytesToUint16(high, low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tickCycle()
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tickCycle()
	c.bus.Write(addr, val)
}

// readRegister returns the register at index, reading memory at
// HL for index 6.
func (c *CPU) readRegister(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeRegister sets the register at index, writing memory at
// HL for index 6.
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == 6 {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// tickCycle advances the CPU and the peripherals by 1 M-cycle.
func (c *CPU) tickCycle() {
	c.cycles++
	for _, t := range c.tickers {
		t.TickM()
	}
}
