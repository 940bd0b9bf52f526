package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmg/internal/interrupts"
)

// testBus is a flat 64kB memory.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(address uint16) uint8 {
	return b.mem[address]
}

func (b *testBus) Write(address uint16, value uint8) {
	b.mem[address] = value
}

// newTestCPU returns a CPU with program loaded at 0xC000.
func newTestCPU(program ...uint8) (*CPU, *testBus, *interrupts.Service) {
	bus := &testBus{}
	irq := interrupts.NewService()
	c := NewCPU(bus, irq)
	c.PC = 0xC000
	copy(bus.mem[0xC000:], program)

	return c, bus, irq
}

// step executes a single step, failing the test on a fault.
func step(t *testing.T, c *CPU) uint8 {
	t.Helper()
	ticks, err := c.Step()
	require.NoError(t, err)
	return ticks
}

type countingTicker struct {
	ticks int
}

func (t *countingTicker) TickM() {
	t.ticks++
}

type recordingTracer struct {
	opcodes []uint8
	names   []string
	regs    []Snapshot
}

func (r *recordingTracer) Trace(opcode uint8, name string, regs Snapshot) {
	r.opcodes = append(r.opcodes, opcode)
	r.names = append(r.names, name)
	r.regs = append(r.regs, regs)
}

func TestCPU_PostBoot(t *testing.T) {
	c := NewCPU(&testBus{}, interrupts.NewService())

	assert.Equal(t, uint16(0x01B0), c.AF.Uint16())
	assert.Equal(t, uint16(0x0013), c.BC.Uint16())
	assert.Equal(t, uint16(0x00D8), c.DE.Uint16())
	assert.Equal(t, uint16(0x014D), c.HL.Uint16())
	assert.Equal(t, uint16(0xFFFE), c.SP)
	assert.Equal(t, uint16(0x0100), c.PC)
	assert.Equal(t, StateRunning, c.State())
	assert.False(t, c.IME())
}

func TestCPU_Tickers(t *testing.T) {
	bus := &testBus{}
	ticker := &countingTicker{}
	c := NewCPU(bus, interrupts.NewService(), ticker)
	c.PC = 0xC000
	// LD BC, d16; PUSH BC; NOP
	copy(bus.mem[0xC000:], []uint8{0x01, 0x34, 0x12, 0xC5, 0x00})

	assert.Equal(t, uint8(3), step(t, c))
	assert.Equal(t, uint8(4), step(t, c))
	assert.Equal(t, uint8(1), step(t, c))
	assert.Equal(t, 8, ticker.ticks)
	assert.Equal(t, uint64(8), c.Cycles())
}

func TestCPU_Tracer(t *testing.T) {
	program := []uint8{0x3E, 0x42, 0xCB, 0x37, 0x04}

	traced, _, _ := newTestCPU(program...)
	tracer := &recordingTracer{}
	traced.Tracer = tracer
	plain, _, _ := newTestCPU(program...)

	for i := 0; i < 3; i++ {
		assert.Equal(t, step(t, plain), step(t, traced))
	}

	assert.Equal(t, plain.Snapshot(), traced.Snapshot())
	assert.Equal(t, plain.Cycles(), traced.Cycles())
	assert.Equal(t, []uint8{0x3E, 0xCB, 0x04}, tracer.opcodes)
	assert.Equal(t, []string{"LD A, d8", "SWAP A", "INC B"}, tracer.names)
	assert.Equal(t, uint16(0xC000), tracer.regs[0].PC)
	assert.Equal(t, uint16(0xC002), tracer.regs[1].PC)
	assert.Equal(t, uint8(0x42), tracer.regs[1].A)
}

func TestCPU_InterruptDispatch(t *testing.T) {
	c, bus, irq := newTestCPU()
	c.ime = true
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)
	c.PC = 0x1000
	c.SP = 0xFFFE

	c.HandleInterrupts()

	assert.Equal(t, uint8(0x10), bus.mem[0xFFFD])
	assert.Equal(t, uint8(0x00), bus.mem[0xFFFC])
	assert.Equal(t, uint8(0x00), irq.Flag&0x01)
	assert.Equal(t, uint16(0x0040), c.PC)
	assert.False(t, c.IME())
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint64(5), c.Cycles())
}

func TestCPU_InterruptPriority(t *testing.T) {
	c, _, irq := newTestCPU()
	irq.WriteEnable(0x1F)
	irq.WriteFlag(0x14)

	c.ime = true
	c.HandleInterrupts()
	assert.Equal(t, uint16(0x0050), c.PC)
	assert.Equal(t, uint8(0x10), irq.Flag)

	// only one interrupt is serviced per invocation
	c.ime = true
	c.HandleInterrupts()
	assert.Equal(t, uint16(0x0060), c.PC)
	assert.Equal(t, uint8(0x00), irq.Flag)
}

func TestCPU_InterruptDisabled(t *testing.T) {
	c, _, irq := newTestCPU()
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	c.HandleInterrupts()
	assert.Equal(t, uint16(0xC000), c.PC)
	assert.Equal(t, uint8(0x01), irq.Flag)
	assert.Zero(t, c.Cycles())
}

func TestCPU_HaltWake(t *testing.T) {
	c, _, irq := newTestCPU()
	c.state = StateHalted
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	c.HandleInterrupts()

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, uint16(0xC000), c.PC)
	assert.False(t, c.IME())
	assert.Equal(t, uint8(0x01), irq.Flag)
}

func TestCPU_Halt(t *testing.T) {
	c, _, irq := newTestCPU(0x76, 0x3C)
	c.ime = true
	irq.WriteEnable(0x04)

	assert.Equal(t, uint8(1), step(t, c))
	assert.Equal(t, StateHalted, c.State())

	// halted steps idle for a single cycle
	for i := 0; i < 10; i++ {
		assert.Equal(t, uint8(1), step(t, c))
	}
	assert.Equal(t, uint16(0xC001), c.PC)

	irq.Request(interrupts.TimerFlag)
	assert.Equal(t, uint8(6), step(t, c))
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, uint16(0x0050), c.PC)
}

func TestCPU_HaltBug(t *testing.T) {
	// HALT; INC A; NOP
	c, _, irq := newTestCPU(0x76, 0x3C, 0x00)
	c.A = 0
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, uint16(0xC001), c.PC)

	step(t, c)
	assert.Equal(t, uint16(0xC001), c.PC, "PC should not increment")
	step(t, c)
	assert.Equal(t, uint16(0xC002), c.PC)
	assert.Equal(t, uint8(2), c.A)
}

func TestCPU_HaltBugAfterEI(t *testing.T) {
	// EI; HALT; NOP
	c, bus, irq := newTestCPU(0xFB, 0x76, 0x00)
	c.SP = 0xD000
	c.B = 0
	// INC B; STOP
	copy(bus.mem[0x0040:], []uint8{0x04, 0x10, 0x00})
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	step(t, c)
	assert.Equal(t, uint16(0x0040), c.PC)
	// returns to the HALT
	assert.Equal(t, uint8(0xC0), bus.mem[0xCFFF])
	assert.Equal(t, uint8(0x01), bus.mem[0xCFFE])

	step(t, c)
	assert.Equal(t, uint16(0x0041), c.PC)
	step(t, c)
	assert.Equal(t, uint8(1), c.B, "handler should run once")
	assert.Equal(t, StateStopped, c.State())
}

func TestCPU_HaltBugDisabled(t *testing.T) {
	c, _, irq := newTestCPU(0x76, 0x3C, 0x00)
	c.HaltBug = false
	c.A = 0
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	assert.Equal(t, StateRunning, c.State())
	step(t, c)
	step(t, c)
	assert.Equal(t, uint16(0xC003), c.PC)
	assert.Equal(t, uint8(1), c.A)
}

func TestCPU_EIDelay(t *testing.T) {
	// EI; NOP; NOP
	c, bus, irq := newTestCPU(0xFB, 0x00, 0x00)
	c.SP = 0xD000
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	assert.False(t, c.IME(), "IME should not be set until after the next instruction")
	assert.Equal(t, uint16(0xC001), c.PC)

	step(t, c)
	assert.Equal(t, uint16(0x0040), c.PC)
	assert.Equal(t, uint8(0xC0), bus.mem[0xCFFF])
	assert.Equal(t, uint8(0x02), bus.mem[0xCFFE])
}

func TestCPU_EIThenDI(t *testing.T) {
	c, _, irq := newTestCPU(0xFB, 0xF3, 0x00)
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	step(t, c)
	step(t, c)
	assert.False(t, c.IME())
	assert.Equal(t, uint16(0xC003), c.PC)
}

func TestCPU_DI(t *testing.T) {
	c, _, _ := newTestCPU(0xF3)
	c.ime = true

	step(t, c)
	assert.False(t, c.IME())
}

func TestCPU_Stop(t *testing.T) {
	c, _, _ := newTestCPU(0x10, 0x00, 0x3C)

	assert.Equal(t, uint8(1), step(t, c))
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, uint16(0xC002), c.PC)

	// stopped is terminal
	assert.Equal(t, uint8(0), step(t, c))
	assert.Equal(t, uint16(0xC002), c.PC)
}

func TestCPU_IllegalOpcode(t *testing.T) {
	for _, opcode := range illegalOpcodes {
		c, _, _ := newTestCPU(0x00, opcode)

		step(t, c)
		_, err := c.Step()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIllegalOpcode), "opcode %02X", opcode)

		var fault *Fault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, uint16(0xC001), fault.PC)
		assert.Equal(t, opcode, fault.Opcode)

		var illegal *IllegalOpcodeError
		require.True(t, errors.As(err, &illegal))
		assert.Equal(t, uint16(0xC001), illegal.PC)
		assert.Equal(t, StateStopped, c.State())
	}
}

var errBus = errors.New("bus failure")

// faultBus fails every read from 0xD000.
type faultBus struct {
	testBus
}

func (b *faultBus) Read(address uint16) uint8 {
	if address == 0xD000 {
		panic(errBus)
	}
	return b.testBus.Read(address)
}

func TestCPU_BusFault(t *testing.T) {
	bus := &faultBus{}
	c := NewCPU(bus, interrupts.NewService())
	c.PC = 0xC000
	// LD A, (a16)
	copy(bus.mem[0xC000:], []uint8{0xFA, 0x00, 0xD0})

	_, err := c.Step()
	assert.ErrorIs(t, err, errBus)
	assert.Equal(t, StateStopped, c.State())
}

// stackFaultBus fails every write to the stack page at 0xDF00.
type stackFaultBus struct {
	testBus
}

func (b *stackFaultBus) Write(address uint16, value uint8) {
	if address&0xFF00 == 0xDF00 {
		panic(errBus)
	}
	b.testBus.Write(address, value)
}

func TestCPU_DispatchFault(t *testing.T) {
	bus := &stackFaultBus{}
	irq := interrupts.NewService()
	c := NewCPU(bus, irq)
	c.PC = 0xC000
	c.SP = 0xE000
	// EI; NOP; NOP
	copy(bus.mem[0xC000:], []uint8{0xFB, 0x00, 0x00})
	irq.WriteEnable(0x01)
	irq.WriteFlag(0x01)

	step(t, c)
	_, err := c.Step()
	require.ErrorIs(t, err, errBus)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0xC002), fault.PC)
	assert.Equal(t, StateStopped, c.State())
}

type panicBus struct {
	testBus
}

func (b *panicBus) Read(uint16) uint8 {
	panic("not an error")
}

func TestCPU_NonErrorPanic(t *testing.T) {
	c := NewCPU(&panicBus{}, interrupts.NewService())
	assert.Panics(t, func() { _, _ = c.Step() })
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "halted", StateHalted.String())
	assert.Equal(t, "stopped", StateStopped.String())
}
