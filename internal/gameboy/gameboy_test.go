package gameboy

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/cpu"
	"github.com/thelolagemann/dmg/internal/trace"
	"github.com/thelolagemann/dmg/pkg/log"
)

// testROM returns a 32kB ROM with a valid header and program
// at the entry point (0x0100).
func testROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	copy(rom[0x0134:], "TEST")

	var x uint8
	for _, b := range rom[0x0134:0x014D] {
		x = x - b - 1
	}
	rom[0x014D] = x
	return rom
}

func newTestGameBoy(t *testing.T, rom []byte, opts ...Opt) *GameBoy {
	t.Helper()
	g, err := NewGameBoy(rom, opts...)
	require.NoError(t, err)
	return g
}

func TestGameBoy_Fibonacci(t *testing.T) {
	// a passing test writes the fibonacci sequence 3/5/8/13/21/34
	// to the registers B/C/D/E/H/L
	g := newTestGameBoy(t, testROM(
		0x06, 3, 0x0E, 5, 0x16, 8, 0x1E, 13, 0x26, 21, 0x2E, 34,
		0x10, 0x00,
	))

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, []uint8{3, 5, 8, 13, 21, 34}, []uint8{g.CPU.B, g.CPU.C, g.CPU.D, g.CPU.E, g.CPU.H, g.CPU.L})
	assert.Equal(t, cpu.StateStopped, g.CPU.State())
}

func TestGameBoy_Serial(t *testing.T) {
	var out bytes.Buffer
	g := newTestGameBoy(t, testROM(
		0x3E, 'O', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02,
		0x3E, 'K', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02,
		0x10, 0x00,
	), WithSerialWriter(&out))

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, "OK", out.String())
}

func TestGameBoy_TimerInterrupt(t *testing.T) {
	rom := testROM(
		0x3E, 0x04, 0xE0, 0xFF, // IE = timer
		0xFB,                   // EI
		0x3E, 0x05, 0xE0, 0x07, // TAC = enabled, bit 3
		0x3E, 0xFF, 0xE0, 0x05, // TIMA = 0xFF
		0x76, 0x00, 0x18, 0xFD, // HALT; NOP; JR -3
	)
	// timer handler
	copy(rom[0x0050:], []uint8{0x06, 0x42, 0x10, 0x00})

	g := newTestGameBoy(t, rom, WithMaxCycles(10000))
	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, uint8(0x42), g.CPU.B)
	assert.False(t, g.CPU.IME())
}

func TestGameBoy_CycleLimit(t *testing.T) {
	g := newTestGameBoy(t, testROM(0x18, 0xFE), WithMaxCycles(300))

	err := g.Run(context.Background())
	assert.ErrorIs(t, err, ErrCycleLimit)
	assert.GreaterOrEqual(t, g.CPU.Cycles(), uint64(300))
}

func TestGameBoy_Cancel(t *testing.T) {
	g := newTestGameBoy(t, testROM(0x18, 0xFE))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Run(ctx), context.Canceled)
}

func TestGameBoy_IllegalOpcode(t *testing.T) {
	g := newTestGameBoy(t, testROM(0x00, 0xFC))

	err := g.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrIllegalOpcode))

	var fault *cpu.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x0101), fault.PC)
}

func TestGameBoy_Memory(t *testing.T) {
	// LD A, (0xFEA0); LD B, A; LD A, 0x99; LD (0x8000), A; LD (0xE000), A; LD A, (0xE000); STOP
	g := newTestGameBoy(t, testROM(
		0xFA, 0xA0, 0xFE, 0x47,
		0x3E, 0x99, 0xEA, 0x00, 0x80, 0xEA, 0x00, 0xE0, 0xFA, 0x00, 0xE0,
		0x10, 0x00,
	))

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, uint8(0xFF), g.CPU.B)
	assert.Equal(t, uint8(0x99), g.VRAM.Read(0x0000))
	assert.Equal(t, uint8(0x00), g.CPU.A)
}

func TestGameBoy_Tracer(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf)
	g := newTestGameBoy(t, testROM(0x00, 0x10, 0x00), WithTracer(w))

	require.NoError(t, g.Run(context.Background()))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0x00 NOP", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A: 01 F: B0"))
	assert.True(t, strings.HasSuffix(lines[1], "PC: 0100 SP: FFFE"))
	assert.Equal(t, "0x10 STOP", lines[2])
}

func TestGameBoy_Logger(t *testing.T) {
	var buf bytes.Buffer
	rom := testROM(0x10, 0x00)
	rom[0x014D]++

	g := newTestGameBoy(t, rom, WithLogger(log.NewWithLevel("info", &buf)))
	require.NoError(t, g.Run(context.Background()))

	assert.Contains(t, buf.String(), "loaded TEST")
	assert.Contains(t, buf.String(), "header checksum mismatch")
	assert.Contains(t, buf.String(), "stopped after")
}

func TestGameBoy_HaltBugOption(t *testing.T) {
	g := newTestGameBoy(t, testROM(), WithHaltBug(false))
	assert.False(t, g.CPU.HaltBug)
}

func TestNewGameBoy_BadROM(t *testing.T) {
	_, err := NewGameBoy(make([]byte, 0x100))
	assert.ErrorIs(t, err, cartridge.ErrHeaderTooShort)
}
