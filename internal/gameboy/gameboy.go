// Package gameboy assembles the components of a DMG Game Boy
// (cartridge, memory bus, peripherals and CPU) and runs it.
package gameboy

import (
	"context"
	"errors"

	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/cpu"
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/io"
	"github.com/thelolagemann/dmg/internal/mmu"
	"github.com/thelolagemann/dmg/internal/ppu"
	"github.com/thelolagemann/dmg/internal/timer"
	"github.com/thelolagemann/dmg/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of M-cycles per frame.
	CyclesPerFrame = 70224 / 4
)

// ErrCycleLimit is returned by Run when the configured cycle
// limit has been reached.
var ErrCycleLimit = errors.New("gameboy: cycle limit reached")

// cancelCheckInterval is the number of steps between checks of
// the run context.
const cancelCheckInterval = 1024

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Cartridge  *cartridge.ROMCartridge
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	IO         *io.Device
	VRAM       *ppu.VRAM

	log.Logger

	maxCycles uint64
}

// NewGameBoy returns a new GameBoy running rom. The ROM must at
// least contain a cartridge header.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	timerCtl := timer.NewController(irq)
	vram := ppu.NewVRAM()
	device := io.NewDevice(irq, timerCtl, nil)
	memBus := mmu.NewMMU(cart, vram, device, irq)

	g := &GameBoy{
		CPU:        cpu.NewCPU(memBus, irq, timerCtl),
		MMU:        memBus,
		Cartridge:  cart,
		Interrupts: irq,
		Timer:      timerCtl,
		IO:         device,
		VRAM:       vram,
		Logger:     log.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.Infof("loaded %s (fingerprint %016x)", cart.Header(), cart.Fingerprint())
	if !cart.Header().ChecksumValid() {
		g.Errorf("header checksum mismatch: %02X != %02X",
			cart.Header().HeaderChecksum, cart.Header().ComputedChecksum)
	}

	return g, nil
}

// Step runs a single CPU step, returning the machine cycles
// consumed.
func (g *GameBoy) Step() (uint8, error) {
	return g.CPU.Step()
}

// Run runs the Game Boy until the CPU stops, a fault occurs, the
// cycle limit is reached or ctx is done. A CPU stopped by STOP
// returns nil.
func (g *GameBoy) Run(ctx context.Context) error {
	for steps := 0; ; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				g.Infof("run cancelled after %d cycles", g.CPU.Cycles())
				return err
			}
		}

		if _, err := g.CPU.Step(); err != nil {
			g.Errorf("%v", err)
			return err
		}

		if g.CPU.State() == cpu.StateStopped {
			g.Infof("stopped after %d cycles at %04X", g.CPU.Cycles(), g.CPU.PC)
			return nil
		}
		if g.maxCycles > 0 && g.CPU.Cycles() >= g.maxCycles {
			g.Infof("cycle limit reached after %d cycles", g.CPU.Cycles())
			return ErrCycleLimit
		}
	}
}
