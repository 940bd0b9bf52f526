// Package mmu provides the memory bus of the Game Boy. The bus
// partitions the 16-bit address space into fixed, non-overlapping
// regions and routes every read and write to exactly one owner:
// itself for work RAM and high RAM, or one of the attached
// collaborators through the IOBus interface.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/log"
)

// UnusableValue is returned for reads from the unusable
// region (0xFEA0 - 0xFEFF).
const UnusableValue uint8 = 0xFF

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Region describes a single range of the address space and the
// handlers that own it. The address passed to Read and Write is
// the untranslated bus address.
type Region struct {
	Name       string
	Start, End uint16

	Read  func(address uint16) uint8
	Write func(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart IOBus

	// 0x8000 - 0x9FFF - Video RAM (8kB), offset-translated
	Video IOBus

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	wRAM [types.WRAMSize]uint8

	// 0xFF00 - 0xFF7F - I/O Registers
	IO IOBus

	// 0xFF80 - 0xFFFE - High RAM (127B)
	hRAM [types.HRAMSize]uint8

	// 0xFFFF - interrupt enable register
	irq *interrupts.Service

	Log log.Logger

	regions []Region
	owner   [0x10000]uint8 // index into regions for every address
}

// NewMMU returns a new MMU routing to the given collaborators.
func NewMMU(cart, video, io IOBus, irq *interrupts.Service) *MMU {
	m := &MMU{
		Cart:  cart,
		Video: video,
		IO:    io,
		irq:   irq,
		Log:   log.NewNullLogger(),
	}
	m.init()

	return m
}

func (m *MMU) init() {
	m.regions = []Region{
		{Name: "ROM", Start: types.ROMStart, End: types.ROMEnd, Read: m.readCart, Write: m.writeCart},
		{Name: "VRAM", Start: types.VRAMStart, End: types.VRAMEnd,
			Read:  readOffset(m.readVideo, types.VRAMStart),
			Write: writeOffset(m.writeVideo, types.VRAMStart)},
		{Name: "External RAM", Start: types.ExtRAMStart, End: types.ExtRAMEnd, Read: m.readCart, Write: m.writeCart},
		{Name: "WRAM", Start: types.WRAMStart, End: types.WRAMEnd, Read: m.readWRAM, Write: m.writeWRAM},
		{Name: "Echo", Start: types.EchoStart, End: types.EchoEnd,
			Read:  func(uint16) uint8 { return 0 },
			Write: func(uint16, uint8) {}},
		{Name: "OAM", Start: types.OAMStart, End: types.OAMEnd, Read: m.readOAM, Write: m.writeOAM},
		{Name: "Unusable", Start: types.UnusableStart, End: types.UnusableEnd,
			Read:  func(uint16) uint8 { return UnusableValue },
			Write: func(uint16, uint8) {}},
		{Name: "I/O", Start: types.IOStart, End: types.IOEnd, Read: m.readIO, Write: m.writeIO},
		{Name: "HRAM", Start: types.HRAMStart, End: types.HRAMEnd, Read: m.readHRAM, Write: m.writeHRAM},
		{Name: "IE", Start: types.IE, End: types.IE,
			Read:  func(uint16) uint8 { return m.irq.ReadEnable() },
			Write: func(_ uint16, v uint8) { m.irq.WriteEnable(v) }},
	}

	// every address must be claimed exactly once
	var claimed [0x10000]bool
	for i, r := range m.regions {
		for addr := int(r.Start); addr <= int(r.End); addr++ {
			if claimed[addr] {
				panic(fmt.Sprintf("mmu: address %04X claimed twice (%s)", addr, r.Name))
			}
			claimed[addr] = true
			m.owner[addr] = uint8(i)
		}
	}
	for addr, ok := range claimed {
		if !ok {
			panic(fmt.Sprintf("mmu: address %04X is unowned", addr))
		}
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// Regions returns the address regions of the bus, in ascending
// address order.
func (m *MMU) Regions() []Region {
	return m.regions
}

// Region returns the name of the region owning the given address.
func (m *MMU) Region(address uint16) string {
	return m.regions[m.owner[address]].Name
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.regions[m.owner[address]].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.regions[m.owner[address]].Write(address, value)
}

func (m *MMU) readCart(address uint16) uint8 {
	return m.Cart.Read(address)
}

func (m *MMU) writeCart(address uint16, value uint8) {
	m.Cart.Write(address, value)
}

func (m *MMU) readVideo(offset uint16) uint8 {
	return m.Video.Read(offset)
}

func (m *MMU) writeVideo(offset uint16, value uint8) {
	m.Video.Write(offset, value)
}

func (m *MMU) readIO(address uint16) uint8 {
	return m.IO.Read(address)
}

func (m *MMU) writeIO(address uint16, value uint8) {
	m.IO.Write(address, value)
}

func (m *MMU) readOAM(address uint16) uint8 {
	m.Log.Debugf("unimplemented OAM read at %04X", address)
	return 0
}

func (m *MMU) writeOAM(address uint16, value uint8) {
	m.Log.Debugf("unimplemented OAM write %02X at %04X", value, address)
}

func (m *MMU) readWRAM(address uint16) uint8 {
	return m.wRAM[checkOffset("WRAM", address, types.WRAMStart, len(m.wRAM))]
}

func (m *MMU) writeWRAM(address uint16, value uint8) {
	m.wRAM[checkOffset("WRAM", address, types.WRAMStart, len(m.wRAM))] = value
}

func (m *MMU) readHRAM(address uint16) uint8 {
	return m.hRAM[checkOffset("HRAM", address, types.HRAMStart, len(m.hRAM))]
}

func (m *MMU) writeHRAM(address uint16, value uint8) {
	m.hRAM[checkOffset("HRAM", address, types.HRAMStart, len(m.hRAM))] = value
}

// checkOffset translates address into an index of a backing array
// starting at base, panicking with an *AddressRangeError when the
// result falls outside of it.
func checkOffset(region string, address, base uint16, size int) int {
	offset := int(address) - int(base)
	if offset < 0 || offset >= size {
		panic(&AddressRangeError{Address: address, Region: region})
	}
	return offset
}
