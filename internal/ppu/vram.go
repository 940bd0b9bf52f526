// Package ppu provides the graphics collaborator of the bus. Only
// the video RAM window is emulated: raw bytes are accepted and
// returned, rendering is not performed.
package ppu

import (
	"github.com/thelolagemann/dmg/internal/mmu"
	"github.com/thelolagemann/dmg/internal/types"
)

// VRAM is the 8kB video RAM, addressed by a 0-based offset. The
// bus translates 0x8000 - 0x9FFF to 0x0000 - 0x1FFF before calling.
type VRAM struct {
	data [types.VRAMSize]uint8
}

// NewVRAM returns a new, zeroed VRAM.
func NewVRAM() *VRAM {
	return &VRAM{}
}

// Read returns the byte at the given offset.
func (v *VRAM) Read(offset uint16) uint8 {
	v.check(offset)
	return v.data[offset]
}

// Write writes the byte to the given offset.
func (v *VRAM) Write(offset uint16, value uint8) {
	v.check(offset)
	v.data[offset] = value
}

func (v *VRAM) check(offset uint16) {
	if int(offset) >= len(v.data) {
		panic(&mmu.AddressRangeError{Address: offset, Region: "VRAM"})
	}
}
