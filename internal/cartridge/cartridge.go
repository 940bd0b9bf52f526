// Package cartridge provides the ROM-only cartridge used by the
// DMG core. The cartridge holds the game ROM and 8kB of external
// RAM; bank switching is not supported.
package cartridge

import (
	"github.com/cespare/xxhash"

	"github.com/thelolagemann/dmg/internal/types"
)

// Cartridge represents a basic game cartridge.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	Title() string
}

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, writes to the ROM area are ignored.
type ROMCartridge struct {
	rom []byte
	ram [types.ExtRAMSize]byte

	header      Header
	fingerprint uint64
	loaded      bool
}

var _ Cartridge = (*ROMCartridge)(nil)

// NewEmptyCartridge returns a cartridge that has not been loaded.
// Any access to it fails with ErrUnloaded until Load succeeds.
func NewEmptyCartridge() *ROMCartridge {
	return &ROMCartridge{}
}

// NewCartridge returns a cartridge loaded with the given ROM image.
func NewCartridge(rom []byte) (*ROMCartridge, error) {
	c := NewEmptyCartridge()
	if err := c.Load(rom); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses the header of the given ROM image and attaches it
// to the cartridge.
func (c *ROMCartridge) Load(rom []byte) error {
	header, err := parseHeader(rom)
	if err != nil {
		return err
	}

	c.rom = rom
	c.header = header
	c.fingerprint = xxhash.Sum64(rom)
	c.loaded = true
	return nil
}

// Loaded returns true once a ROM image has been attached.
func (c *ROMCartridge) Loaded() bool {
	return c.loaded
}

// Header returns the parsed cartridge header.
func (c *ROMCartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *ROMCartridge) Title() string {
	return c.header.Title
}

// Fingerprint returns the xxhash of the whole ROM image, used to
// identify a ROM in diagnostics.
func (c *ROMCartridge) Fingerprint() uint64 {
	return c.fingerprint
}

// Read returns the value at the given address. ROM reads beyond
// the end of the image return 0xFF.
func (c *ROMCartridge) Read(address uint16) uint8 {
	if !c.loaded {
		panic(&UnloadedAccessError{Address: address})
	}

	if address >= types.ExtRAMStart && address <= types.ExtRAMEnd {
		return c.ram[address-types.ExtRAMStart]
	}
	if int(address) < len(c.rom) {
		return c.rom[address]
	}
	return 0xFF
}

// Write writes the value to the given address. Only the external
// RAM window is writable.
func (c *ROMCartridge) Write(address uint16, value uint8) {
	if !c.loaded {
		panic(&UnloadedAccessError{Address: address, Write: true})
	}

	if address >= types.ExtRAMStart && address <= types.ExtRAMEnd {
		c.ram[address-types.ExtRAMStart] = value
	}
}
