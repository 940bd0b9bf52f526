package cartridge

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmg/pkg/utils"
)

type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%02X)", uint8(t))
}

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header is exposed for
// diagnostics only, the CPU never consults it.
type Header struct {
	// 0x0134-0x0142 - Title of the game
	Title string

	// 0x0147 - CartridgeType, the MBC and extra hardware on the cartridge.
	CartridgeType Type

	// 0x0148 - ROMSizeCode, the ROM size is 32kB x (1 << n)
	ROMSizeCode uint8
	// 0x0149 - RAMSizeCode of the external RAM
	RAMSizeCode uint8

	// 0x014A - DestinationCode, 0x00 for Japan, 0x01 for overseas
	DestinationCode uint8
	// 0x014B - LicenseeCode (old licensee code)
	LicenseeCode uint8
	// 0x014C - Version (mask ROM version number)
	Version uint8

	// 0x014D - HeaderChecksum as stored in the ROM
	HeaderChecksum uint8
	// ComputedChecksum is the header checksum computed over 0x0134-0x014C
	ComputedChecksum uint8
	// 0x014E-0x014F - GlobalChecksum (big endian)
	GlobalChecksum uint16
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(rom))
	}
	h := Header{}

	// the title is padded with zeros
	h.Title = strings.TrimRight(string(rom[0x0134:0x0143]), "\x00")

	h.CartridgeType = Type(rom[0x0147])
	h.ROMSizeCode = rom[0x0148]
	h.RAMSizeCode = rom[0x0149]
	h.DestinationCode = rom[0x014A]
	h.LicenseeCode = rom[0x014B]
	h.Version = rom[0x014C]
	h.HeaderChecksum = rom[0x014D]
	h.GlobalChecksum = utils.BytesToUint16(rom[0x014E], rom[0x014F])

	var x uint8
	for _, b := range rom[0x0134:0x014D] {
		x = x - b - 1
	}
	h.ComputedChecksum = x

	return h, nil
}

// ChecksumValid returns true if the stored header checksum matches
// the computed one.
func (h Header) ChecksumValid() bool {
	return h.HeaderChecksum == h.ComputedChecksum
}

// ROMSize returns the ROM size in bytes, as declared by the header.
func (h Header) ROMSize() uint {
	return (32 * 1024) << h.ROMSizeCode
}

func (h Header) String() string {
	checksum := "passed"
	if !h.ChecksumValid() {
		checksum = "failed"
	}
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Code: %02X | Version: %d | Checksum: %s",
		h.Title, h.CartridgeType, h.ROMSize()/1024, h.RAMSizeCode, h.Version, checksum)
}
