package cartridge

import (
	"fmt"
	"strings"
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the cartridge type stored at 0x0147 of the header,
// which selects the memory bank controller.
type Type uint8

const (
	ROM              Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBATT      Type = 0x03
	MBC2             Type = 0x05
	MBC2BATT         Type = 0x06
	ROMRAM           Type = 0x08
	ROMRAMBATT       Type = 0x09
	MBC3TIMERBATT    Type = 0x0F
	MBC3TIMERRAMBATT Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBATT      Type = 0x13
)

var typeNames = map[Type]string{
	ROM:              "ROM ONLY",
	MBC1:             "MBC1",
	MBC1RAM:          "MBC1+RAM",
	MBC1RAMBATT:      "MBC1+RAM+BATTERY",
	MBC2:             "MBC2",
	MBC2BATT:         "MBC2+BATTERY",
	ROMRAM:           "ROM+RAM",
	ROMRAMBATT:       "ROM+RAM+BATTERY",
	MBC3TIMERBATT:    "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT: "MBC3+TIMER+RAM+BATTERY",
	MBC3:             "MBC3",
	MBC3RAM:          "MBC3+RAM",
	MBC3RAMBATT:      "MBC3+RAM+BATTERY",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// Battery reports whether the cartridge keeps its RAM (and clock)
// alive between sessions.
func (t Type) Battery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT:
		return true
	}
	return false
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	checksumOK bool
}

// ParseHeader parses the header of the given ROM image.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(rom))
	}
	header := rom[0x100:0x150]
	h := Header{}

	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// colour cartridges use the last title byte as the mode flag
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(header[0x34:0x44])
	} else {
		h.Title = string(header[0x34:0x43])
	}
	h.Title = strings.TrimRight(h.Title, "\x00 ")

	h.ManufacturerCode = string(header[0x3F:0x43])
	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// 32kB x (1 << n)
	h.ROMSize = (32 * 1024) * (1 << (header[0x48] & 0x0F))
	h.RAMSize = ramMAP[header[0x49]]

	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	var sum uint8
	for _, b := range header[0x34:0x4D] {
		sum = sum - b - 1
	}
	h.checksumOK = sum == h.HeaderChecksum

	return h, nil
}

// ChecksumOK reports whether the header checksum at 0x014D
// matches the bytes 0x0134-0x014C.
func (h Header) ChecksumOK() bool {
	return h.checksumOK
}

func (h Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | Mode: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.Hardware(), h.ROMSize/1024, h.RAMSize/1024)
}
