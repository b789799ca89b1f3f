// Package cartridge provides the game cartridge and its memory bank
// controllers. The cartridge owns the ROM window (0x0000-0x7FFF) and the
// external RAM window (0xA000-0xBFFF) of the address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrUnsupportedType is returned when the header names a bank
	// controller that is not emulated.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
	// ErrHeaderTooShort is returned when the image is too small to
	// contain a header.
	ErrHeaderTooShort = errors.New("cartridge: image too short for header")
)

// Cartridge represents a game cartridge.
type Cartridge interface {
	// Read returns a byte from the ROM or external RAM windows.
	Read(address uint16) uint8
	// Write handles bank controller writes to the ROM window and
	// external RAM writes.
	Write(address uint16, value uint8)

	Header() Header
	Title() string

	// RAM returns the external RAM for battery saves.
	RAM() []byte
	// LoadRAM copies a battery save into the external RAM.
	LoadRAM(data []byte)

	types.Stater
}

// Clock is implemented by cartridges with a real time clock, which
// must be ticked once per emulated second.
type Clock interface {
	TickSecond()
}

// New returns the cartridge for rom, chosen by the type byte at 0x0147.
func New(rom []byte) (Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	rom = padROM(rom)

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, header), nil
	case MBC2, MBC2BATT:
		return NewMemoryBankedCartridge2(rom, header), nil
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return NewMemoryBankedCartridge3(rom, header), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType)
}

// padROM extends rom to a whole number of 16KB banks, and to at
// least two banks, so that bank arithmetic never indexes past the
// end of a short or truncated image.
func padROM(rom []byte) []byte {
	size := 0x8000
	for size < len(rom) {
		size <<= 1
	}
	if size == len(rom) {
		return rom
	}
	padded := make([]byte, size)
	copy(padded, rom)
	for i := len(rom); i < size; i++ {
		padded[i] = 0xFF
	}
	return padded
}

// baseCartridge holds what every cartridge shares.
type baseCartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

func (c *baseCartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *baseCartridge) Title() string {
	return c.header.Title
}

func (c *baseCartridge) RAM() []byte {
	return c.ram
}

func (c *baseCartridge) LoadRAM(data []byte) {
	copy(c.ram, data)
}

// romBanks returns the number of 16KB ROM banks.
func (c *baseCartridge) romBanks() int {
	return len(c.rom) / 0x4000
}

// ramBanks returns the number of 8KB RAM banks.
func (c *baseCartridge) ramBanks() int {
	return len(c.ram) / 0x2000
}

// readROM reads from the given 16KB bank, wrapping the bank
// number modulo the size of the ROM.
func (c *baseCartridge) readROM(bank int, address uint16) uint8 {
	bank %= c.romBanks()
	return c.rom[bank*0x4000+int(address&0x3FFF)]
}

// ramOffset returns the offset into external RAM for the given
// 8KB bank, or -1 if the cartridge has no RAM.
func (c *baseCartridge) ramOffset(bank int, address uint16) int {
	if len(c.ram) == 0 {
		return -1
	}
	if len(c.ram) < 0x2000 {
		// 2KB parts mirror through the whole window
		return int(address) % len(c.ram)
	}
	bank %= c.ramBanks()
	return bank*0x2000 + int(address&0x1FFF)
}
