// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Size is the size of a DMG, MGB or SGB boot ROM.
const Size = 256

// ErrInvalidSize is returned when a boot ROM is not 256 bytes long.
var ErrInvalidSize = errors.New("boot: invalid boot rom length")

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	raw      [Size]byte // the raw boot rom
	checksum string     // the MD5 checksum of the boot rom
}

// LoadBootROM copies b into a new ROM, calculating its MD5 checksum.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, len(b))
	}

	r := &ROM{}
	copy(r.raw[:], b)
	sum := md5.Sum(b)
	r.checksum = hex.EncodeToString(sum[:])
	return r, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr&0xFF]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Name returns the name of the hardware the boot rom belongs
// to, as determined by its checksum.
func (b *ROM) Name() string {
	if b == nil {
		return "none"
	}
	if known, ok := knownBootROMChecksums[b.checksum]; ok {
		return known.name
	}
	return "unknown"
}

// Model returns the model the boot rom was dumped from, or
// types.Unset if it isn't a known dump.
func (b *ROM) Model() types.Model {
	if b == nil {
		return types.Unset
	}
	return knownBootROMChecksums[b.checksum].model
}

type knownBootROM struct {
	name  string
	model types.Model
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum.
var knownBootROMChecksums = map[string]knownBootROM{
	DMG0: {"Game Boy (DMG-0)", types.DMGABC},
	DMG:  {"Game Boy (DMG-01)", types.DMGABC},
	MGB:  {"Game Boy Pocket", types.MGB},
	SGB:  {"Super Game Boy", types.SGB},
	SGB2: {"Super Game Boy 2", types.SGB},
}

const (
	// DMG0 is the checksum of the DMG early boot ROM,
	// a variant that was found in very early DMG units and
	// only ever sold in Japan. It has a different behaviour
	// than the DMG boot ROM, in that in the case of a boot
	// failure, it will flash the screen, rather than hanging
	// after the Nintendo logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM, which differs
	// only by a single byte from the DMG boot ROM, loading
	// the value 0xFF into the A register, rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM. Instead of
	// showing a logo animation, it sends the cartridge header
	// to the SNES through the colour adapter's packet protocol.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM, differing
	// from the SGB boot ROM by a single byte.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
