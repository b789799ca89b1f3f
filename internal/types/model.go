package types

import (
	"strings"
)

type Model int // The Model used in emulation.

const (
	Unset  Model = iota // Unset - Model hasn't been set - behaves as DMGABC
	DMGABC              // DMGABC - Standard Game Boy
	MGB                 // MGB - Pocket Game Boy
	SGB                 // SGB - Super Game Boy
	CGBABC              // CGBABC - Game Boy Colour
)

var modelNames = map[Model]string{
	Unset:  "Unset",
	DMGABC: "DMG",
	MGB:    "MGB",
	SGB:    "SGB",
	CGBABC: "CGB",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range modelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return modelNames[m]
}

// IsColour reports whether the model exposes colour-only
// hardware such as WRAM banking.
func (m Model) IsColour() bool {
	return m == CGBABC
}

// ModelRegisters holds the CPU registers left behind by each model's
// boot ROM, in the order A, F, B, C, D, E, H, L.
var ModelRegisters = map[Model][8]uint8{
	Unset:  {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	DMGABC: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	MGB:    {0xFF, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	SGB:    {0x01, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	CGBABC: {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

// CommonIO holds the I/O register values left behind by the boot ROM.
var CommonIO = map[HardwareAddress]uint8{
	P1:   0xCF,
	TAC:  0xF8,
	NR10: 0x80,
	NR11: 0xBF,
	NR12: 0xF3,
	NR14: 0xBF,
	NR21: 0x3F,
	NR24: 0xBF,
	NR30: 0x7F,
	NR31: 0xFF,
	NR32: 0x9F,
	NR34: 0xBF,
	NR41: 0xFF,
	NR44: 0xBF,
	NR50: 0x77,
	NR51: 0xF3,
	NR52: 0xF1,
	BGP:  0xFC,
	LCDC: 0x91,
	IF:   0xE1,
}
