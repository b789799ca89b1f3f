package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// RGB is a 24-bit colour.
type RGB [3]uint8

// RGBA returns the opaque colour.RGBA for c.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

// Palette represents a palette. A palette is an array of 4 RGB values,
// indexed by the 2-bit shade produced by a palette register.
type Palette struct {
	Colors [4]RGB
}

var (
	// Greyscale is the default palette. Shade 0 is black and shade 3
	// is white, so BGP=0x1B renders colour index 0 as white.
	Greyscale = Palette{
		Colors: [4]RGB{
			{0x00, 0x00, 0x00},
			{0x55, 0x55, 0x55},
			{0xAA, 0xAA, 0xAA},
			{0xFF, 0xFF, 0xFF},
		},
	}
	// Classic orders the shades the way the DMG LCD does, with shade
	// 0 the lightest.
	Classic = Palette{
		Colors: [4]RGB{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	}
	// Green attempts to emulate the original colour palette as it
	// would have appeared on the original Game Boy.
	Green = Palette{
		Colors: [4]RGB{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	}
)

// Palettes maps the name of every built-in palette to its value.
var Palettes = map[string]Palette{
	"greyscale": Greyscale,
	"classic":   Classic,
	"green":     Green,
}

// ByName looks up a built-in palette, ignoring case.
func ByName(name string) (Palette, error) {
	p, ok := Palettes[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(Palettes))
		for n := range Palettes {
			names = append(names, n)
		}
		sort.Strings(names)
		return Palette{}, fmt.Errorf("palette: unknown palette %q (available: %s)", name, strings.Join(names, ", "))
	}
	return p, nil
}

// Shade maps a 2-bit colour index through a palette register
// (BGP, OBP0 or OBP1).
func Shade(register, index uint8) uint8 {
	return (register >> (index * 2)) & 0x03
}

// GetColour returns the colour of the given shade.
func (p Palette) GetColour(shade uint8) RGB {
	return p.Colors[shade&0x03]
}

// Map resolves a colour index through a palette register into a
// colour of p.
func (p Palette) Map(register, index uint8) RGB {
	return p.Colors[Shade(register, index)]
}
