package palette

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// FromRGB555 expands a 15-bit colour (red in the low 5 bits) to 24 bits.
func FromRGB555(colour uint16) RGB {
	return RGB{
		(uint8(colour>>0)&0x1F)<<3 | (uint8(colour>>0)&0x1F)>>2,
		(uint8(colour>>5)&0x1F)<<3 | (uint8(colour>>5)&0x1F)>>2,
		(uint8(colour>>10)&0x1F)<<3 | (uint8(colour>>10)&0x1F)>>2,
	}
}

// ToRGB555 packs c back into 15 bits, dropping the low 3 bits of each
// channel.
func (c RGB) ToRGB555() uint16 {
	return uint16(c[0]>>3) | uint16(c[1]>>3)<<5 | uint16(c[2]>>3)<<10
}

// FromSGB builds a palette from four 15-bit colours, as sent by the
// colour adapter's palette commands.
func FromSGB(colours [4]uint16) Palette {
	var p Palette
	for i, c := range colours {
		p.Colors[i] = FromRGB555(c)
	}
	return p
}

// Load reads a palette from s.
func (p *Palette) Load(s *types.State) {
	for i := range p.Colors {
		s.ReadData(p.Colors[i][:])
	}
}

// Save writes p to s.
func (p *Palette) Save(s *types.State) {
	for _, c := range p.Colors {
		s.WriteData(c[:])
	}
}
