package ppu

import "github.com/thelolagemann/dmgcore/pkg/bits"

// Sprite is a decoded OAM entry.
type Sprite struct {
	Y      uint8 // screen Y + 16
	X      uint8 // screen X + 8
	TileID uint8
	spriteAttributes

	index uint8 // position in OAM
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// (Used for both BG and Window. BG color 0 is always behind OBJ)
	behindBG bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  **Non CGB mode Only** (0=OBP0, 1=OBP1)
	useSecondPalette bool
}

// newSprite decodes the four bytes of OAM entry i.
func newSprite(oam []uint8, i uint8) Sprite {
	b := oam[int(i)*4 : int(i)*4+4]
	return Sprite{
		Y:      b[0],
		X:      b[1],
		TileID: b[2],
		spriteAttributes: spriteAttributes{
			behindBG:         bits.Test(b[3], 7),
			flipY:            bits.Test(b[3], 6),
			flipX:            bits.Test(b[3], 5),
			useSecondPalette: bits.Test(b[3], 4),
		},
		index: i,
	}
}
