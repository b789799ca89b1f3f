package lcd

import (
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit.
	Enabled bool
	// WindowTileMapAddress is the start of the window tile map,
	// 0x9800 or 0x9C00.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress is the base of the BG & Window tile data. At
	// 0x8000 tile numbers are unsigned, at 0x8800 they are signed and
	// tile 0 lives at 0x9000.
	TileDataAddress uint16
	// BackgroundTileMapAddress is the start of the background tile
	// map, 0x9800 or 0x9C00.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of a sprite, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit.
	BackgroundEnabled bool
}

// NewController returns a new LCD controller, with every bit clear.
func NewController() *Controller {
	c := &Controller{}
	c.Write(0)
	return c
}

// Write decodes the value written to LCDC.
func (c *Controller) Write(value uint8) {
	c.Enabled = bits.Test(value, 7)
	c.WindowTileMapAddress = 0x9800
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = bits.Test(value, 5)
	c.TileDataAddress = 0x8800
	if bits.Test(value, 4) {
		c.TileDataAddress = 0x8000
	}
	c.BackgroundTileMapAddress = 0x9800
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8 + bits.Val(value, 2)*8
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)
}

// Read encodes the controller back into the LCDC value.
func (c *Controller) Read() uint8 {
	var value uint8
	if c.Enabled {
		value |= 1 << 7
	}
	if c.WindowTileMapAddress == 0x9C00 {
		value |= 1 << 6
	}
	if c.WindowEnabled {
		value |= 1 << 5
	}
	if c.TileDataAddress == 0x8000 {
		value |= 1 << 4
	}
	if c.BackgroundTileMapAddress == 0x9C00 {
		value |= 1 << 3
	}
	if c.SpriteSize == 16 {
		value |= 1 << 2
	}
	if c.SpriteEnabled {
		value |= 1 << 1
	}
	if c.BackgroundEnabled {
		value |= 1 << 0
	}
	return value
}

// TileAddress returns the address of the first byte of the given BG or
// window tile, honouring the signed addressing mode.
func (c *Controller) TileAddress(tile uint8) uint16 {
	if c.UsingSignedTileData() {
		return uint16(0x9000 + int(int8(tile))*16)
	}
	return c.TileDataAddress + uint16(tile)*16
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}
