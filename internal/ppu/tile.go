package ppu

// Tile represents a tile. Each tile has a size of 8x8 pixels and a color
// depth of 4 colors/gray shades. Tiles can be displayed as sprites or as
// background/window tiles.
type Tile [8][8]uint8

// NewTile decodes the 16 bytes of a tile. Each row takes two bytes, the
// first holding the low bit of every pixel and the second the high bit,
// with bit 7 the leftmost pixel.
func NewTile(b [16]uint8) Tile {
	var t Tile
	for tileY := 0; tileY < 8; tileY++ {
		lo, hi := b[tileY*2], b[tileY*2+1]
		for tileX := uint8(0); tileX < 8; tileX++ {
			t[tileY][tileX] = colourIndex(lo, hi, tileX)
		}
	}
	return t
}

// colourIndex returns the colour number {high bit, low bit} of pixel x
// (0 is leftmost) of a tile row.
func colourIndex(lo, hi, x uint8) uint8 {
	bit := 7 - x
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}

// Tile returns tile n of the 384 tiles in video RAM, counting from
// 0x8000.
func (p *PPU) Tile(n int) Tile {
	var b [16]uint8
	copy(b[:], p.vRAM[(n%384)*16:])
	return NewTile(b)
}
