package ppu

import "sort"

// maxSpritesPerLine is the number of sprites the OAM search selects
// for a single line.
const maxSpritesPerLine = 10

// OAM (Object Attribute Memory) is the memory used to store the
// attributes of the sprites. It is 160 bytes long and is located at
// 0xFE00-0xFE9F in the memory map. It is divided in 40 entries of 4 bytes
// each, each entry representing a sprite.
//
// scanOAM returns the sprites on line ly, selected in OAM order and
// limited to 10, sorted by drawing priority: a lower X wins, and OAM
// order breaks ties.
func (p *PPU) scanOAM(ly uint8) []Sprite {
	sprites := make([]Sprite, 0, maxSpritesPerLine)
	height := int(p.SpriteSize)
	for i := uint8(0); i < 40 && len(sprites) < maxSpritesPerLine; i++ {
		s := newSprite(p.oam[:], i)
		top := int(s.Y) - 16
		if int(ly) >= top && int(ly) < top+height {
			sprites = append(sprites, s)
		}
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		if sprites[i].X != sprites[j].X {
			return sprites[i].X < sprites[j].X
		}
		return sprites[i].index < sprites[j].index
	})
	return sprites
}
