package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
)

// renderLine draws line LY into the pixel buffer: the background and
// window first, then the sprites on top.
func (p *PPU) renderLine() {
	var line [ScreenWidth]palette.RGB
	p.renderBackground(&line)
	p.renderSprites(&line)

	// a masked screen still advances the window line counter
	if p.mask != MaskNone {
		return
	}

	row := p.image.Pix[int(p.ly)*p.image.Stride:]
	for x, c := range line {
		row[x*4+0] = c[0]
		row[x*4+1] = c[1]
		row[x*4+2] = c[2]
		row[x*4+3] = 0xFF
	}
}

// renderBackground resolves the background and window colour of every
// pixel on the line, recording the colour index for sprite priority.
func (p *PPU) renderBackground(line *[ScreenWidth]palette.RGB) {
	bgEnabled := p.BackgroundEnabled && !p.Debug.BackgroundDisabled
	windowX := int(p.wx) - 7
	windowVisible := p.BackgroundEnabled && p.WindowEnabled && !p.Debug.WindowDisabled &&
		p.ly >= p.wy && windowX < ScreenWidth

	for x := 0; x < ScreenWidth; x++ {
		switch {
		case windowVisible && x >= windowX:
			index := p.tilePixel(p.WindowTileMapAddress, uint8(x-windowX), p.windowLine)
			p.bgIndex[x] = index
			line[x] = p.Palette.Map(p.bgp, index)
		case bgEnabled:
			index := p.tilePixel(p.BackgroundTileMapAddress, uint8(x)+p.scx, p.ly+p.scy)
			p.bgIndex[x] = index
			line[x] = p.Palette.Map(p.bgp, index)
		default:
			// LCDC.0 clear blanks both layers
			p.bgIndex[x] = 0
			line[x] = p.Palette.Map(p.bgp, 0)
		}
	}

	if windowVisible {
		p.windowLine++
	}
}

// tilePixel returns the colour index at (x, y) of the 256x256 pixel
// plane described by the tile map at mapAddress.
func (p *PPU) tilePixel(mapAddress uint16, x, y uint8) uint8 {
	tileID := p.vRAM[mapAddress-0x8000+uint16(y/8)*32+uint16(x/8)]
	address := p.TileAddress(tileID) - 0x8000 + uint16(y%8)*2
	return colourIndex(p.vRAM[address], p.vRAM[address+1], x%8)
}

// renderSprites draws the sprites selected for the line. The first
// opaque pixel at a position, in priority order, owns it, even when it
// is hidden behind the background.
func (p *PPU) renderSprites(line *[ScreenWidth]palette.RGB) {
	if !p.SpriteEnabled || p.Debug.OBJDisabled {
		return
	}

	var owned [ScreenWidth]bool
	for _, s := range p.scanOAM(p.ly) {
		row := int(p.ly) - (int(s.Y) - 16)
		if s.flipY {
			row = int(p.SpriteSize) - 1 - row
		}
		tile := s.TileID
		if p.SpriteSize == 16 {
			tile &^= 1
		}
		address := uint16(tile)*16 + uint16(row)*2
		lo, hi := p.vRAM[address], p.vRAM[address+1]

		register := p.obp0
		if s.useSecondPalette {
			register = p.obp1
		}

		for px := uint8(0); px < 8; px++ {
			x := int(s.X) - 8 + int(px)
			if x < 0 || x >= ScreenWidth || owned[x] {
				continue
			}
			bit := px
			if s.flipX {
				bit = 7 - px
			}
			index := colourIndex(lo, hi, bit)
			if index == 0 {
				continue // transparent
			}
			owned[x] = true
			if s.behindBG && p.bgIndex[x] != 0 {
				continue
			}
			line[x] = p.Palette.Map(register, index)
		}
	}
}

// renderBlank blanks the current screen to colour index 0 of BGP.
func (p *PPU) renderBlank() {
	if p.mask != MaskNone {
		return
	}
	p.fill(p.Palette.Map(p.bgp, 0))
}

func (p *PPU) fill(c palette.RGB) {
	pix := p.image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c[0]
		pix[i+1] = c[1]
		pix[i+2] = c[2]
		pix[i+3] = 0xFF
	}
}
