package ppu

import (
	"image"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// Mask is the state of the colour adapter's screen mask. While the
// screen is masked, rendered lines are withheld from the pixel buffer.
type Mask = uint8

const (
	// MaskNone shows every line as it is rendered.
	MaskNone Mask = iota
	// MaskFreeze keeps the last image on screen.
	MaskFreeze
	// MaskBlack blanks the screen to black.
	MaskBlack
	// MaskColour0 blanks the screen to colour 0 of the palette.
	MaskColour0
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit as a
// scanline renderer: each line is drawn in one go when pixel transfer
// ends, with every mode taking a fixed number of dots.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	*lcd.Controller
	*lcd.Status

	// Scroll registers
	scy, scx uint8 // Background viewport position
	wy, wx   uint8 // Window Position

	ly  uint8 // Current line (0-153)
	lyc uint8 // LYC register value

	// Palette registers
	bgp, obp0, obp1 uint8

	dots       uint16 // dots spent in the current mode
	windowLine uint8  // internal window line counter

	vRAM [0x2000]uint8
	oam  [0xA0]uint8

	// Palette maps the shades produced by the palette registers
	// to colours.
	Palette palette.Palette
	mask    Mask

	image      *image.RGBA
	bgIndex    [ScreenWidth]uint8 // colour index of the BG/window per pixel
	frameReady bool

	irq *interrupts.Service

	// Debug controls
	Debug struct {
		OBJDisabled        bool // Force disable OBJ rendering
		BackgroundDisabled bool // Force disable BG layer
		WindowDisabled     bool // Force disable window layer
	}
}

// New creates a PPU and installs its registers in h.
func New(h *types.HardwareRegisters, irq *interrupts.Service) *PPU {
	p := &PPU{
		Controller: lcd.NewController(),
		Status:     &lcd.Status{},
		Palette:    palette.Greyscale,
		image:      image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		irq:        irq,
	}

	h.Register(types.LCDC, p.Controller.Read, p.writeLCDC)
	h.Register(types.STAT, p.Status.Read, func(v uint8) {
		p.Status.Write(v)
	})
	h.Register(types.SCY, func() uint8 { return p.scy }, func(v uint8) { p.scy = v })
	h.Register(types.SCX, func() uint8 { return p.scx }, func(v uint8) { p.scx = v })
	h.Register(types.LY, func() uint8 { return p.ly }, func(uint8) {
		// any write to LY resets it
		p.setLY(0)
	})
	h.Register(types.LYC, func() uint8 { return p.lyc }, func(v uint8) {
		p.lyc = v
		p.compareLY()
	})
	h.Register(types.BGP, func() uint8 { return p.bgp }, func(v uint8) { p.bgp = v })
	h.Register(types.OBP0, func() uint8 { return p.obp0 }, func(v uint8) { p.obp0 = v })
	h.Register(types.OBP1, func() uint8 { return p.obp1 }, func(v uint8) { p.obp1 = v })
	h.Register(types.WY, func() uint8 { return p.wy }, func(v uint8) { p.wy = v })
	h.Register(types.WX, func() uint8 { return p.wx }, func(v uint8) { p.wx = v })

	p.Reset()
	return p
}

// Reset puts the PPU in its post boot ROM state, with the LCD on and
// the first line's OAM search about to start.
func (p *PPU) Reset() {
	p.vRAM = [0x2000]uint8{}
	p.oam = [0xA0]uint8{}
	p.scy, p.scx, p.wy, p.wx = 0, 0, 0, 0
	p.bgp, p.obp0, p.obp1 = 0xFC, 0xFF, 0xFF
	p.lyc = 0
	p.mask = MaskNone
	*p.Status = lcd.Status{}
	p.Controller.Write(0x91)
	p.ly, p.dots, p.windowLine = 0, 0, 0
	p.Mode = lcd.OAM
	p.frameReady = false
	p.compareLY()
	p.renderBlank()
}

// writeLCDC handles the LCD being switched on or off.
func (p *PPU) writeLCDC(v uint8) {
	wasEnabled := p.Enabled
	p.Controller.Write(v)

	switch {
	case wasEnabled && !p.Enabled:
		// when the LCD is off, LY reads 0, and STAT mode reads 0 (HBlank)
		p.ly, p.dots, p.windowLine = 0, 0, 0
		p.Mode = lcd.HBlank
		p.renderBlank()
	case !wasEnabled && p.Enabled:
		p.dots, p.windowLine = 0, 0
		p.setMode(lcd.OAM)
		p.compareLY()
	}
}

// Advance runs the mode state machine for the given number of
// M-cycles. Nothing happens while the LCD is off.
func (p *PPU) Advance(mCycles uint8) {
	if !p.Enabled {
		return
	}
	p.dots += uint16(mCycles) * 4

	for {
		switch p.Mode {
		case lcd.OAM:
			if p.dots < lcd.OAMDots {
				return
			}
			p.dots -= lcd.OAMDots
			p.setMode(lcd.VRAM)
		case lcd.VRAM:
			if p.dots < lcd.VRAMDots {
				return
			}
			p.dots -= lcd.VRAMDots
			p.renderLine()
			p.setMode(lcd.HBlank)
		case lcd.HBlank:
			if p.dots < lcd.HBlankDots {
				return
			}
			p.dots -= lcd.HBlankDots
			p.setLY(p.ly + 1)
			if p.ly == lcd.VisibleLines {
				p.setMode(lcd.VBlank)
				p.irq.Request(interrupts.VBlankFlag)
				p.frameReady = true
			} else {
				p.setMode(lcd.OAM)
			}
		case lcd.VBlank:
			if p.dots < lcd.LineDots {
				return
			}
			p.dots -= lcd.LineDots
			if p.ly == lcd.LastLine {
				p.windowLine = 0
				p.setLY(0)
				p.setMode(lcd.OAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

// setMode enters mode, requesting a STAT interrupt if it is one of
// the selected sources.
func (p *PPU) setMode(mode lcd.Mode) {
	p.Mode = mode
	if p.Status.InterruptEnabled(mode) {
		p.irq.Request(interrupts.LCDFlag)
	}
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.compareLY()
}

// compareLY updates the coincidence flag, requesting a STAT interrupt
// when LY matches LYC and the source is selected.
func (p *PPU) compareLY() {
	p.Coincidence = p.ly == p.lyc
	if p.Coincidence && p.Enabled && p.CoincidenceInterrupt {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// LY returns the current line.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Dots returns the number of dots spent in the current mode.
func (p *PPU) Dots() uint16 {
	return p.dots
}

// ReadVRAM returns the byte of video RAM at address (0x8000-0x9FFF).
func (p *PPU) ReadVRAM(address uint16) uint8 {
	return p.vRAM[address&0x1FFF]
}

// WriteVRAM writes to video RAM.
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	p.vRAM[address&0x1FFF] = value
}

// ReadOAM returns the byte of OAM at address (0xFE00-0xFE9F).
func (p *PPU) ReadOAM(address uint16) uint8 {
	return p.oam[(address-0xFE00)%0xA0]
}

// WriteOAM writes to OAM.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	p.oam[(address-0xFE00)%0xA0] = value
}

// Image returns the pixel buffer. It is updated a line at a time, and
// holds a complete frame once FrameReady reports true.
func (p *PPU) Image() *image.RGBA {
	return p.image
}

// Pixels returns the raw RGBA bytes of the pixel buffer.
func (p *PPU) Pixels() []uint8 {
	return p.image.Pix
}

// FrameReady reports whether a frame has been completed since the last
// call, clearing the flag.
func (p *PPU) FrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

// SetMask changes the screen mask.
func (p *PPU) SetMask(mask Mask) {
	p.mask = mask & 0x03
	switch p.mask {
	case MaskBlack:
		p.fill(palette.RGB{})
	case MaskColour0:
		p.fill(p.Palette.GetColour(0))
	}
}

var _ types.Stater = (*PPU)(nil)

// Load restores the PPU from s.
func (p *PPU) Load(s *types.State) {
	p.Controller.Write(s.Read8())
	p.Status.Write(s.Read8())
	p.Mode = s.Read8() & 0x03
	p.scy, p.scx = s.Read8(), s.Read8()
	p.wy, p.wx = s.Read8(), s.Read8()
	p.ly, p.lyc = s.Read8(), s.Read8()
	p.bgp, p.obp0, p.obp1 = s.Read8(), s.Read8(), s.Read8()
	p.dots = s.Read16()
	p.windowLine = s.Read8()
	s.ReadData(p.vRAM[:])
	s.ReadData(p.oam[:])
	p.Palette.Load(s)
	p.mask = s.Read8() & 0x03
	s.ReadData(p.image.Pix)
	p.Coincidence = p.ly == p.lyc
}

// Save writes the PPU to s.
func (p *PPU) Save(s *types.State) {
	s.Write8(p.Controller.Read())
	s.Write8(p.Status.Read())
	s.Write8(p.Mode)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.bgp)
	s.Write8(p.obp0)
	s.Write8(p.obp1)
	s.Write16(p.dots)
	s.Write8(p.windowLine)
	s.WriteData(p.vRAM[:])
	s.WriteData(p.oam[:])
	p.Palette.Save(s)
	s.Write8(p.mask)
	s.WriteData(p.image.Pix)
}
