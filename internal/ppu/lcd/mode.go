package lcd

// Mode represents a mode of the LCD.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// Dots spent in each mode of a visible line, and the length of a line.
const (
	OAMDots    = 80
	VRAMDots   = 172
	HBlankDots = 204
	LineDots   = OAMDots + VRAMDots + HBlankDots

	// VisibleLines is the number of lines drawn each frame, after
	// which the LCD spends VBlankLines lines in V-blank.
	VisibleLines = 144
	VBlankLines  = 10
	// LastLine is the last value LY takes before wrapping to 0.
	LastLine = VisibleLines + VBlankLines - 1
)
