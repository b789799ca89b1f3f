package types

// HardwareAddress is the address of a memory-mapped hardware
// register, in the range 0xFF00 - 0xFF7F or 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad column (bits 4 and 5, active low) and
	// returns the pressed keys of that column in the low nibble.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte shifted in and out of the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the upper byte of the free running divider. Any write
	// resets it to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC. On overflow it
	// is reloaded from TMA and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2   - Timer Enable
	//  Bit 1-0 - Input Clock Select
	//            00: 4096   Hz (every 256 M-cycles)
	//            01: 262144 Hz (every 4 M-cycles)
	//            10: 65536  Hz (every 16 M-cycles)
	//            11: 16384  Hz (every 64 M-cycles)
	TAC HardwareAddress = 0xFF07
	// IF requests interrupts.
	//
	//  Bit 0: V-Blank  (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26
	// WaveRAM is the first of the 16 bytes of wave pattern RAM.
	WaveRAM HardwareAddress = 0xFF30

	// LCDC controls the LCD.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ Size                       (0=8x8, 1=8x16)
	//  Bit 1: OBJ Display Enable             (0=Off, 1=On)
	//  Bit 0: BG & Window Display            (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode and selects the STAT interrupt sources.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable)
	//  Bit 2: Coincidence Flag             (Read Only)
	//  Bit 1-0: Mode Flag                  (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn, 0-153. Writing any
	// value resets it to 0.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts a 160 byte transfer from (value << 8) into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP maps background colour numbers to shades.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 maps sprite colour numbers 1-3 of palette 0 to shades.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 maps sprite colour numbers 1-3 of palette 1 to shades.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when written.
	BDIS HardwareAddress = 0xFF50
	// SVBK selects the WRAM bank mapped at 0xD000-0xDFFF. Only
	// present in colour mode; writing 0 selects bank 1.
	SVBK HardwareAddress = 0xFF70
	// IE enables interrupts, with the same layout as IF.
	IE HardwareAddress = 0xFFFF
)
