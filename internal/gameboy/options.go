package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/cheats"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that configures a GameBoy before its components
// are created.
type Opt func(gb *GameBoy)

// WithLogger sets the logger shared by every component.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.log = l
	}
}

// WithState restores a snapshot, as returned by GameBoy.Save, once
// the GameBoy has been created.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.initialState = b
	}
}

// WithPalette sets the colours used for the four shades.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.palette = p
	}
}

// WithSGB emulates a Super Game Boy, enabling the colour adapter's
// command channel.
func WithSGB() Opt {
	return AsModel(types.SGB)
}

// AsModel sets the model of the emulated hardware, which decides the
// register values the cartridge starts with.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// Speed sets the emulation speed for Run, as a multiple of real time.
// A speed of 0 or less runs as fast as possible.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = speed
	}
}

// WithBootROM runs the boot ROM before the cartridge. Unless a model
// is given, the model is taken from the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROMImage = rom
	}
}

// WithSerial attaches a device to the serial port.
func WithSerial(d serial.Device) Opt {
	return func(gb *GameBoy) {
		gb.serialDevice = d
	}
}

// WithCheats applies the enabled codes of s while running. Codes can be
// enabled and disabled later through GameBoy.Cheats.
func WithCheats(s *cheats.Set) Opt {
	return func(gb *GameBoy) {
		gb.Cheats = s
	}
}
