// Package sgb implements the command channel of the Super Game Boy
// colour adapter. Software talks to the adapter by pulsing the two
// select lines of P1, sending 16 byte packets one bit at a time, and
// the adapter answers with palettes, a screen mask and multiplayer
// joypad IDs.
package sgb

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// PacketSize is the size of a single packet in bytes.
	PacketSize = 16
	// packetBits is the number of data bits in a packet.
	packetBits = PacketSize * 8
	// maxPackets is the most packets a single command can span.
	maxPackets = 7
)

// The select lines of P1, as seen in the upper nibble of a write.
const (
	linesReset = 0x00 // P14 and P15 low
	linesZero  = 0x20 // P14 low
	linesOne   = 0x10 // P15 low
	linesIdle  = 0x30 // both high
)

// The screen mask, as sent by MASK_EN.
const (
	MaskNone uint8 = iota
	MaskFreeze
	MaskBlack
	MaskColour0
)

// Adapter decodes the packets written to P1.
type Adapter struct {
	// packet reception
	receiving bool
	waitIdle  bool
	bit       uint8
	packet    [PacketSize]byte
	lastLines uint8

	// the command being assembled across packets
	command   Command
	length    uint8
	remaining uint8
	data      []byte

	palettes [4]palette.Palette
	mask     uint8
	players  uint8
	player   uint8
	updated  bool

	err error
	log log.Logger
}

// New returns a new Adapter with every palette set to initial.
func New(initial palette.Palette, l log.Logger) *Adapter {
	a := &Adapter{log: l}
	a.palettes = [4]palette.Palette{initial, initial, initial, initial}
	a.Reset()
	return a
}

// Reset cancels any transfer in progress and leaves multiplayer mode
// and the screen mask. Palettes are kept.
func (a *Adapter) Reset() {
	a.receiving, a.waitIdle = false, false
	a.bit = 0
	a.packet = [PacketSize]byte{}
	a.lastLines = linesIdle
	a.command, a.length, a.remaining = 0, 0, 0
	a.data = a.data[:0]
	a.mask = MaskNone
	a.players, a.player = 1, 0
	a.err = nil
}

// WriteP1 is called on every write to P1.
func (a *Adapter) WriteP1(value uint8) {
	lines := value & 0x30
	switch lines {
	case linesReset:
		a.receiving = true
		a.waitIdle = true
		a.bit = 0
		a.packet = [PacketSize]byte{}
	case linesIdle:
		a.waitIdle = false
		// the joypad ID advances when P15 is released
		if !a.receiving && a.players > 1 && a.lastLines&0x20 == 0 {
			a.player = (a.player + 1) % a.players
		}
	case linesZero, linesOne:
		if a.receiving && !a.waitIdle {
			a.waitIdle = true
			a.receiveBit(lines == linesOne)
		}
	}
	a.lastLines = lines
}

// ReadP1 is called on every read of P1, with the value the joypad
// would return. In multiplayer mode the low nibble reports the
// current joypad ID while neither column is selected.
func (a *Adapter) ReadP1(value uint8) uint8 {
	if a.players > 1 {
		if value&0x30 == 0x30 {
			return value&0xF0 | (0x0F - a.player)
		}
		if a.player != 0 {
			// only player 1 is connected
			return value | 0x0F
		}
	}
	return value
}

// receiveBit shifts in a single bit, least significant bit first.
// The 129th bit is the stop bit and must be 0.
func (a *Adapter) receiveBit(one bool) {
	if a.bit == packetBits {
		a.receiving = false
		if one {
			a.log.Debugf("sgb: invalid stop bit, packet dropped")
			return
		}
		a.packetDone()
		return
	}
	if one {
		a.packet[a.bit/8] |= 1 << (a.bit % 8)
	}
	a.bit++
}

// packetDone collects a complete packet, executing the command once
// all of its packets have arrived.
func (a *Adapter) packetDone() {
	if a.remaining == 0 {
		a.command = a.packet[0] >> 3
		a.length = a.packet[0] & 7
		if a.length == 0 {
			a.length = 1
		}
		a.remaining = a.length
		a.data = a.data[:0]
	}
	a.data = append(a.data, a.packet[:]...)
	if a.remaining--; a.remaining == 0 {
		a.execute(a.command, a.data)
	}
}

// execute runs a complete command.
func (a *Adapter) execute(command Command, data []byte) {
	a.log.Debugf("sgb: %s", CommandName(command))

	switch command {
	case CommandPAL01, CommandPAL23, CommandPAL03, CommandPAL12:
		pair := palettePairs[command]
		colour := func(i int) uint16 {
			return uint16(data[1+i*2]) | uint16(data[2+i*2])<<8
		}
		first := palette.FromSGB([4]uint16{colour(0), colour(1), colour(2), colour(3)})
		second := palette.FromSGB([4]uint16{colour(0), colour(4), colour(5), colour(6)})
		a.palettes[pair[0]] = first
		a.palettes[pair[1]] = second
		// colour 0 is shared by every palette
		for i := range a.palettes {
			a.palettes[i].Colors[0] = first.Colors[0]
		}
		a.updated = true
	case CommandMLTREQ:
		switch data[1] & 3 {
		case 1:
			a.players = 2
		case 3:
			a.players = 4
		default:
			a.players = 1
		}
		a.player = 0
	case CommandMASKEN:
		a.mask = data[1] & 3
		a.updated = true
	default:
		if a.err == nil {
			a.err = &UnhandledCommandError{Command: command, Length: a.length}
		}
		a.log.Errorf("sgb: unhandled command %s", CommandName(command))
	}
}

// Palettes returns the four palettes set by the PAL commands.
func (a *Adapter) Palettes() [4]palette.Palette {
	return a.palettes
}

// Mask returns the screen mask set by MASK_EN.
func (a *Adapter) Mask() uint8 {
	return a.mask
}

// Players returns the number of joypads requested by MLT_REQ.
func (a *Adapter) Players() uint8 {
	return a.players
}

// Player returns the index of the joypad currently reported by P1.
func (a *Adapter) Player() uint8 {
	return a.player
}

// Updated reports whether the palettes or the mask changed since the
// last call.
func (a *Adapter) Updated() bool {
	u := a.updated
	a.updated = false
	return u
}

// Err returns the first unhandled command, as an
// *UnhandledCommandError, or nil.
func (a *Adapter) Err() error {
	return a.err
}

var _ types.Stater = (*Adapter)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - receiving, waitIdle (bool)
//   - bit (uint8)
//   - packet (16 bytes)
//   - lastLines, command, length, remaining (uint8)
//   - data length (uint8) and data
//   - palettes (4 * 12 bytes)
//   - mask, players, player (uint8)
func (a *Adapter) Load(s *types.State) {
	a.receiving = s.ReadBool()
	a.waitIdle = s.ReadBool()
	a.bit = s.Read8()
	if a.bit > packetBits {
		a.bit = packetBits
	}
	s.ReadData(a.packet[:])
	a.lastLines = s.Read8() & 0x30
	a.command = s.Read8()
	a.length = s.Read8() & 7
	a.remaining = s.Read8() & 7
	n := int(s.Read8())
	if n > maxPackets*PacketSize {
		n = maxPackets * PacketSize
	}
	a.data = make([]byte, n)
	s.ReadData(a.data)
	for i := range a.palettes {
		a.palettes[i].Load(s)
	}
	a.mask = s.Read8() & 3
	a.players = s.Read8()
	if a.players == 0 {
		a.players = 1
	}
	a.player = s.Read8() % a.players
	a.updated = true
}

// Save implements the types.Stater interface.
func (a *Adapter) Save(s *types.State) {
	s.WriteBool(a.receiving)
	s.WriteBool(a.waitIdle)
	s.Write8(a.bit)
	s.WriteData(a.packet[:])
	s.Write8(a.lastLines)
	s.Write8(a.command)
	s.Write8(a.length)
	s.Write8(a.remaining)
	s.Write8(uint8(len(a.data)))
	s.WriteData(a.data)
	for i := range a.palettes {
		a.palettes[i].Save(s)
	}
	s.Write8(a.mask)
	s.Write8(a.players)
	s.Write8(a.player)
}
