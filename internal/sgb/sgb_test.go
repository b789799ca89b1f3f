package sgb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// send writes a packet to a the way software does: a reset pulse,
// 128 data bits least significant first, and a stop bit.
func send(a *Adapter, packet [PacketSize]byte) {
	a.WriteP1(0x00)
	a.WriteP1(0x30)
	for _, b := range packet {
		for i := 0; i < 8; i++ {
			if b&(1<<i) != 0 {
				a.WriteP1(0x10)
			} else {
				a.WriteP1(0x20)
			}
			a.WriteP1(0x30)
		}
	}
	a.WriteP1(0x20)
	a.WriteP1(0x30)
}

func newPacket(command Command, length uint8, data ...byte) [PacketSize]byte {
	var p [PacketSize]byte
	p[0] = command<<3 | length
	copy(p[1:], data)
	return p
}

func TestAdapter_PAL01(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(CommandPAL01, 1,
		0xFF, 0x7F, // colour 0: white
		0x1F, 0x00, // palette 0: red
		0xE0, 0x03, //            green
		0x00, 0x7C, //            blue
		0x00, 0x00, // palette 1: black
		0x1F, 0x00, //            red
		0x00, 0x00, //            black
	))
	require.NoError(t, a.Err())
	assert.True(t, a.Updated())
	assert.False(t, a.Updated(), "cleared on read")

	p := a.Palettes()
	assert.Equal(t, palette.RGB{0xFF, 0xFF, 0xFF}, p[0].Colors[0])
	assert.Equal(t, palette.RGB{0xFF, 0x00, 0x00}, p[0].Colors[1])
	assert.Equal(t, palette.RGB{0x00, 0xFF, 0x00}, p[0].Colors[2])
	assert.Equal(t, palette.RGB{0x00, 0x00, 0xFF}, p[0].Colors[3])
	assert.Equal(t, palette.RGB{0xFF, 0x00, 0x00}, p[1].Colors[2])

	// colour 0 is shared, the rest of palettes 2 and 3 are untouched
	assert.Equal(t, palette.RGB{0xFF, 0xFF, 0xFF}, p[3].Colors[0])
	assert.Equal(t, palette.Greyscale.Colors[1], p[3].Colors[1])
}

func TestAdapter_PAL12(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(CommandPAL12, 1, 0, 0, 0x1F, 0x00))
	p := a.Palettes()
	assert.Equal(t, palette.RGB{0xFF, 0x00, 0x00}, p[1].Colors[1])
	assert.Equal(t, palette.Greyscale.Colors[1], p[0].Colors[1])
}

func TestAdapter_MaskEnable(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(CommandMASKEN, 1, MaskBlack))
	assert.Equal(t, MaskBlack, a.Mask())
	send(a, newPacket(CommandMASKEN, 1, MaskNone))
	assert.Equal(t, MaskNone, a.Mask())
}

func TestAdapter_Multiplayer(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	assert.Equal(t, uint8(0xFF), a.ReadP1(0xFF))

	send(a, newPacket(CommandMLTREQ, 1, 0x01))
	assert.Equal(t, uint8(2), a.Players())
	assert.Equal(t, uint8(0xFF), a.ReadP1(0xFF), "player 1 reads as 0xF")

	// selecting and releasing P15 moves to the next joypad
	a.WriteP1(0x10)
	a.WriteP1(0x30)
	assert.Equal(t, uint8(1), a.Player())
	assert.Equal(t, uint8(0xFE), a.ReadP1(0xFF))
	assert.Equal(t, uint8(0xDF), a.ReadP1(0xD7), "only player 1 has buttons")

	a.WriteP1(0x10)
	a.WriteP1(0x30)
	assert.Equal(t, uint8(0), a.Player())

	send(a, newPacket(CommandMLTREQ, 1, 0x00))
	assert.Equal(t, uint8(1), a.Players())
}

func TestAdapter_UnhandledCommand(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(0x04, 1)) // ATTR_BLK
	send(a, newPacket(0x13, 1)) // CHR_TRN

	var unhandled *UnhandledCommandError
	require.True(t, errors.As(a.Err(), &unhandled))
	assert.Equal(t, Command(0x04), unhandled.Command, "the first error sticks")
	assert.Equal(t, "sgb: unhandled command ATTR_BLK (1 packets)", a.Err().Error())

	a.Reset()
	assert.NoError(t, a.Err())
}

func TestAdapter_MultiPacket(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(0x05, 2)) // ATTR_LIN, two packets
	assert.NoError(t, a.Err(), "command incomplete")

	send(a, [PacketSize]byte{})
	assert.Error(t, a.Err())
}

func TestAdapter_BadStopBit(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	a.WriteP1(0x00)
	a.WriteP1(0x30)
	for i := 0; i < packetBits+1; i++ {
		a.WriteP1(0x10)
		a.WriteP1(0x30)
	}
	assert.NoError(t, a.Err())
	assert.Equal(t, palette.Greyscale, a.Palettes()[0])
}

func TestAdapter_JoypadReadsIgnored(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	// polling the joypad without a reset pulse sends nothing
	for i := 0; i < 300; i++ {
		a.WriteP1(0x20)
		a.WriteP1(0x10)
		a.WriteP1(0x30)
	}
	assert.NoError(t, a.Err())
	assert.Equal(t, MaskNone, a.Mask())
}

func TestAdapter_State(t *testing.T) {
	a := New(palette.Greyscale, log.NewNullLogger())
	send(a, newPacket(CommandPAL01, 1, 0x1F, 0x00))
	send(a, newPacket(CommandMLTREQ, 1, 0x03))
	send(a, newPacket(0x05, 2)) // half of a command

	s := types.NewState()
	a.Save(s)

	restored := New(palette.Classic, log.NewNullLogger())
	loaded := types.StateFromBytes(s.Bytes())
	restored.Load(loaded)
	require.NoError(t, loaded.Err())
	assert.Equal(t, 0, loaded.Remaining())
	assert.Equal(t, a.Palettes(), restored.Palettes())
	assert.Equal(t, uint8(4), restored.Players())
	assert.Equal(t, a.data, restored.data)
	assert.Equal(t, a.remaining, restored.remaining)
}
