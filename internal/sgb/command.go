package sgb

import "fmt"

// Command is the command code held in the top 5 bits of the first
// byte of a packet.
type Command = uint8

const (
	// CommandPAL01 sets the colours of palettes 0 and 1.
	CommandPAL01 Command = 0x00
	// CommandPAL23 sets the colours of palettes 2 and 3.
	CommandPAL23 Command = 0x01
	// CommandPAL03 sets the colours of palettes 0 and 3.
	CommandPAL03 Command = 0x02
	// CommandPAL12 sets the colours of palettes 1 and 2.
	CommandPAL12 Command = 0x03
	// CommandMLTREQ requests multiplayer mode.
	CommandMLTREQ Command = 0x11
	// CommandMASKEN masks the screen.
	CommandMASKEN Command = 0x17
)

var commandNames = map[Command]string{
	0x00: "PAL01",
	0x01: "PAL23",
	0x02: "PAL03",
	0x03: "PAL12",
	0x04: "ATTR_BLK",
	0x05: "ATTR_LIN",
	0x06: "ATTR_DIV",
	0x07: "ATTR_CHR",
	0x08: "SOUND",
	0x09: "SOU_TRN",
	0x0A: "PAL_SET",
	0x0B: "PAL_TRN",
	0x0C: "ATRC_EN",
	0x0D: "TEST_EN",
	0x0E: "ICON_EN",
	0x0F: "DATA_SND",
	0x10: "DATA_TRN",
	0x11: "MLT_REQ",
	0x12: "JUMP",
	0x13: "CHR_TRN",
	0x14: "PCT_TRN",
	0x15: "ATTR_TRN",
	0x16: "ATTR_SET",
	0x17: "MASK_EN",
	0x18: "OBJ_TRN",
}

// CommandName returns the name of a command code.
func CommandName(c Command) string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", c)
}

// palettePairs maps the palette commands to the two palettes they set.
var palettePairs = map[Command][2]int{
	CommandPAL01: {0, 1},
	CommandPAL23: {2, 3},
	CommandPAL03: {0, 3},
	CommandPAL12: {1, 2},
}
