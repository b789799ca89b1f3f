package cheats

import (
	"fmt"
	"strconv"
	"strings"
)

// GameGenie patches values read from the cartridge ROM.
type GameGenie struct {
	Codes []GameGenieCode
}

// A GameGenieCode consists of nine hex digits, formatted as ABC-DEF-GHI.
// AB is the new data, FCDE is the memory address XORed by 0xF000, GI is
// the old data XORed by 0xBA and rotated left by 2, and H is unused.
// The short form ABC-DEF has no old data and patches unconditionally.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Compare bool

	Name    string // name provided by the user
	Enabled bool
	rawCode string // raw code provided by the user
}

func parseGameGenieCode(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 7 && len(code) != 11 {
		return c, fmt.Errorf("%w: Game Genie code %q", ErrInvalidCode, code)
	}

	// remove the hyphens, and interpret the code
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 6 && len(code) != 9 {
		return c, fmt.Errorf("%w: Game Genie code %q", ErrInvalidCode, code)
	}

	newData, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	c.NewData = uint8(newData)

	// reorganize CDEF to FCDE
	address, err := strconv.ParseUint(code[5:6]+code[2:5], 16, 16)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	c.Address = uint16(address) ^ 0xF000
	if c.Address >= 0x8000 {
		return c, fmt.Errorf("%w: Game Genie address %04X outside ROM", ErrInvalidCode, c.Address)
	}

	if len(code) == 9 {
		oldData, err := strconv.ParseUint(code[6:7]+code[8:9], 16, 8)
		if err != nil {
			return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
		}
		c.OldData = uint8(oldData>>2|oldData<<6) ^ 0xBA
		c.Compare = true
	}
	return c, nil
}

// Load parses code and adds it, disabled, under name.
func (g *GameGenie) Load(code, name string) error {
	c, err := parseGameGenieCode(code)
	if err != nil {
		return err
	}
	c.rawCode = code
	c.Name = name
	g.Codes = append(g.Codes, c)
	return nil
}

// Patch returns the value read from address in ROM, replaced by the
// new data of the first enabled code matching it.
func (g *GameGenie) Patch(address uint16, value uint8) uint8 {
	for _, c := range g.Codes {
		if !c.Enabled || c.Address != address {
			continue
		}
		if c.Compare && c.OldData != value {
			continue
		}
		return c.NewData
	}
	return value
}

func (g *GameGenie) setEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
