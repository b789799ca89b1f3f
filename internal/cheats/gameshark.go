package cheats

import (
	"fmt"
	"strconv"
)

// Writer is the memory bus GameShark codes are written through.
type Writer interface {
	Write(address uint16, value uint8)
}

// GameShark overwrites memory once every frame.
type GameShark struct {
	Codes []GameSharkCode
}

// A GameSharkCode consists of eight hex digits, formatted as ABCDGHEF.
// AB is the external RAM bank, CD is the new data and EFGH is the
// memory address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name    string // name provided by the user
	Enabled bool
	rawCode string // raw code provided by the user
}

func parseGameSharkCode(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, fmt.Errorf("%w: GameShark code %q", ErrInvalidCode, code)
	}

	bank, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	newData, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	// reorganize GHEF to EFGH
	address, err := strconv.ParseUint(code[6:8]+code[4:6], 16, 16)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if address < 0xA000 || address >= 0xE000 {
		return c, fmt.Errorf("%w: GameShark address %04X outside RAM", ErrInvalidCode, address)
	}

	c.ExternalRAMBank = uint8(bank)
	c.NewData = uint8(newData)
	c.Address = uint16(address)
	return c, nil
}

// Load parses code and adds it, disabled, under name.
func (g *GameShark) Load(code, name string) error {
	c, err := parseGameSharkCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	c.rawCode = code
	g.Codes = append(g.Codes, c)
	return nil
}

// Apply writes every enabled code through w. External RAM codes are
// written to the currently selected bank.
func (g *GameShark) Apply(w Writer) {
	for _, c := range g.Codes {
		if c.Enabled {
			w.Write(c.Address, c.NewData)
		}
	}
}

func (g *GameShark) setEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
