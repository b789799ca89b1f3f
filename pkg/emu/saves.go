package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
)

// Save is the battery save of a cartridge, stored as a raw .sav file
// named after the cartridge title.
type Save struct {
	Path string // the path to the save file
}

// NewSave returns the save for the given cartridge title in dir.
func NewSave(dir, title string) *Save {
	return &Save{Path: filepath.Join(dir, saveName(title)+".sav")}
}

// Load copies the save file into the cartridge RAM. A missing save file
// is not an error; the cartridge keeps its power on RAM.
func (s *Save) Load(cart cartridge.Cartridge) error {
	if !cart.Header().CartridgeType.Battery() {
		return nil
	}
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if len(b) != len(cart.RAM()) {
		return fmt.Errorf("emu: save %s is %d bytes, cartridge has %d", s.Path, len(b), len(cart.RAM()))
	}
	cart.LoadRAM(b)
	return nil
}

// Store writes the cartridge RAM to the save file.
func (s *Save) Store(cart cartridge.Cartridge) error {
	if !cart.Header().CartridgeType.Battery() || len(cart.RAM()) == 0 {
		return nil
	}
	return writeAtomic(s.Path, cart.RAM())
}

// saveName turns a cartridge title into a file name.
func saveName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "untitled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, title)
}
