// Package cheats implements Game Genie and GameShark codes. Game Genie
// codes patch reads from the cartridge ROM; GameShark codes overwrite
// RAM at the end of every frame.
package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidCode is returned for a code that is neither a Game Genie
	// nor a GameShark code.
	ErrInvalidCode = errors.New("cheats: invalid code")
	// ErrUnknownCheat is returned when enabling or disabling a cheat
	// that was never added.
	ErrUnknownCheat = errors.New("cheats: unknown cheat")
)

// Cheat is a named group of codes, enabled and disabled together.
type Cheat struct {
	Name    string
	Enabled bool

	codes []string
}

// Codes returns the codes of the cheat.
func (c Cheat) Codes() []string {
	return c.codes
}

// Set holds every cheat of a game.
type Set struct {
	Genie GameGenie
	Shark GameShark

	cheats []Cheat
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Add adds a disabled cheat made of codes. The kind of each code is
// told apart by its length: 8 digits for GameShark, ABC-DEF or
// ABC-DEF-GHI for Game Genie.
func (s *Set) Add(name string, codes ...string) error {
	for _, c := range s.cheats {
		if c.Name == name {
			return fmt.Errorf("cheats: %q already added", name)
		}
	}
	var genie []GameGenieCode
	var shark []GameSharkCode
	for _, code := range codes {
		switch len(code) {
		case 8:
			c, err := parseGameSharkCode(code)
			if err != nil {
				return err
			}
			c.Name, c.rawCode = name, code
			shark = append(shark, c)
		case 7, 11:
			c, err := parseGameGenieCode(code)
			if err != nil {
				return err
			}
			c.Name, c.rawCode = name, code
			genie = append(genie, c)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	s.Genie.Codes = append(s.Genie.Codes, genie...)
	s.Shark.Codes = append(s.Shark.Codes, shark...)
	s.cheats = append(s.cheats, Cheat{Name: name, codes: codes})
	return nil
}

// Enable enables the named cheat.
func (s *Set) Enable(name string) error {
	return s.setEnabled(name, true)
}

// Disable disables the named cheat.
func (s *Set) Disable(name string) error {
	return s.setEnabled(name, false)
}

func (s *Set) setEnabled(name string, enabled bool) error {
	for i := range s.cheats {
		if s.cheats[i].Name == name {
			s.cheats[i].Enabled = enabled
			s.Genie.setEnabled(name, enabled)
			s.Shark.setEnabled(name, enabled)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCheat, name)
}

// Cheats returns every cheat in the order they were added.
func (s *Set) Cheats() []Cheat {
	return s.cheats
}

// Patch implements mmu.ROMPatcher.
func (s *Set) Patch(address uint16, value uint8) uint8 {
	return s.Genie.Patch(address, value)
}

// Apply writes the enabled GameShark codes through w.
func (s *Set) Apply(w Writer) {
	s.Shark.Apply(w)
}

// Parse reads a cheat file into a new Set. The file format is as
// follows:
//
//	# Cheat Name
//	01FF34C1
//	3E1-50F-EEA
//
// A line starting with '+' instead of '#' names a cheat that is enabled
// as soon as it is loaded. Blank lines are ignored.
func Parse(r io.Reader) (*Set, error) {
	s := NewSet()
	scanner := bufio.NewScanner(r)

	var name string
	var enabled bool
	var codes []string
	flush := func() error {
		if name == "" {
			return nil
		}
		if err := s.Add(name, codes...); err != nil {
			return err
		}
		if enabled {
			return s.Enable(name)
		}
		return nil
	}

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case text[0] == '#' || text[0] == '+':
			if err := flush(); err != nil {
				return nil, err
			}
			name = strings.TrimSpace(text[1:])
			enabled = text[0] == '+'
			codes = nil
		case name == "":
			return nil, fmt.Errorf("cheats: line %d: code before a cheat name", line)
		default:
			codes = append(codes, strings.ToUpper(text))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the cheats of s to w in the format read by Parse.
func (s *Set) Save(w io.Writer) error {
	for _, c := range s.cheats {
		prefix := "#"
		if c.Enabled {
			prefix = "+"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", prefix, c.Name); err != nil {
			return err
		}
		for _, code := range c.codes {
			if _, err := fmt.Fprintln(w, code); err != nil {
				return err
			}
		}
	}
	return nil
}
