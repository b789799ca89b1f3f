package gameboy

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// stateVersion is bumped whenever the snapshot layout changes.
const stateVersion = 1

var (
	// ErrStateVersion is returned when loading a snapshot written by
	// an incompatible version.
	ErrStateVersion = errors.New("gameboy: unsupported state version")
	// ErrStateMismatch is returned when a snapshot was taken on a
	// different configuration, such as another model, or with a
	// cartridge when none is inserted.
	ErrStateMismatch = errors.New("gameboy: state does not match configuration")
	// ErrStateTrailing is returned when a snapshot has bytes left
	// over once every component has been loaded.
	ErrStateTrailing = errors.New("gameboy: trailing bytes in state")
)

// Save returns a snapshot of every component.
//
// The components are saved in the following order:
//   - version, model (uint8)
//   - CPU, interrupts, timer, PPU, MMU, joypad, serial, scheduler
//   - cartridge present (bool), and the cartridge
//   - colour adapter present (bool), and the colour adapter
func (g *GameBoy) Save() (*types.State, error) {
	s := types.NewState()
	s.Write8(stateVersion)
	s.Write8(uint8(g.model))
	g.CPU.Save(s)
	g.Interrupts.Save(s)
	g.Timer.Save(s)
	g.PPU.Save(s)
	g.MMU.Save(s)
	g.Joypad.Save(s)
	g.Serial.Save(s)
	g.Scheduler.Save(s)
	s.WriteBool(g.MMU.Cart != nil)
	if g.MMU.Cart != nil {
		g.MMU.Cart.Save(s)
	}
	s.WriteBool(g.SGB != nil)
	if g.SGB != nil {
		g.SGB.Save(s)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("gameboy: saving state: %w", err)
	}
	return s, nil
}

// Load restores a snapshot taken by Save. The snapshot is applied
// only if it decodes completely; otherwise the GameBoy is left as it
// was and the decoding error is returned.
func (g *GameBoy) Load(s *types.State) error {
	backup, err := g.Save()
	if err != nil {
		return err
	}

	if err := g.load(s); err != nil {
		if restoreErr := g.load(types.StateFromBytes(backup.Bytes())); restoreErr != nil {
			panic(fmt.Sprintf("gameboy: restoring state: %v", restoreErr))
		}
		return err
	}
	g.err = nil
	return nil
}

func (g *GameBoy) load(s *types.State) error {
	s.ResetPosition()
	if v := s.Read8(); s.Err() == nil && v != stateVersion {
		return fmt.Errorf("%w: %d", ErrStateVersion, v)
	}
	if m := types.Model(s.Read8()); s.Err() == nil && m != g.model {
		return fmt.Errorf("%w: model %s, running %s", ErrStateMismatch, m, g.model)
	}

	g.CPU.Load(s)
	g.Interrupts.Load(s)
	g.Timer.Load(s)
	g.PPU.Load(s)
	g.MMU.Load(s)
	g.Joypad.Load(s)
	g.Serial.Load(s)
	g.Scheduler.Load(s)
	if hasCart := s.ReadBool(); s.Err() == nil {
		if hasCart != (g.MMU.Cart != nil) {
			return fmt.Errorf("%w: cartridge", ErrStateMismatch)
		}
		if hasCart {
			g.MMU.Cart.Load(s)
		}
	}
	if hasSGB := s.ReadBool(); s.Err() == nil {
		if hasSGB != (g.SGB != nil) {
			return fmt.Errorf("%w: colour adapter", ErrStateMismatch)
		}
		if hasSGB {
			g.SGB.Load(s)
		}
	}

	if err := s.Err(); err != nil {
		return fmt.Errorf("gameboy: loading state: %w", err)
	}
	if s.Remaining() != 0 {
		return fmt.Errorf("%w: %d bytes", ErrStateTrailing, s.Remaining())
	}
	if g.SGB != nil {
		g.PPU.Palette = g.SGB.Palettes()[0]
		g.PPU.SetMask(g.SGB.Mask())
	}
	return nil
}
