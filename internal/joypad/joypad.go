// Package joypad provides the button state read through the P1
// register. The memory bus only sees the Input interface, so any
// source of button state can be plugged in.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// Input reports the current button state as two 4-bit masks, with a
// 0 bit for every pressed button.
//
//	Bit 3 - Down  or Start
//	Bit 2 - Up    or Select
//	Bit 1 - Left  or Button B
//	Bit 0 - Right or Button A
type Input interface {
	Buttons() uint8
	Directions() uint8
}

// State holds the pressed buttons, one bit per Button, with
// 1 meaning pressed.
type State struct {
	State uint8
	irq   *interrupts.Service
}

// New returns a new joypad state that requests the joypad
// interrupt through irq on every press.
func New(irq *interrupts.Service) *State {
	return &State{irq: irq}
}

// Press presses a button.
func (s *State) Press(button Button) {
	if bits.Test(s.State, button) {
		return
	}
	s.State = bits.Set(s.State, button)
	if s.irq != nil {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = bits.Reset(s.State, button)
}

// Buttons implements Input.
func (s *State) Buttons() uint8 {
	return ^s.State & 0x0F
}

// Directions implements Input.
func (s *State) Directions() uint8 {
	return ^(s.State >> 4) & 0x0F
}

// Reset releases every button.
func (s *State) Reset() {
	s.State = 0
}

var _ Input = (*State)(nil)
var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
}
