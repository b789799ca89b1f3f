// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// divPeriod is the number of M-cycles between DIV increments.
	divPeriod = 64
)

// periods holds the number of M-cycles between TIMA increments,
// indexed by the low 2 bits of TAC.
var periods = [4]uint16{256, 4, 16, 64}

// Controller is a timer controller. DIV and TIMA are driven by two
// independent sub-counters, which accumulate the M-cycles fed to
// Advance.
type Controller struct {
	div        uint8
	divCounter uint16

	tima        uint8
	tma         uint8
	tac         uint8
	timaCounter uint16
	timaPeriod  uint16
	Enabled     bool

	irq *interrupts.Service
}

// NewController returns a new timer controller with its registers
// installed in h.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}
	c.Reset()

	h.Register(types.DIV,
		func() uint8 {
			return c.div
		}, func(uint8) {
			c.ResetDIV()
		},
	)
	h.Register(types.TIMA,
		func() uint8 {
			return c.tima
		}, func(v uint8) {
			c.tima = v
		},
	)
	h.Register(types.TMA,
		func() uint8 {
			return c.tma
		}, func(v uint8) {
			c.tma = v
		},
	)
	h.Register(types.TAC,
		func() uint8 {
			return c.tac | 0b11111000
		}, func(v uint8) {
			c.setTAC(v)
		},
	)

	return c
}

func (c *Controller) setTAC(v uint8) {
	c.tac = v & 0x07
	c.timaPeriod = periods[v&0b11]
	c.Enabled = v&types.Bit2 == types.Bit2
}

// Reset restores the timer to its power-on state.
func (c *Controller) Reset() {
	c.div, c.divCounter = 0, 0
	c.tima, c.tma, c.timaCounter = 0, 0, 0
	c.setTAC(0)
}

// ResetDIV clears DIV and the divider sub-counter, as any write to
// DIV (or the STOP instruction) does.
func (c *Controller) ResetDIV() {
	c.div = 0
	c.divCounter = 0
}

// Advance advances the timer by the given number of M-cycles.
func (c *Controller) Advance(m uint8) {
	c.divCounter += uint16(m)
	for c.divCounter >= divPeriod {
		c.divCounter -= divPeriod
		c.div++
	}

	if !c.Enabled {
		return
	}
	c.timaCounter += uint16(m)
	for c.timaCounter >= c.timaPeriod {
		c.timaCounter -= c.timaPeriod
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}

// DIV returns the current value of the divider.
func (c *Controller) DIV() uint8 {
	return c.div
}

// TIMA returns the current value of the counter.
func (c *Controller) TIMA() uint8 {
	return c.tima
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
//
// The values are loaded in the following order:
//   - div (uint8)
//   - divCounter (uint16)
//   - tima, tma, tac (uint8)
//   - timaCounter (uint16)
func (c *Controller) Load(s *types.State) {
	c.div = s.Read8()
	c.divCounter = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.setTAC(s.Read8())
	c.timaCounter = s.Read16()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.div)
	s.Write16(c.divCounter)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.Write16(c.timaCounter)
}
