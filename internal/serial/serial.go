// Package serial implements the serial port of the Game Boy, shifting
// a byte out to (and in from) an attached Device one bit at a time.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/scheduler"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// a bit is shifted every 128 M-cycles (8.192 kHz) on the internal clock
	cyclesPerBit = 512
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// Each bit, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Bit 1  : data = o6 o5 o4 o3 o2 o1 o0 i0
//	Bit 2  : data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Bit 8  : data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
//
// Transfers clocked by the other side of the cable never start, as no
// other Game Boy is ever attached.
type Controller struct {
	data            uint8
	count           uint8 // the number of bits that have been transferred.
	InternalClock   bool  // if true, this controller is the master.
	TransferRequest bool  // if true, a transfer has been requested.

	AttachedDevice Device // the device that is attached to this controller.

	irq *interrupts.Service
	s   *scheduler.Scheduler
}

// Attach attaches a Device to the Controller. A nil Device detaches
// whatever is attached.
func (c *Controller) Attach(d Device) {
	if d == nil {
		d = nullDevice{}
	}
	c.AttachedDevice = d
}

// NewController creates a new Controller, installing SB and SC in h.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. This is the same as if the device is not
// plugged in. If you want to attach a device, use the Controller.Attach method.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service, s *scheduler.Scheduler) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
		s:              s,
	}
	h.Register(types.SB, func() uint8 {
		return c.data
	}, func(v uint8) {
		c.data = v
	})
	h.Register(types.SC, func() uint8 {
		v := uint8(0x7E) // bits 1-6 are unused
		if c.TransferRequest {
			v |= types.Bit7
		}
		if c.InternalClock {
			v |= types.Bit0
		}
		return v
	}, func(v uint8) {
		c.InternalClock = v&types.Bit0 != 0
		c.TransferRequest = v&types.Bit7 != 0
		c.count = 0

		if c.TransferRequest && c.InternalClock {
			c.scheduleBit()
		} else {
			s.DescheduleEvent(scheduler.SerialBitTransfer)
		}
	})

	s.RegisterEvent(scheduler.SerialBitTransfer, c.transferBit)
	return c
}

// scheduleBit schedules the next bit on the next edge of the 8.192 kHz
// serial clock.
func (c *Controller) scheduleBit() {
	c.s.ScheduleEvent(scheduler.SerialBitTransfer, cyclesPerBit-c.s.Cycle()&(cyclesPerBit-1))
}

// transferBit exchanges one bit with the attached device, raising the
// serial interrupt once the whole byte has been shifted.
func (c *Controller) transferBit() {
	if !c.InternalClock || !c.TransferRequest {
		return
	}
	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 != 0)

	c.data <<= 1
	if bit {
		c.data |= types.Bit0
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.TransferRequest = false
		c.irq.Request(interrupts.SerialFlag)
		return
	}
	c.scheduleBit()
}

// Reset puts the serial port in its power on state, with no transfer
// in progress.
func (c *Controller) Reset() {
	c.data, c.count = 0, 0
	c.InternalClock, c.TransferRequest = false, false
	c.s.DescheduleEvent(scheduler.SerialBitTransfer)
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - data (uint8)
//   - TransferRequest (bool)
//   - count (uint8)
//   - InternalClock (bool)
//
// A pending bit is rescheduled by the scheduler's own state.
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.TransferRequest = s.ReadBool()
	c.count = s.Read8() & 7
	c.InternalClock = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.WriteBool(c.TransferRequest)
	s.Write8(c.count)
	s.WriteBool(c.InternalClock)
}
