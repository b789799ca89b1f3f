package serial

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Device is a device that can be attached to the Controller.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// Capture is a Device that writes every byte shifted out of the
// serial port to an io.Writer. It answers like an unplugged cable, so
// the byte shifted in is always 0xFF.
type Capture struct {
	w       io.Writer
	current uint8
	counter uint8
	err     error
}

// NewCapture returns a Capture writing to w.
func NewCapture(w io.Writer) *Capture {
	return &Capture{w: w}
}

// Send always returns true.
func (c *Capture) Send() bool { return true }

// Receive shifts in a bit, writing out the byte once all 8 bits have
// been received.
func (c *Capture) Receive(bit bool) {
	c.current <<= 1
	if bit {
		c.current |= types.Bit0
	}
	if c.counter++; c.counter == 8 {
		if c.err == nil {
			_, c.err = c.w.Write([]byte{c.current})
		}
		c.current, c.counter = 0, 0
	}
}

// Err returns the first error returned by the underlying writer.
func (c *Capture) Err() error {
	return c.err
}
