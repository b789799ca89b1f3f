package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHardwareRegisters_SharedSlot(t *testing.T) {
	h := &HardwareRegisters{}
	var ie uint8
	h.Register(IE, func() uint8 { return ie }, func(v uint8) { ie = v })

	assert.True(t, h.Registered(IE))
	assert.False(t, h.Registered(0xFF7F))

	assert.False(t, h.Write(0xFF7F, 0x1F))
	assert.Equal(t, uint8(0), ie)
	v, ok := h.Read(0xFF7F)
	assert.False(t, ok)
	assert.Equal(t, uint8(0xFF), v)

	assert.True(t, h.Write(IE, 0x04))
	v, ok = h.Read(IE)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x04), v)
}
