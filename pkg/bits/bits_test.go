package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits(t *testing.T) {
	assert.Equal(t, uint8(1), Val(0b0100, 2))
	assert.Equal(t, uint8(0), Val(0b0100, 1))
	assert.True(t, Test(0x80, 7))
	assert.False(t, Test(0x7F, 7))
	assert.Equal(t, uint8(0x81), Set(0x01, 7))
	assert.Equal(t, uint8(0x01), Reset(0x81, 7))
	assert.Equal(t, uint8(0x20), From(true, 5))
	assert.Equal(t, uint8(0), From(false, 5))
}
