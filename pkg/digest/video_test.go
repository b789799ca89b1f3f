package digest

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func frame(fill uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

func TestVideo(t *testing.T) {
	a, b := NewVideo(), NewVideo()
	assert.Equal(t, "0000000000000000", a.Hash())

	a.NewFrame(frame(1))
	b.NewFrame(frame(1))
	assert.Equal(t, a.Sum(), b.Sum())
	assert.NotZero(t, a.Sum())

	// same frames in a different order
	a.NewFrame(frame(2))
	a.NewFrame(frame(3))
	b.NewFrame(frame(3))
	b.NewFrame(frame(2))
	assert.NotEqual(t, a.Sum(), b.Sum())
	assert.Equal(t, 3, a.Frames())
	assert.Len(t, a.Hash(), 16)

	a.Reset()
	assert.Zero(t, a.Sum())
	assert.Zero(t, a.Frames())
}

func TestVideo_Chained(t *testing.T) {
	a, b := NewVideo(), NewVideo()
	a.NewFrame(frame(0))
	a.NewFrame(frame(0))
	b.NewFrame(frame(0))
	assert.NotEqual(t, a.Sum(), b.Sum(), "repeated frames still move the digest")
}
