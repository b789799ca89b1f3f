package tests

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
)

type imageTest struct {
	name          string
	romPath       string
	expectedImage string
	seconds       int
}

var imageTests = []imageTest{
	{
		name:          "dmg-acid2",
		romPath:       "dmg-acid2/dmg-acid2.gb",
		expectedImage: "dmg-acid2/dmg-acid2-dmg.png",
		seconds:       2,
	},
	{
		name:          "bully",
		romPath:       "bully/bully.gb",
		expectedImage: "bully/bully.png",
		seconds:       5,
	},
}

func TestImages(t *testing.T) {
	for _, tt := range imageTests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rom := loadROM(t, tt.romPath)
			f, err := os.Open(filepath.Join(romDir(), tt.expectedImage))
			if os.IsNotExist(err) {
				t.Skipf("%s not found", tt.expectedImage)
			}
			require.NoError(t, err)
			defer f.Close()
			expected, err := png.Decode(f)
			require.NoError(t, err)

			g, err := gameboy.New(rom)
			require.NoError(t, err)
			for i := 0; i < tt.seconds*framesPerSecond; i++ {
				require.NoError(t, g.Frame())
			}

			assert.True(t, sameShades(expected, g.Image()), "screen does not match %s", tt.expectedImage)
		})
	}
}

// sameShades reports whether a and b show the same picture, allowing
// each to use its own four colours for the shades.
func sameShades(a, b image.Image) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	forward := map[color.RGBA]color.RGBA{}
	backward := map[color.RGBA]color.RGBA{}
	ao, bo := a.Bounds().Min, b.Bounds().Min
	for y := 0; y < a.Bounds().Dy(); y++ {
		for x := 0; x < a.Bounds().Dx(); x++ {
			ca := color.RGBAModel.Convert(a.At(ao.X+x, ao.Y+y)).(color.RGBA)
			cb := color.RGBAModel.Convert(b.At(bo.X+x, bo.Y+y)).(color.RGBA)
			if m, ok := forward[ca]; ok && m != cb {
				return false
			}
			if m, ok := backward[cb]; ok && m != ca {
				return false
			}
			forward[ca] = cb
			backward[cb] = ca
		}
	}
	return true
}

func TestSameShades(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 2, 2))
	b := image.NewRGBA(image.Rect(0, 0, 2, 2))
	white, black := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, color.RGBA{A: 0xFF}
	a.SetRGBA(0, 0, white)
	b.SetRGBA(0, 0, black)
	assert.True(t, sameShades(a, b))

	b.SetRGBA(1, 1, black)
	assert.False(t, sameShades(a, b))

	assert.False(t, sameShades(a, image.NewRGBA(image.Rect(0, 0, 1, 1))))
}
