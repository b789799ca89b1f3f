package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var rom = bytes.Repeat([]byte{0xCE, 0xED, 0x66, 0x66}, 64)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(rom)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xw.Write(rom)
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	_, err = zw.Create("dir/")
	require.NoError(t, err)
	w, err := zw.Create("dir/game.gb")
	require.NoError(t, err)
	_, err = w.Write(rom)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name string
		data []byte
	}{
		{"game.gb", rom},
		{"game", rom},
		{"game.gb.gz", gz.Bytes()},
		{"game.gb.xz", xzBuf.Bytes()},
		{"game.ZIP", zipBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadFile(writeFile(t, tt.name, tt.data))
			require.NoError(t, err)
			assert.Equal(t, rom, data)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
	assert.True(t, os.IsNotExist(err))

	_, err = LoadFile(writeFile(t, "bad.gz", []byte("not gzip")))
	assert.Error(t, err)

	var zipBuf bytes.Buffer
	require.NoError(t, zip.NewWriter(&zipBuf).Close())
	_, err = LoadFile(writeFile(t, "empty.zip", zipBuf.Bytes()))
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestScaleImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(1, 0, color.RGBA{R: 0xFF, A: 0xFF})

	scaled := ScaleImage(img, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), scaled.Bounds())
	assert.Equal(t, color.RGBA{}, scaled.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, scaled.RGBAAt(3, 0))
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, scaled.RGBAAt(5, 2))

	assert.Equal(t, img.Bounds(), ScaleImage(img, 0).Bounds())
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, SavePNG(img, path, 2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 288), decoded.Bounds())
}
