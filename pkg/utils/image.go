package utils

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// ScaleImage returns img scaled by an integer factor, using nearest
// neighbour sampling so pixels stay sharp.
func ScaleImage(img image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes img, scaled by scale, to filename as a PNG.
func SavePNG(img image.Image, filename string, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, ScaleImage(img, scale)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
