// Package digest fingerprints the output of an emulation, so that runs
// can be compared for regressions without storing every frame.
package digest

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/cespare/xxhash"
)

// Video is a chained fingerprint of every frame it has seen. Each frame
// is hashed together with the previous value, so the digest depends on
// the whole sequence of frames and their order.
type Video struct {
	digest uint64
	frames int
	buf    []byte
}

// NewVideo returns an empty Video digest.
func NewVideo() *Video {
	return &Video{}
}

// NewFrame adds img to the digest.
func (v *Video) NewFrame(img *image.RGBA) {
	size := 8 + len(img.Pix)
	if cap(v.buf) < size {
		v.buf = make([]byte, size)
	}
	v.buf = v.buf[:size]

	binary.LittleEndian.PutUint64(v.buf, v.digest)
	copy(v.buf[8:], img.Pix)
	v.digest = xxhash.Sum64(v.buf)
	v.frames++
}

// Sum returns the current digest.
func (v *Video) Sum() uint64 {
	return v.digest
}

// Frames returns the number of frames digested.
func (v *Video) Frames() int {
	return v.frames
}

// Hash returns the digest as a hex string.
func (v *Video) Hash() string {
	return fmt.Sprintf("%016x", v.digest)
}

// Reset clears the digest.
func (v *Video) Reset() {
	v.digest = 0
	v.frames = 0
}
