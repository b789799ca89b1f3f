// Package bits holds the single bit helpers shared by the hardware
// registers.
package bits

// Val returns bit i of b as 0 or 1.
func Val(b, i uint8) uint8 {
	return b >> i & 1
}

// Test reports whether bit i of b is set.
func Test(b, i uint8) bool {
	return b&(1<<i) != 0
}

// Set returns b with bit i set.
func Set(b, i uint8) uint8 {
	return b | 1<<i
}

// Reset returns b with bit i cleared.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// From returns a byte with only bit i set if on, or 0.
func From(on bool, i uint8) uint8 {
	if on {
		return 1 << i
	}
	return 0
}
