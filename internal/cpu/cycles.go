package cpu

// instructionCycles is the cost in M-cycles of each unprefixed opcode,
// with conditional branches not taken. 0xCB is costed by cbCycles.
var instructionCycles = [256]uint8{
	//  0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0
	1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 1
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 2
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 3
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 4
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 5
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 6
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 7
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 8
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 9
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // A
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // B
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4, // C
	2, 3, 3, 1, 3, 4, 2, 4, 2, 4, 3, 1, 3, 1, 2, 4, // D
	3, 3, 2, 1, 1, 4, 2, 4, 4, 1, 4, 1, 1, 1, 2, 4, // E
	3, 3, 2, 1, 1, 4, 2, 4, 3, 2, 4, 1, 1, 1, 2, 4, // F
}

// branchCycles is added to instructionCycles when a conditional
// instruction takes its branch.
var branchCycles = [256]uint8{
	0x20: 1, 0x28: 1, 0x30: 1, 0x38: 1, // JR cc
	0xC2: 1, 0xCA: 1, 0xD2: 1, 0xDA: 1, // JP cc
	0xC4: 3, 0xCC: 3, 0xD4: 3, 0xDC: 3, // CALL cc
	0xC0: 3, 0xC8: 3, 0xD0: 3, 0xD8: 3, // RET cc
}

// cbCycles is the cost in M-cycles of each 0xCB prefixed opcode,
// including the prefix.
var cbCycles = func() [256]uint8 {
	var t [256]uint8
	for i := range t {
		switch {
		case i&7 != 6:
			t[i] = 2
		case i >= 0x40 && i < 0x80:
			// BIT b, (HL) only reads
			t[i] = 3
		default:
			t[i] = 4
		}
	}
	return t
}()
