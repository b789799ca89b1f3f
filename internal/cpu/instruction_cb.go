package cpu

import "fmt"

func init() {
	// 0x00-0x3F rotations, shifts and swaps
	shifts := [8]struct {
		name string
		fn   func(*CPU, uint8) uint8
	}{
		{"RLC", (*CPU).rotateLeftCarry},
		{"RRC", (*CPU).rotateRightCarry},
		{"RL", (*CPU).rotateLeftThroughCarry},
		{"RR", (*CPU).rotateRightThroughCarry},
		{"SLA", (*CPU).shiftLeftArithmetic},
		{"SRA", (*CPU).shiftRightArithmetic},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).shiftRightLogical},
	}
	for g := uint8(0); g < 8; g++ {
		op := shifts[g]
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstructionCB(g<<3+r, op.name+" "+registerNames[r], func(c *CPU) {
				c.writeRegister(r, op.fn(c, c.readRegister(r)))
			})
		}
	}

	// 0x40-0xFF BIT, RES and SET
	for b := uint8(0); b < 8; b++ {
		b := b
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstructionCB(0x40+b<<3+r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), func(c *CPU) {
				c.testBit(c.readRegister(r), b)
			})
			DefineInstructionCB(0x80+b<<3+r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, c.clearBit(c.readRegister(r), b))
			})
			DefineInstructionCB(0xC0+b<<3+r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, c.setBit(c.readRegister(r), b))
			})
		}
	}
}
