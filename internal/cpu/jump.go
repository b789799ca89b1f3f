package cpu

import "fmt"

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.mmu.Write(c.SP-1, uint8(value>>8))
	c.mmu.Write(c.SP-2, uint8(value))
	c.SP -= 2
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.mmu.Read(c.SP))
	upper := uint16(c.mmu.Read(c.SP+1)) << 8
	c.SP += 2
	return lower | upper
}

// jumpRelative reads a signed offset and, if condition holds, adds it
// to the address of the next instruction.
//
//	JR e
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.branched = true
	}
}

// jumpAbsolute reads an address and jumps to it if condition holds.
//
//	JP nn
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.branched = true
	}
}

// call reads an address and, if condition holds, pushes the address of
// the next instruction onto the stack and jumps to it.
//
//	CALL nn
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.pushStack(c.PC)
		c.PC = address
		c.branched = true
	}
}

// ret pops the return address off the stack and jumps to it if
// condition holds.
//
//	RET
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) ret(condition bool) {
	if condition {
		c.PC = c.popStack()
		c.branched = true
	}
}

// restart pushes the address of the next instruction onto the stack
// and jumps to address.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) restart(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

func init() {
	DefineInstruction(0x18, "JR e", func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0xC3, "JP nn", func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xCD, "CALL nn", func(c *CPU) { c.call(true) })
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret(true) })
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret(true)
		c.IME = true
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		DefineInstruction(0x20+cc<<3, "JR "+name+", e", func(c *CPU) { c.jumpRelative(c.condition(cc)) })
		DefineInstruction(0xC0+cc<<3, "RET "+name, func(c *CPU) { c.ret(c.condition(cc)) })
		DefineInstruction(0xC2+cc<<3, "JP "+name+", nn", func(c *CPU) { c.jumpAbsolute(c.condition(cc)) })
		DefineInstruction(0xC4+cc<<3, "CALL "+name+", nn", func(c *CPU) { c.call(c.condition(cc)) })
	}

	for i := uint8(0); i < 8; i++ {
		address := uint16(i) * 8
		DefineInstruction(0xC7+i<<3, fmt.Sprintf("RST %02Xh", address), func(c *CPU) { c.restart(address) })
	}

	// PUSH rr / POP rr, where rr = 3 selects AF rather than SP
	for rr := uint8(0); rr < 4; rr++ {
		rr := rr
		name := registerPairNames[rr]
		if rr == 3 {
			name = "AF"
		}
		DefineInstruction(0xC5+rr<<4, "PUSH "+name, func(c *CPU) {
			if rr == 3 {
				c.pushStack(c.AF.Uint16())
				return
			}
			c.pushStack(c.readRegisterPair(rr))
		})
		DefineInstruction(0xC1+rr<<4, "POP "+name, func(c *CPU) {
			value := c.popStack()
			if rr == 3 {
				// the low nibble of F is always zero
				c.AF.SetUint16(value & 0xFFF0)
				return
			}
			c.writeRegisterPair(rr, value)
		})
	}
}
