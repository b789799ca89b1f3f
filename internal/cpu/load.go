package cpu

import "fmt"

// loadHLIncrement returns HL and then increments it.
//
//	LD (HL+), A
//	LD A, (HL+)
func (c *CPU) loadHLIncrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl + 1)
	return hl
}

// loadHLDecrement returns HL and then decrements it.
//
//	LD (HL-), A
//	LD A, (HL-)
func (c *CPU) loadHLDecrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl - 1)
	return hl
}

// storeSP writes SP to the address in the operand, low byte first.
//
//	LD (nn), SP
func (c *CPU) storeSP() {
	address := c.readOperand16()
	c.mmu.Write(address, uint8(c.SP))
	c.mmu.Write(address+1, uint8(c.SP>>8))
}

func init() {
	// LD r, r' and LD r, d8
	for dst := uint8(0); dst < 8; dst++ {
		dst := dst
		for src := uint8(0); src < 8; src++ {
			src := src
			opcode := 0x40 + dst<<3 + src
			if opcode == 0x76 {
				// LD (HL), (HL) is HALT
				continue
			}
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
			})
		}
		DefineInstruction(0x06+dst<<3, fmt.Sprintf("LD %s, d8", registerNames[dst]), func(c *CPU) {
			c.writeRegister(dst, c.readOperand())
		})
	}

	// 16-bit loads and arithmetic on BC, DE, HL and SP
	for rr := uint8(0); rr < 4; rr++ {
		rr := rr
		name := registerPairNames[rr]
		DefineInstruction(0x01+rr<<4, "LD "+name+", d16", func(c *CPU) {
			c.writeRegisterPair(rr, c.readOperand16())
		})
		DefineInstruction(0x03+rr<<4, "INC "+name, func(c *CPU) {
			c.writeRegisterPair(rr, c.readRegisterPair(rr)+1)
		})
		DefineInstruction(0x0B+rr<<4, "DEC "+name, func(c *CPU) {
			c.writeRegisterPair(rr, c.readRegisterPair(rr)-1)
		})
		DefineInstruction(0x09+rr<<4, "ADD HL, "+name, func(c *CPU) {
			c.addHLRR(c.readRegisterPair(rr))
		})
	}

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.mmu.Write(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.mmu.Write(c.DE.Uint16(), c.A) })
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) { c.mmu.Write(c.loadHLIncrement(), c.A) })
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) { c.mmu.Write(c.loadHLDecrement(), c.A) })
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.mmu.Read(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.mmu.Read(c.DE.Uint16()) })
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) { c.A = c.mmu.Read(c.loadHLIncrement()) })
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) { c.A = c.mmu.Read(c.loadHLDecrement()) })

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) { c.storeSP() })

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) { c.mmu.Write(0xFF00+uint16(c.readOperand()), c.A) })
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) { c.A = c.mmu.Read(0xFF00 + uint16(c.readOperand())) })
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) { c.mmu.Write(0xFF00+uint16(c.C), c.A) })
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) { c.A = c.mmu.Read(0xFF00 + uint16(c.C)) })
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) { c.mmu.Write(c.readOperand16(), c.A) })
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) { c.A = c.mmu.Read(c.readOperand16()) })

	DefineInstruction(0xE8, "ADD SP, e", func(c *CPU) { c.SP = c.addSPSigned() })
	DefineInstruction(0xF8, "LD HL, SP+e", func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) })
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) { c.SP = c.HL.Uint16() })
}
