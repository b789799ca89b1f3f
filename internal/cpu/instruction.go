package cpu

import "fmt"

// Instruction is a single opcode of the instruction set. Operands are
// read from the instruction stream by fn itself.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

var (
	// InstructionSet holds the unprefixed opcodes.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the opcodes prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// illegalOpcodes lock up the CPU when executed.
var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) { c.stop() })
	DefineInstruction(0x76, "HALT", func(c *CPU) { c.halt() })
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
		c.eiPending = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.eiPending = true })
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {})

	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})

	DefineInstruction(0x07, "RLCA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeftCarry) })
	DefineInstruction(0x0F, "RRCA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateRightCarry) })
	DefineInstruction(0x17, "RLA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeftThroughCarry) })
	DefineInstruction(0x1F, "RRA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateRightThroughCarry) })

	for _, opcode := range illegalOpcodes {
		opcode := opcode
		DefineInstruction(opcode, fmt.Sprintf("ILLEGAL %02X", opcode), func(c *CPU) { c.lock(opcode) })
	}

	// 8-bit arithmetic, register operands in 0x80-0xBF and the
	// immediate forms in 0xC6-0xFE
	alu := [8]struct {
		name string
		fn   func(c *CPU, n uint8)
	}{
		{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
		{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
		{"SUB", func(c *CPU, n uint8) { c.sub(n, false) }},
		{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true) }},
		{"AND", (*CPU).and},
		{"XOR", (*CPU).xor},
		{"OR", (*CPU).or},
		{"CP", (*CPU).compare},
	}
	for g := uint8(0); g < 8; g++ {
		op := alu[g]
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstruction(0x80+g<<3+r, op.name+" "+registerNames[r], func(c *CPU) {
				op.fn(c, c.readRegister(r))
			})
		}
		DefineInstruction(0xC6+g<<3, op.name+" d8", func(c *CPU) {
			op.fn(c, c.readOperand())
		})
	}

	// INC r / DEC r
	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x04+r<<3, "INC "+registerNames[r], func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
		})
		DefineInstruction(0x05+r<<3, "DEC "+registerNames[r], func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
		})
	}
}
