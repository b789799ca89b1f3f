// Package cpu implements the Sharp LR35902, the CPU of the Game Boy.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT. The CPU idles until an
	// interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP. The CPU idles until a button
	// is pressed or an interrupt is pending.
	ModeStop
	// ModeLocked is entered by executing an illegal opcode. The
	// CPU never leaves it.
	ModeLocked
)

// interruptCycles is the cost of dispatching an interrupt.
const interruptCycles = 5

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag.
	IME bool
	// eiPending is set by EI, IME is enabled once the next
	// instruction has completed.
	eiPending bool
	// haltBug makes the next opcode fetch leave PC alone.
	haltBug bool
	// branched is set when a conditional instruction takes its
	// branch, costing the extra cycles in branchCycles.
	branched bool

	mode mode

	mmu Bus
	irq *interrupts.Service
	log log.Logger

	// OnStop is called when STOP is executed, resetting the
	// divider.
	OnStop func()
}

// NewCPU creates a new CPU instance with the given memory bus and
// interrupt service.
func NewCPU(mmu Bus, irq *interrupts.Service, l log.Logger) *CPU {
	c := &CPU{
		mmu: mmu,
		irq: irq,
		log: l,
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	c.Reset(types.DMGABC)
	return c
}

// Reset puts the CPU in the state the boot ROM of model leaves it in,
// ready to execute the cartridge from 0x0100.
func (c *CPU) Reset(model types.Model) {
	r, ok := types.ModelRegisters[model]
	if !ok {
		r = types.ModelRegisters[types.DMGABC]
	}
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = r[0], r[1]&0xF0, r[2], r[3], r[4], r[5], r[6], r[7]
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME, c.eiPending, c.haltBug, c.branched = false, false, false, false
	c.mode = ModeNormal
}

// ResetBoot clears every register, so that execution starts from the
// boot ROM at 0x0000.
func (c *CPU) ResetBoot() {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.SP, c.PC = 0, 0
	c.IME, c.eiPending, c.haltBug, c.branched = false, false, false, false
	c.mode = ModeNormal
}

// Mode returns the current mode of the CPU.
func (c *CPU) Mode() mode {
	return c.mode
}

// Step executes a single instruction, or idles for a single M-cycle
// while halted or stopped, and returns the number of M-cycles taken.
// Dispatching an interrupt takes a step of its own.
func (c *CPU) Step() uint8 {
	switch c.mode {
	case ModeLocked:
		return 1
	case ModeHalt:
		if !c.irq.HasInterrupts() {
			return 1
		}
		c.mode = ModeNormal
	case ModeStop:
		if c.irq.Flag&interrupts.JoypadFlag == 0 && !c.irq.HasInterrupts() {
			return 1
		}
		c.mode = ModeNormal
	}

	// did we get an interrupt?
	if c.IME && c.irq.HasInterrupts() {
		c.executeInterrupt()
		return interruptCycles
	}

	enableIME := c.eiPending
	cycles := c.runInstruction(c.readInstruction())

	// EI takes effect after the instruction following it, unless that
	// instruction was DI
	if enableIME && c.eiPending {
		c.IME = true
		c.eiPending = false
	}
	return cycles
}

// readInstruction reads the next opcode from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.mmu.Read(c.PC)
	if c.haltBug {
		// the byte after HALT is read twice
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two operands as a little-endian word.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// runInstruction executes opcode, returning its cost in M-cycles.
func (c *CPU) runInstruction(opcode uint8) uint8 {
	c.branched = false

	// do we need to run a CB instruction?
	if opcode == 0xCB {
		cb := c.readOperand()
		InstructionSetCB[cb].fn(c)
		return cbCycles[cb]
	}

	InstructionSet[opcode].fn(c)
	cycles := instructionCycles[opcode]
	if c.branched {
		cycles += branchCycles[opcode]
	}
	return cycles
}

// executeInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, disabling IME. An interrupt taken
// straight after the halt bug returns to the HALT itself.
func (c *CPU) executeInterrupt() {
	if c.haltBug {
		c.haltBug = false
		c.PC--
	}
	c.pushStack(c.PC)
	c.PC = c.irq.Vector()
	c.IME = false
	c.eiPending = false
}

// halt enters HALT. With IME clear and an interrupt already pending
// the CPU does not halt, and the next opcode is read twice.
func (c *CPU) halt() {
	if !c.IME && c.irq.HasInterrupts() {
		c.haltBug = true
		return
	}
	c.mode = ModeHalt
}

// stop enters STOP, skipping the byte that follows the opcode.
func (c *CPU) stop() {
	c.PC++
	if c.OnStop != nil {
		c.OnStop()
	}
	c.mode = ModeStop
}

// lock hangs the CPU on an illegal opcode.
func (c *CPU) lock(opcode uint8) {
	c.log.Errorf("illegal opcode 0x%02X at 0x%04X, CPU locked", opcode, c.PC-1)
	c.mode = ModeLocked
}

var _ types.Stater = (*CPU)(nil)

// Load restores the CPU from s.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.eiPending = s.ReadBool()
	c.haltBug = s.ReadBool()
	c.mode = s.Read8()
	if c.mode > ModeLocked {
		c.mode = ModeNormal
	}
}

// Save writes the CPU to s.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.WriteBool(c.eiPending)
	s.WriteBool(c.haltBug)
	s.Write8(c.mode)
}
