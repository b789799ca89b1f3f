package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// testBus is a flat 64kB memory.
type testBus [0x10000]uint8

func (b *testBus) Read(address uint16) uint8          { return b[address] }
func (b *testBus) Write(address uint16, value uint8) { b[address] = value }
func (b *testBus) Read16(address uint16) uint16      { return uint16(b[address]) | uint16(b[address+1])<<8 }

// newTestCPU returns a CPU with program loaded at 0x0100.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus[0x0100:], program)
	c := NewCPU(bus, interrupts.NewService(&types.HardwareRegisters{}), log.NewNullLogger())
	return c, bus
}

func TestCPU_Reset(t *testing.T) {
	c, _ := newTestCPU()
	assert.Equal(t, uint16(0x01B0), c.AF.Uint16())
	assert.Equal(t, uint16(0x0013), c.BC.Uint16())
	assert.Equal(t, uint16(0x00D8), c.DE.Uint16())
	assert.Equal(t, uint16(0x014D), c.HL.Uint16())
	assert.Equal(t, uint16(0xFFFE), c.SP)
	assert.Equal(t, uint16(0x0100), c.PC)

	c.ResetBoot()
	assert.Equal(t, uint16(0), c.AF.Uint16())
	assert.Equal(t, uint16(0), c.PC)
}

func TestCPU_InstructionSetComplete(t *testing.T) {
	for i := 0; i < 256; i++ {
		if InstructionSet[i].fn == nil {
			t.Errorf("opcode 0x%02X is not defined", i)
		}
		if InstructionSetCB[i].fn == nil {
			t.Errorf("CB opcode 0x%02X is not defined", i)
		}
	}
	assert.Equal(t, "LD B, (HL)", InstructionSet[0x46].Name())
	assert.Equal(t, "BIT 7, H", InstructionSetCB[0x7C].Name())
	assert.Equal(t, "JR NZ, e", InstructionSet[0x20].Name())
}

func TestCPU_AddRegister(t *testing.T) {
	c, _ := newTestCPU(0x80) // ADD A, B
	c.A, c.B, c.F = 2, 1, 0xF0

	cycles := c.Step()
	assert.Equal(t, uint8(1), cycles)
	assert.Equal(t, uint8(3), c.A)
	assert.Equal(t, uint8(0), c.F)
	assert.Equal(t, uint16(0x0101), c.PC)
}

func TestCPU_AddSubFlags(t *testing.T) {
	c, _ := newTestCPU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.A, c.F = uint8(a), 0
			c.add(uint8(b), false)
			sum := a + b
			if c.A != uint8(sum) {
				t.Fatalf("ADD %02X+%02X = %02X", a, b, c.A)
			}
			if c.isFlagSet(FlagCarry) != (sum > 0xFF) ||
				c.isFlagSet(FlagHalfCarry) != (a&0xF+b&0xF > 0xF) ||
				c.isFlagSet(FlagZero) != (uint8(sum) == 0) ||
				c.isFlagSet(FlagSubtract) {
				t.Fatalf("ADD %02X+%02X flags %08b", a, b, c.F)
			}

			c.sub(uint8(b), false)
			if c.A != uint8(a) {
				t.Fatalf("SUB did not undo ADD for %02X, %02X", a, b)
			}
			if !c.isFlagSet(FlagSubtract) {
				t.Fatalf("SUB did not set N")
			}
		}
	}
}

func TestCPU_ALU(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint8
		a, n, f uint8
		wantA   uint8
		wantF   uint8
	}{
		{"ADC with carry", 0xCE, 0x0E, 0x01, 0x10, 0x10, 0x20},
		{"ADD overflow", 0xC6, 0xFF, 0x01, 0x00, 0x00, 0xB0},
		{"SUB to zero", 0xD6, 0x3E, 0x3E, 0x00, 0x00, 0xC0},
		{"SUB borrow", 0xD6, 0x00, 0x01, 0x00, 0xFF, 0x70},
		{"SBC with carry", 0xDE, 0x3B, 0x2A, 0x10, 0x10, 0x40},
		{"AND", 0xE6, 0x5A, 0x38, 0x00, 0x18, 0x20},
		{"AND zero", 0xE6, 0x5A, 0x00, 0x00, 0x00, 0xA0},
		{"XOR", 0xEE, 0xFF, 0x0F, 0xF0, 0xF0, 0x00},
		{"OR zero", 0xF6, 0x00, 0x00, 0x00, 0x00, 0x80},
		{"CP equal", 0xFE, 0x3C, 0x3C, 0x00, 0x3C, 0xC0},
		{"CP greater", 0xFE, 0x3C, 0x40, 0x00, 0x3C, 0x50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode, tt.n)
			c.A, c.F = tt.a, tt.f
			assert.Equal(t, uint8(2), c.Step())
			assert.Equal(t, tt.wantA, c.A, "A")
			assert.Equal(t, tt.wantF, c.F, "F")
		})
	}
}

func TestCPU_IncrementDecrement(t *testing.T) {
	c, _ := newTestCPU(0x3C, 0x05, 0x34) // INC A, DEC B, INC (HL)
	c.A, c.B, c.F = 0xFF, 0x10, 0x10
	c.HL.SetUint16(0xC000)

	c.Step()
	assert.Equal(t, uint8(0), c.A)
	assert.Equal(t, uint8(0xB0), c.F, "carry kept, zero and half carry set")

	c.Step()
	assert.Equal(t, uint8(0x0F), c.B)
	assert.Equal(t, uint8(0x70), c.F)

	assert.Equal(t, uint8(3), c.Step())
}

func TestCPU_DAA(t *testing.T) {
	tests := []struct {
		name      string
		a, f      uint8
		wantA     uint8
		wantCarry bool
		wantZero  bool
	}{
		{"after add", 0x15 + 0x27, 0x00, 0x42, false, false},
		{"half carry", 0x1A, 0x00, 0x20, false, false},
		{"overflow", 0x9A, 0x00, 0x00, true, true},
		{"after sub", 0x0F, 0x60, 0x09, false, false},
		{"after sub borrow", 0xF0, 0x50, 0x90, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(0x27)
			c.A, c.F = tt.a, tt.f
			c.Step()
			assert.Equal(t, tt.wantA, c.A)
			assert.Equal(t, tt.wantCarry, c.isFlagSet(FlagCarry))
			assert.Equal(t, tt.wantZero, c.isFlagSet(FlagZero))
			assert.False(t, c.isFlagSet(FlagHalfCarry))
		})
	}
}

func TestCPU_16BitArithmetic(t *testing.T) {
	c, _ := newTestCPU(0x09, 0xE8, 0x01, 0xF8, 0xFF) // ADD HL,BC; ADD SP,1; LD HL,SP-1
	c.HL.SetUint16(0x0FFF)
	c.BC.SetUint16(0x0001)
	c.F = 0x80

	assert.Equal(t, uint8(2), c.Step())
	assert.Equal(t, uint16(0x1000), c.HL.Uint16())
	assert.Equal(t, uint8(0xA0), c.F, "zero kept, half carry from bit 11")

	c.SP = 0x00FF
	assert.Equal(t, uint8(4), c.Step())
	assert.Equal(t, uint16(0x0100), c.SP)
	assert.Equal(t, uint8(0x30), c.F)

	assert.Equal(t, uint8(3), c.Step())
	assert.Equal(t, uint16(0x00FF), c.HL.Uint16())
	assert.Equal(t, uint8(0x00), c.F)
}

func TestCPU_Rotations(t *testing.T) {
	c, _ := newTestCPU(0x07, 0xCB, 0x00, 0xCB, 0x37, 0xCB, 0x1E)
	c.A, c.B, c.F = 0x80, 0x00, 0x00
	c.HL.SetUint16(0xC000)

	// RLCA clears Z even on zero results
	c.Step()
	assert.Equal(t, uint8(0x01), c.A)
	assert.Equal(t, uint8(0x10), c.F)

	// RLC B sets Z
	assert.Equal(t, uint8(2), c.Step())
	assert.Equal(t, uint8(0x80), c.F)

	// SWAP A
	c.A = 0xF1
	c.Step()
	assert.Equal(t, uint8(0x1F), c.A)
	assert.Equal(t, uint8(0x00), c.F)
}

func TestCPU_CBMemory(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0x1E, 0xCB, 0x46, 0xCB, 0xC6)
	c.HL.SetUint16(0xC000)
	bus[0xC000] = 0x01
	c.F = 0x10

	// RR (HL)
	assert.Equal(t, uint8(4), c.Step())
	assert.Equal(t, uint8(0x80), bus[0xC000])
	assert.Equal(t, uint8(0x10), c.F)

	// BIT 0, (HL)
	assert.Equal(t, uint8(3), c.Step())
	assert.Equal(t, uint8(0xB0), c.F, "Z set, H set, C kept")

	// SET 0, (HL)
	assert.Equal(t, uint8(4), c.Step())
	assert.Equal(t, uint8(0x81), bus[0xC000])
}

func TestCPU_Loads(t *testing.T) {
	c, bus := newTestCPU(
		0x21, 0x00, 0xC0, // LD HL, 0xC000
		0x3E, 0x42, //       LD A, 0x42
		0x22, //             LD (HL+), A
		0x32, //             LD (HL-), A
		0x08, 0x10, 0xC0, // LD (0xC010), SP
		0xE0, 0x80, //       LDH (0x80), A
		0xF1, //             POP AF
	)
	assert.Equal(t, uint8(3), c.Step())
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())
	assert.Equal(t, uint8(2), c.Step())
	c.Step()
	assert.Equal(t, uint8(0x42), bus[0xC000])
	assert.Equal(t, uint16(0xC001), c.HL.Uint16())
	c.Step()
	assert.Equal(t, uint8(0x42), bus[0xC001])
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())

	assert.Equal(t, uint8(5), c.Step())
	assert.Equal(t, uint8(0xFE), bus[0xC010])
	assert.Equal(t, uint8(0xFF), bus[0xC011])

	assert.Equal(t, uint8(3), c.Step())
	assert.Equal(t, uint8(0x42), bus[0xFF80])

	// the low nibble of F can never be set
	bus[0xFFFE], bus[0xFFFF] = 0xFF, 0x12
	c.SP = 0xFFFE
	c.Step()
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16())
}

func TestCPU_BranchCycles(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		flags   uint8
		cycles  uint8
		pc      uint16
	}{
		{"JR NZ taken", []uint8{0x20, 0x02}, 0x00, 3, 0x0104},
		{"JR NZ not taken", []uint8{0x20, 0x02}, 0x80, 2, 0x0102},
		{"JR backwards", []uint8{0x18, 0xFE}, 0x00, 3, 0x0100},
		{"JP Z taken", []uint8{0xCA, 0x00, 0x02}, 0x80, 4, 0x0200},
		{"JP Z not taken", []uint8{0xCA, 0x00, 0x02}, 0x00, 3, 0x0103},
		{"CALL C taken", []uint8{0xDC, 0x00, 0x02}, 0x10, 6, 0x0200},
		{"CALL C not taken", []uint8{0xDC, 0x00, 0x02}, 0x00, 3, 0x0103},
		{"RET NC not taken", []uint8{0xD0}, 0x10, 2, 0x0101},
		{"JP HL", []uint8{0xE9}, 0x00, 1, 0x0300},
		{"RST 38h", []uint8{0xFF}, 0x00, 4, 0x0038},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.program...)
			c.F = tt.flags
			c.HL.SetUint16(0x0300)
			assert.Equal(t, tt.cycles, c.Step())
			assert.Equal(t, tt.pc, c.PC)
		})
	}
}

func TestCPU_CallReturn(t *testing.T) {
	c, bus := newTestCPU(0xCD, 0x00, 0x02) // CALL 0x0200
	bus[0x0200] = 0xC8                     // RET Z
	c.F = 0x80

	c.Step()
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x01), bus[0xFFFD])
	assert.Equal(t, uint8(0x03), bus[0xFFFC])

	assert.Equal(t, uint8(5), c.Step())
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestCPU_Interrupts(t *testing.T) {
	c, bus := newTestCPU(0x00)
	c.IME = true
	c.irq.Enable = interrupts.TimerFlag | interrupts.VBlankFlag
	c.irq.Request(interrupts.TimerFlag)
	c.irq.Request(interrupts.VBlankFlag)

	assert.Equal(t, uint8(5), c.Step())
	assert.Equal(t, uint16(0x0040), c.PC, "V-blank has priority")
	assert.False(t, c.IME)
	assert.Equal(t, uint8(interrupts.TimerFlag), c.irq.Flag)
	assert.Equal(t, uint8(0x01), bus[0xFFFD])
	assert.Equal(t, uint8(0x00), bus[0xFFFC])

	// RETI enables IME immediately
	bus[0x0040] = 0xD9
	c.Step()
	assert.True(t, c.IME)
	assert.Equal(t, uint16(0x0100), c.PC)
	assert.Equal(t, uint8(5), c.Step())
	assert.Equal(t, uint16(0x0050), c.PC)
}

func TestCPU_EIDelay(t *testing.T) {
	c, _ := newTestCPU(0xFB, 0x00, 0x00) // EI; NOP; NOP
	c.irq.Enable = interrupts.VBlankFlag
	c.irq.Request(interrupts.VBlankFlag)

	c.Step()
	assert.False(t, c.IME, "EI takes effect after the next instruction")
	c.Step()
	assert.True(t, c.IME)
	assert.Equal(t, uint16(0x0102), c.PC)
	assert.Equal(t, uint8(5), c.Step())
	assert.Equal(t, uint16(0x0040), c.PC)
}

func TestCPU_DICancelsEI(t *testing.T) {
	c, _ := newTestCPU(0xFB, 0xF3, 0x00) // EI; DI; NOP
	c.Step()
	c.Step()
	c.Step()
	assert.False(t, c.IME)
}

func TestCPU_Halt(t *testing.T) {
	c, _ := newTestCPU(0x76, 0x3C) // HALT; INC A
	c.A = 0
	c.Step()
	require.Equal(t, ModeHalt, c.Mode())

	for i := 0; i < 10; i++ {
		assert.Equal(t, uint8(1), c.Step())
	}
	assert.Equal(t, uint8(0), c.A)

	// an enabled interrupt wakes the CPU even with IME clear
	c.irq.Enable = interrupts.TimerFlag
	c.irq.Request(interrupts.TimerFlag)
	c.Step()
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Equal(t, uint8(1), c.A)
}

func TestCPU_HaltBug(t *testing.T) {
	c, _ := newTestCPU(0x76, 0x3C, 0x00) // HALT; INC A; NOP
	c.A = 0
	c.irq.Enable = interrupts.TimerFlag
	c.irq.Request(interrupts.TimerFlag)

	c.Step()
	assert.Equal(t, ModeNormal, c.Mode())
	c.Step()
	c.Step()
	assert.Equal(t, uint8(2), c.A, "the byte after HALT is executed twice")
	assert.Equal(t, uint16(0x0102), c.PC)
}

func TestCPU_HaltBugInterrupt(t *testing.T) {
	c, bus := newTestCPU(0xFB, 0x76) // EI; HALT
	bus[0x0040] = 0x04               // INC B
	bus[0x0041] = 0xD9               // RETI
	c.B = 0
	c.irq.Enable = interrupts.VBlankFlag
	c.irq.Request(interrupts.VBlankFlag)

	c.Step() // EI
	c.Step() // HALT, with IME still clear
	c.Step() // dispatch
	assert.Equal(t, uint16(0x0040), c.PC)
	assert.Equal(t, uint16(0x0101), bus.Read16(c.SP), "returns to the HALT")

	c.Step() // INC B
	c.Step() // RETI
	assert.Equal(t, uint8(1), c.B, "the handler runs once")
	assert.Equal(t, uint16(0x0101), c.PC)

	c.Step() // HALT again, nothing pending
	assert.Equal(t, ModeHalt, c.Mode())
}

func TestCPU_Stop(t *testing.T) {
	c, _ := newTestCPU(0x10, 0x00, 0x3C) // STOP; INC A
	stopped := false
	c.OnStop = func() { stopped = true }
	c.A = 0

	c.Step()
	assert.True(t, stopped)
	assert.Equal(t, ModeStop, c.Mode())
	assert.Equal(t, uint16(0x0102), c.PC)
	c.Step()
	assert.Equal(t, uint8(0), c.A)

	c.irq.Request(interrupts.JoypadFlag)
	c.Step()
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Equal(t, uint8(1), c.A)
}

func TestCPU_IllegalOpcode(t *testing.T) {
	buf := &bytes.Buffer{}
	bus := &testBus{}
	bus[0x0100] = 0xD3
	c := NewCPU(bus, interrupts.NewService(&types.HardwareRegisters{}), log.NewWithWriter(buf, logrus.ErrorLevel))

	c.Step()
	assert.Equal(t, ModeLocked, c.Mode())
	for i := 0; i < 5; i++ {
		assert.Equal(t, uint8(1), c.Step())
	}
	assert.Equal(t, uint16(0x0101), c.PC)
	assert.Equal(t, 1, strings.Count(buf.String(), "illegal opcode"))
}

func TestCPU_State(t *testing.T) {
	c, _ := newTestCPU()
	c.A, c.F, c.B, c.L = 0x12, 0xB0, 0x34, 0x56
	c.SP, c.PC = 0xDFF0, 0x1234
	c.IME = true
	c.mode = ModeHalt

	s := types.NewState()
	c.Save(s)

	restored, _ := newTestCPU()
	loaded := types.StateFromBytes(s.Bytes())
	restored.Load(loaded)
	require.NoError(t, loaded.Err())
	assert.Equal(t, 0, loaded.Remaining())
	assert.Equal(t, c.AF.Uint16(), restored.AF.Uint16())
	assert.Equal(t, c.BC.Uint16(), restored.BC.Uint16())
	assert.Equal(t, c.L, restored.L)
	assert.Equal(t, c.SP, restored.SP)
	assert.Equal(t, c.PC, restored.PC)
	assert.True(t, restored.IME)
	assert.Equal(t, ModeHalt, restored.Mode())
}
