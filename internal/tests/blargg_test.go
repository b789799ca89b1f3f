package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/serial"
)

// testBlarggROM runs one of blargg's ROMs, which print their result
// over the serial port, ending with "Passed" or "Failed".
func testBlarggROM(t *testing.T, romFile string, seconds int) {
	rom := loadROM(t, romFile)

	var out bytes.Buffer
	g, err := gameboy.New(rom, gameboy.WithSerial(serial.NewCapture(&out)))
	require.NoError(t, err)

	runUntil(t, g, seconds*framesPerSecond, func() bool {
		s := out.String()
		return strings.Contains(s, "Passed") || strings.Contains(s, "Failed")
	})
	assert.Contains(t, out.String(), "Passed", out.String())
}

func TestBlargg_CPUInstrs(t *testing.T) {
	for _, rom := range []string{
		"01-special.gb",
		"02-interrupts.gb",
		"03-op sp,hl.gb",
		"04-op r,imm.gb",
		"05-op rp.gb",
		"06-ld r,r.gb",
		"07-jr,jp,call,ret,rst.gb",
		"08-misc instrs.gb",
		"09-op r,r.gb",
		"10-bit ops.gb",
		"11-op a,(hl).gb",
	} {
		rom := rom
		t.Run(rom, func(t *testing.T) {
			testBlarggROM(t, "blargg/cpu_instrs/individual/"+rom, 30)
		})
	}
}

func TestBlargg_InstrTiming(t *testing.T) {
	testBlarggROM(t, "blargg/instr_timing/instr_timing.gb", 10)
}
