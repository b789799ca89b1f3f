package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// writeROM writes a 32kB ROM that spins at 0x0100 and returns its path.
func writeROM(t *testing.T, dir string) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []byte{0x18, 0xFE}) // JR -2
	copy(rom[0x0134:], "SPIN")
	path := filepath.Join(dir, "spin.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func testConfig(dir string) config {
	return config{
		saves:       filepath.Join(dir, "saves"),
		paletteName: "greyscale",
		model:       "auto",
		scale:       1,
	}
}

func TestStart_NoROM(t *testing.T) {
	err := start(log.NewNullLogger(), testConfig(t.TempDir()))
	assert.EqualError(t, err, "no rom file given, use -rom")
}

func TestStart_ReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.romFile = writeROM(t, dir)
	cfg.serialOut = filepath.Join(dir, "serial.txt")
	cfg.state = filepath.Join(dir, "missing.state")

	// the failure comes back to the caller once the capture file is open
	assert.Error(t, start(log.NewNullLogger(), cfg))
	assert.FileExists(t, cfg.serialOut)

	cfg.state = ""
	cfg.model = "cgb"
	assert.EqualError(t, start(log.NewNullLogger(), cfg), `unknown model "cgb"`)
}

func TestStart_Frames(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.romFile = writeROM(t, dir)
	cfg.frames = 2
	cfg.serialOut = filepath.Join(dir, "serial.txt")
	cfg.screenshot = filepath.Join(dir, "last.png")
	cfg.saveState = filepath.Join(dir, "spin.state")

	require.NoError(t, start(log.NewNullLogger(), cfg))
	assert.FileExists(t, cfg.screenshot)
	assert.FileExists(t, cfg.saveState)
}
