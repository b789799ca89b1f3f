// Package tests runs the public hardware test ROMs against the emulator.
// The ROMs are not distributed with the source: place them under roms/
// (or point DMGCORE_ROMS at a copy) and every suite whose ROMs are
// missing is skipped.
package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// romDir returns the directory the test ROMs live in.
func romDir() string {
	if dir := os.Getenv("DMGCORE_ROMS"); dir != "" {
		return dir
	}
	return "roms"
}

// loadROM loads a test ROM, skipping the test when it is missing.
func loadROM(t *testing.T, path string) []byte {
	t.Helper()
	path = filepath.Join(romDir(), path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("%s not found", path)
	}
	b, err := utils.LoadFile(path)
	require.NoError(t, err)
	return b
}

// runUntil runs g for at most frames frames, stopping early once done
// returns true. It reports whether done was satisfied.
func runUntil(t *testing.T, g *gameboy.GameBoy, frames int, done func() bool) bool {
	t.Helper()
	for i := 0; i < frames; i++ {
		require.NoError(t, g.Frame())
		if done() {
			return true
		}
	}
	return false
}

// framesPerSecond is the number of frames in an emulated second.
const framesPerSecond = gameboy.ClockSpeed / gameboy.CyclesPerFrame
