package emu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "states"))

	s := types.NewState()
	s.Write16(0x0150)
	s.WriteData(make([]byte, 0x2000))
	s.Write8(0x42)
	require.NoError(t, store.SaveState("game.state", s))

	loaded, err := store.LoadState("game.state")
	require.NoError(t, err)
	assert.Equal(t, s.Bytes(), loaded.Bytes())
	assert.Equal(t, uint16(0x0150), loaded.Read16())

	// no temporary files left behind
	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDecode(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	data, err := Encode(raw, 5)
	require.NoError(t, err)

	_, err = Decode([]byte("nope"))
	assert.ErrorIs(t, err, ErrBadMagic)

	corrupt := append([]byte(nil), data...)
	corrupt[4] ^= 0xFF
	_, err = Decode(corrupt)
	assert.ErrorIs(t, err, ErrChecksum)

	_, err = Decode(data[:headerSize+1])
	assert.Error(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestFileStore_Missing(t *testing.T) {
	_, err := NewFileStore(t.TempDir()).LoadState("missing.state")
	assert.True(t, os.IsNotExist(err))
}

func testCart(t *testing.T, cartType cartridge.Type) cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0134:], "SAVE TEST")
	rom[0x0147] = byte(cartType)
	cart, err := cartridge.New(rom)
	require.NoError(t, err)
	return cart
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	cart := testCart(t, cartridge.ROMRAMBATT)
	save := NewSave(dir, cart.Title())
	assert.Equal(t, filepath.Join(dir, "SAVE_TEST.sav"), save.Path)

	// nothing saved yet
	require.NoError(t, save.Load(cart))

	cart.Write(0xA000, 0x12)
	cart.Write(0xBFFF, 0x34)
	require.NoError(t, save.Store(cart))

	restored := testCart(t, cartridge.ROMRAMBATT)
	require.NoError(t, save.Load(restored))
	assert.Equal(t, uint8(0x12), restored.Read(0xA000))
	assert.Equal(t, uint8(0x34), restored.Read(0xBFFF))
}

func TestSave_WrongSize(t *testing.T) {
	dir := t.TempDir()
	cart := testCart(t, cartridge.ROMRAMBATT)
	save := NewSave(dir, cart.Title())
	require.NoError(t, os.WriteFile(save.Path, []byte{1, 2, 3}, 0644))
	assert.Error(t, save.Load(cart))
}

func TestSave_NoBattery(t *testing.T) {
	dir := t.TempDir()
	cart := testCart(t, cartridge.ROMRAM)
	save := NewSave(dir, cart.Title())
	require.NoError(t, save.Store(cart))
	_, err := os.Stat(save.Path)
	assert.True(t, os.IsNotExist(err))
}
