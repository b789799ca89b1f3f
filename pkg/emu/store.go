// Package emu persists emulator state on the host: compressed snapshot
// files and battery backed cartridge RAM.
package emu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrBadMagic is returned when a file is not a snapshot.
	ErrBadMagic = errors.New("emu: not a snapshot file")
	// ErrChecksum is returned when a snapshot fails verification.
	ErrChecksum = errors.New("emu: snapshot checksum mismatch")
)

// magic identifies snapshot files.
var magic = []byte("DMGS")

const headerSize = 4 + 8

// StateStore stores snapshots by name.
type StateStore interface {
	SaveState(name string, s *types.State) error
	LoadState(name string) (*types.State, error)
}

// FileStore is a StateStore keeping each snapshot in its own file in
// Dir. A file holds the magic, the xxhash of the snapshot and the
// brotli compressed snapshot.
type FileStore struct {
	Dir     string
	Quality int
}

// NewFileStore returns a FileStore writing to dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir, Quality: 9}
}

func (f *FileStore) path(name string) string {
	if filepath.IsAbs(name) || f.Dir == "" {
		return name
	}
	return filepath.Join(f.Dir, name)
}

// SaveState implements StateStore.
func (f *FileStore) SaveState(name string, s *types.State) error {
	data, err := Encode(s.Bytes(), f.Quality)
	if err != nil {
		return err
	}
	return writeAtomic(f.path(name), data)
}

// LoadState implements StateStore.
func (f *FileStore) LoadState(name string) (*types.State, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		return nil, err
	}
	raw, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return types.StateFromBytes(raw), nil
}

// Encode wraps a raw snapshot in the snapshot file format.
func Encode(raw []byte, quality int) ([]byte, error) {
	compressed, err := cbrotli.Encode(raw, cbrotli.WriterOptions{
		Quality: quality,
	})
	if err != nil {
		return nil, fmt.Errorf("emu: compressing snapshot: %w", err)
	}

	out := make([]byte, headerSize, headerSize+len(compressed))
	copy(out, magic)
	binary.LittleEndian.PutUint64(out[4:], xxhash.Sum64(raw))
	return append(out, compressed...), nil
}

// Decode unwraps a snapshot file, verifying its checksum.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return nil, ErrBadMagic
	}
	raw, err := cbrotli.Decode(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("emu: decompressing snapshot: %w", err)
	}
	if xxhash.Sum64(raw) != binary.LittleEndian.Uint64(data[4:]) {
		return nil, ErrChecksum
	}
	return raw, nil
}

// writeAtomic writes data to a temporary file next to path and renames
// it over path, so a crash never leaves a partial file behind.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
