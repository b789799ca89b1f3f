package types

import (
	"errors"
	"fmt"
)

var (
	// ErrStateExhausted is recorded when a read runs past the end
	// of the state stream.
	ErrStateExhausted = errors.New("state: stream exhausted")
	// ErrValueOutOfRange is recorded when a byte or word value
	// written to the stream does not fit its field.
	ErrValueOutOfRange = errors.New("state: value out of range")
)

// Resettable is an interface that allows an object to be reset.
type Resettable interface {
	Reset() // Reset the state of the object
}

// State is a sequential little-endian byte stream used to save and
// load the emulated session. Components write their fields in a fixed
// order with Save and read them back in the same order with Load.
//
// Errors are sticky: once a read runs past the end of the stream or a
// value is written out of range, Err reports the first failure, reads
// return zero values and further writes are dropped.
type State struct {
	raw           []byte // raw state data (for serialization)
	readPosition  int    // current read position
	writePosition int    // current write position

	err error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x8000),
	}
}

// StateFromBytes creates a new state from the given bytes, positioned
// at the start of the stream.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// ResetPosition resets the read and write positions and clears any
// recorded error, allowing the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.writePosition = 0
	s.err = nil
}

// Err returns the first error encountered while reading or writing.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of unread bytes.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

// Len returns the number of bytes in the stream.
func (s *State) Len() int {
	return len(s.raw)
}

func (s *State) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *State) Write8(value uint8) {
	if s.err != nil {
		return
	}
	s.raw = append(s.raw, value)
	s.writePosition++
}

func (s *State) Write16(value uint16) {
	if s.err != nil {
		return
	}
	s.raw = append(s.raw, byte(value), byte(value>>8))
	s.writePosition += 2
}

func (s *State) Write32(value uint32) {
	if s.err != nil {
		return
	}
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	s.writePosition += 4
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.Write8(1)
	} else {
		s.Write8(0)
	}
}

func (s *State) WriteData(data []byte) {
	if s.err != nil {
		return
	}
	s.raw = append(s.raw, data...)
	s.writePosition += len(data)
}

// WriteByteValue writes v as a single byte, recording
// ErrValueOutOfRange if v is outside 0-255.
func (s *State) WriteByteValue(v int) {
	if v < 0 || v > 0xFF {
		s.fail(fmt.Errorf("%w: byte %d", ErrValueOutOfRange, v))
		return
	}
	s.Write8(uint8(v))
}

// WriteWordValue writes v as a little-endian word, recording
// ErrValueOutOfRange if v is outside 0-65535.
func (s *State) WriteWordValue(v int) {
	if v < 0 || v > 0xFFFF {
		s.fail(fmt.Errorf("%w: word %d", ErrValueOutOfRange, v))
		return
	}
	s.Write16(uint16(v))
}

// take returns the next n bytes of the stream, or nil if fewer
// than n remain.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.fail(fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrStateExhausted, n, s.readPosition, len(s.raw)-s.readPosition))
		s.readPosition = len(s.raw)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	return uint64(lo) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData fills p from the stream. If fewer than len(p) bytes remain,
// p is left untouched and ErrStateExhausted is recorded.
func (s *State) ReadData(p []byte) {
	b := s.take(len(p))
	if b == nil {
		return
	}
	copy(p, b)
}

// Bytes returns the raw stream.
func (s *State) Bytes() []byte {
	return s.raw
}
