package mmu

import (
	"errors"
	"fmt"
)

// ErrNoCartridge is wrapped by the ConfigError raised when the
// cartridge address space is accessed with no cartridge inserted.
var ErrNoCartridge = errors.New("no cartridge loaded")

// ConfigError reports a memory access that the current configuration
// of the bus cannot serve. The bus panics with a *ConfigError, as the
// access happens in the middle of an instruction, and the session
// recovers it at the frame boundary.
type ConfigError struct {
	Op      string // "read" or "write"
	Address uint16
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mmu: %s 0x%04X: %v", e.Op, e.Address, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
