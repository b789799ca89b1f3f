package sgb

import "fmt"

// UnhandledCommandError is recorded when software sends a command
// that is not implemented.
type UnhandledCommandError struct {
	Command Command
	Length  uint8 // number of packets
}

func (e *UnhandledCommandError) Error() string {
	return fmt.Sprintf("sgb: unhandled command %s (%d packets)", CommandName(e.Command), e.Length)
}
