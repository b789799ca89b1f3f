package interrupts

import (
	"math/bits"

	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is requested every time the graphics
	// controller enters V-blank (LY == 144).
	VBlankFlag = types.Bit0
	// LCDFlag is requested by the sources selected in
	// types.STAT.
	LCDFlag = types.Bit1
	// TimerFlag is requested when types.TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is requested when a serial transfer
	// completes.
	SerialFlag = types.Bit3
	// JoypadFlag is requested when a button is pressed.
	JoypadFlag = types.Bit4
)

// Service holds the interrupt request (IF) and interrupt
// enable (IE) registers. An interrupt is eligible for
// dispatch when its bit is set in both; the CPU decides
// whether to dispatch it based on its own IME flag.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service with its registers
// installed in h.
func NewService(h *types.HardwareRegisters) *Service {
	s := &Service{}
	h.Register(types.IF,
		func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		}, func(v uint8) {
			s.Flag = v & 0x1F
		},
	)
	h.Register(types.IE,
		func() uint8 {
			return s.Enable
		}, func(v uint8) {
			s.Enable = v
		},
	)

	return s
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Vector clears the highest priority pending interrupt and
// returns its vector, or 0 if nothing is pending. Lower bits
// have priority, V-blank first.
func (s *Service) Vector() uint16 {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0
	}
	i := uint8(bits.TrailingZeros8(pending))
	s.Flag &^= 1 << i
	return 0x0040 + uint16(i)*8
}

// Reset clears both registers.
func (s *Service) Reset() {
	s.Flag = 0
	s.Enable = 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
