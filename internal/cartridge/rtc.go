package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// RTC register numbers, as written to 0x4000-0x5FFF of a MBC3.
const (
	RTCSeconds  uint8 = 0x08
	RTCMinutes  uint8 = 0x09
	RTCHours    uint8 = 0x0A
	RTCDaysLow  uint8 = 0x0B
	RTCDaysHigh uint8 = 0x0C
)

const (
	rtcDayHigh = types.Bit0
	rtcHalt    = types.Bit6
	rtcCarry   = types.Bit7

	// rtcMaxDay is the last day before the counter wraps to 0
	// and sets the carry flag.
	rtcMaxDay = 365
)

// RTC is the real time clock of a MBC3 cartridge. It keeps live
// counters, which advance once per emulated second, and a latched copy
// of them, which is what the game reads back.
type RTC struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8
	Days    uint16 // 9-bit day counter
	Halt    bool
	Carry   bool

	latched [5]uint8

	// LatchFlagValue is the last value written to 0x6000-0x7FFF.
	LatchFlagValue uint8
}

func newRTC() *RTC {
	// a fresh latch flag that is neither 0 nor 1, so the first
	// write of 1 does not latch
	return &RTC{LatchFlagValue: 0xFF}
}

// Tick advances the live counters by one second, unless halted.
func (r *RTC) Tick() {
	if r.Halt {
		return
	}
	r.Seconds = (r.Seconds + 1) & 0x3F
	if r.Seconds != 60 {
		return
	}
	r.Seconds = 0
	r.Minutes = (r.Minutes + 1) & 0x3F
	if r.Minutes != 60 {
		return
	}
	r.Minutes = 0
	r.Hours = (r.Hours + 1) & 0x1F
	if r.Hours != 24 {
		return
	}
	r.Hours = 0
	r.Days = (r.Days + 1) & 0x1FF
	if r.Days > rtcMaxDay {
		r.Days = 0
		r.Carry = true
	}
}

// WriteLatch handles a write to the latch control register. Writing 0
// followed by 1 copies the live counters into the latched registers.
func (r *RTC) WriteLatch(value uint8) {
	if r.LatchFlagValue == 0x00 && value == 0x01 {
		r.Latch()
	}
	r.LatchFlagValue = value
}

// Latch copies the live counters into the latched registers.
func (r *RTC) Latch() {
	for i := range r.latched {
		r.latched[i] = r.live(RTCSeconds + uint8(i))
	}
}

// Latched returns the latched value of the given register.
func (r *RTC) Latched(register uint8) uint8 {
	if register < RTCSeconds || register > RTCDaysHigh {
		return 0xFF
	}
	return r.latched[register-RTCSeconds]
}

func (r *RTC) live(register uint8) uint8 {
	switch register {
	case RTCSeconds:
		return r.Seconds
	case RTCMinutes:
		return r.Minutes
	case RTCHours:
		return r.Hours
	case RTCDaysLow:
		return uint8(r.Days)
	case RTCDaysHigh:
		v := uint8(r.Days>>8) & rtcDayHigh
		if r.Halt {
			v |= rtcHalt
		}
		if r.Carry {
			v |= rtcCarry
		}
		return v
	}
	return 0xFF
}

// Write sets the given register. The live counter and its latched
// copy are both updated, so the write is visible immediately.
func (r *RTC) Write(register, value uint8) {
	switch register {
	case RTCSeconds:
		r.Seconds = value & 0x3F
	case RTCMinutes:
		r.Minutes = value & 0x3F
	case RTCHours:
		r.Hours = value & 0x1F
	case RTCDaysLow:
		r.Days = r.Days&0x100 | uint16(value)
	case RTCDaysHigh:
		r.Days = r.Days&0xFF | uint16(value&rtcDayHigh)<<8
		r.Halt = value&rtcHalt != 0
		r.Carry = value&rtcCarry != 0
	default:
		return
	}
	r.latched[register-RTCSeconds] = r.live(register)
}

var _ types.Stater = (*RTC)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Seconds, Minutes, Hours (uint8)
//   - Days (uint16)
//   - Halt, Carry (bool)
//   - latched ([5]uint8)
//   - LatchFlagValue (uint8)
func (r *RTC) Load(s *types.State) {
	r.Seconds = s.Read8()
	r.Minutes = s.Read8()
	r.Hours = s.Read8()
	r.Days = s.Read16()
	r.Halt = s.ReadBool()
	r.Carry = s.ReadBool()
	s.ReadData(r.latched[:])
	r.LatchFlagValue = s.Read8()
}

// Save implements the types.Stater interface.
func (r *RTC) Save(s *types.State) {
	s.Write8(r.Seconds)
	s.Write8(r.Minutes)
	s.Write8(r.Hours)
	s.Write16(r.Days)
	s.WriteBool(r.Halt)
	s.WriteBool(r.Carry)
	s.WriteData(r.latched[:])
	s.Write8(r.LatchFlagValue)
}
