package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge3 represents a MBC3 cartridge, with up to 4MB of
// ROM, 32KB of external RAM and, on the TIMER variants, a real time clock.
//
//	0x0000-0x1FFF - RAM and RTC enable (0x0A in the low nibble enables)
//	0x2000-0x3FFF - ROM bank, 8 bits (0 selects 1)
//	0x4000-0x5FFF - RAM bank (0x00-0x03) or RTC register (0x08-0x0C)
//	0x6000-0x7FFF - latch clock data (write 0 then 1)
type MemoryBankedCartridge3 struct {
	baseCartridge

	romBank    uint8
	ramBank    uint8 // RAM bank, or the selected RTC register when >= 0x08
	ramEnabled bool

	rtc *RTC
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header Header) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		baseCartridge: baseCartridge{
			rom:    rom,
			ram:    make([]byte, header.RAMSize),
			header: header,
		},
		romBank: 1,
	}
	if header.CartridgeType == MBC3TIMERBATT || header.CartridgeType == MBC3TIMERRAMBATT {
		m.rtc = newRTC()
	}
	return m
}

// RTC returns the real time clock, or nil if the cartridge has none.
func (m *MemoryBankedCartridge3) RTC() *RTC {
	return m.rtc
}

// TickSecond implements the Clock interface.
func (m *MemoryBankedCartridge3) TickSecond() {
	if m.rtc != nil {
		m.rtc.Tick()
	}
}

func (m *MemoryBankedCartridge3) rtcSelected() bool {
	return m.ramBank >= RTCSeconds
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.rtcSelected() {
			if m.rtc == nil {
				return 0xFF
			}
			return m.rtc.Latched(m.ramBank)
		}
		if off := m.ramOffset(int(m.ramBank), address); off >= 0 {
			return m.ram[off]
		}
	}
	return 0xFF
}

// Write updates the bank registers, the clock, or the selected RAM bank.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		if value <= 0x03 || (value >= RTCSeconds && value <= RTCDaysHigh) {
			m.ramBank = value
		}
	case address < 0x8000:
		if m.rtc != nil {
			m.rtc.WriteLatch(value)
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.rtcSelected() {
			if m.rtc != nil {
				m.rtc.Write(m.ramBank, value)
			}
			return
		}
		if off := m.ramOffset(int(m.ramBank), address); off >= 0 {
			m.ram[off] = value
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge3)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - romBank (uint8)
//   - ramBank (uint8)
//   - ramEnabled (bool)
//   - ram ([]byte)
//   - rtc (RTC), when present
func (m *MemoryBankedCartridge3) Load(s *types.State) {
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	s.ReadData(m.ram)
	if m.rtc != nil {
		m.rtc.Load(s)
	}
}

// Save implements the types.Stater interface.
func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.WriteData(m.ram)
	if m.rtc != nil {
		m.rtc.Save(s)
	}
}
