package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge1 represents a MBC1 cartridge, with up to 2MB
// of ROM and 32KB of external RAM.
//
//	0x0000-0x1FFF - RAM enable (0x0A in the low nibble enables)
//	0x2000-0x3FFF - ROM bank, lower 5 bits (0 selects 1)
//	0x4000-0x5FFF - 2-bit field: ROM bank bits 5-6 or RAM bank
//	0x6000-0x7FFF - banking mode (0 = ROM banking, 1 = RAM banking)
type MemoryBankedCartridge1 struct {
	baseCartridge

	romBank    uint8 // lower 5 bits of the ROM bank
	bank2      uint8 // 2-bit field written to 0x4000-0x5FFF
	ramEnabled bool
	ramBanking bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		baseCartridge: baseCartridge{
			rom:    rom,
			ram:    make([]byte, header.RAMSize),
			header: header,
		},
		romBank: 1,
	}
}

// ROMBank returns the bank mapped at 0x4000-0x7FFF.
func (m *MemoryBankedCartridge1) ROMBank() int {
	if m.ramBanking {
		return int(m.romBank) % m.romBanks()
	}
	return (int(m.bank2)<<5 | int(m.romBank)) % m.romBanks()
}

// RAMBank returns the bank mapped at 0xA000-0xBFFF.
func (m *MemoryBankedCartridge1) RAMBank() int {
	if m.ramBanking {
		return int(m.bank2)
	}
	return 0
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(m.ROMBank(), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if off := m.ramOffset(m.RAMBank(), address); off >= 0 {
			return m.ram[off]
		}
	}
	return 0xFF
}

// Write updates the bank registers or the selected RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x1F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.ramBanking = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if off := m.ramOffset(m.RAMBank(), address); off >= 0 {
			m.ram[off] = value
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - romBank (uint8)
//   - bank2 (uint8)
//   - ramEnabled (bool)
//   - ramBanking (bool)
//   - ram ([]byte)
func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.romBank = s.Read8()
	m.bank2 = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.ramBanking = s.ReadBool()
	s.ReadData(m.ram)
}

// Save implements the types.Stater interface.
func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.romBank)
	s.Write8(m.bank2)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.ramBanking)
	s.WriteData(m.ram)
}
