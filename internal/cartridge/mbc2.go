package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge2 represents a MBC2 cartridge, with up to 256KB
// of ROM and 512 half-bytes of built-in RAM.
//
// Both registers live in 0x0000-0x3FFF and are told apart by bit 8
// of the address: clear selects the RAM enable, set selects the ROM
// bank.
type MemoryBankedCartridge2 struct {
	baseCartridge

	ramg bool
	romb uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte, header Header) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		baseCartridge: baseCartridge{
			rom:    rom,
			ram:    make([]byte, 512),
			header: header,
		},
		romb: 0x01,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected. The RAM is mirrored through the whole 0xA000-0xBFFF window and
// its upper nibble reads back as 1s.
func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(int(m.romb), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg {
			return 0xFF
		}
		return m.ram[address&0x01FF] | 0xF0
	}
	return 0xFF
}

func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x100 == 0x100 {
			m.romb = value & 0x0F
			if m.romb == 0 {
				m.romb = 1
			}
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramg {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge2)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - romb (uint8)
//   - ramg (bool)
//   - ram ([512]byte)
func (m *MemoryBankedCartridge2) Load(s *types.State) {
	m.romb = s.Read8()
	m.ramg = s.ReadBool()
	s.ReadData(m.ram)
}

// Save implements the types.Stater interface.
func (m *MemoryBankedCartridge2) Save(s *types.State) {
	s.Write8(m.romb)
	s.WriteBool(m.ramg)
	s.WriteData(m.ram)
}
