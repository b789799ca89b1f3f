package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// ROMCartridge represents a cartridge without a bank controller. The
// 32KB ROM is mapped directly, and ROM+RAM parts map a fixed 8KB of
// RAM that is always accessible, as there is no register to gate it.
type ROMCartridge struct {
	baseCartridge
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header Header) *ROMCartridge {
	r := &ROMCartridge{baseCartridge{rom: rom, header: header}}
	if header.CartridgeType != ROM {
		r.ram = make([]byte, 0x2000)
	}
	return r
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address < 0x8000 {
		return r.rom[address]
	}
	if off := r.ramOffset(0, address); off >= 0 {
		return r.ram[off]
	}
	return 0xFF
}

// Write writes to the fixed RAM, writes to ROM are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address < 0x8000 {
		return
	}
	if off := r.ramOffset(0, address); off >= 0 {
		r.ram[off] = value
	}
}

// Load implements the types.Stater interface.
func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

// Save implements the types.Stater interface.
func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
