package mmu

import "github.com/thelolagemann/dmgcore/internal/types"

// WRAM is the 32kB of work RAM, split into 8 banks of 4kB. Bank 0 is
// always mapped at 0xC000-0xCFFF, and 0xD000-0xDFFF holds the bank
// selected by SVBK, which only a colour model can change.
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8

	colour bool
}

// NewWRAM returns a new WRAM, installing SVBK in h.
func NewWRAM(h *types.HardwareRegisters) *WRAM {
	w := &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
	}
	h.Register(types.SVBK, func() uint8 {
		if !w.colour {
			return 0xFF
		}
		return w.bank | 0xF8
	}, func(v uint8) {
		if !w.colour {
			return
		}
		v &= 0x07 // only 3 bits are used
		if v == 0 {
			v = 1
		}
		w.bank = v
	})
	return w
}

// Read returns the byte at addr, which may be in 0xC000-0xFDFF. The
// echo region 0xE000-0xFDFF mirrors 0xC000-0xDDFF.
func (w *WRAM) Read(addr uint16) uint8 {
	// are we reading from the fixed bank?
	if addr&0x1000 == 0 {
		return w.raw[0][addr&0xFFF]
	}
	return w.raw[w.bank][addr&0xFFF]
}

// Write writes v to addr, which may be in 0xC000-0xFDFF.
func (w *WRAM) Write(addr uint16, v uint8) {
	// are we writing to the fixed bank?
	if addr&0x1000 == 0 {
		w.raw[0][addr&0xFFF] = v
		return
	}
	w.raw[w.bank][addr&0xFFF] = v
}

// Reset clears every bank and maps bank 1.
func (w *WRAM) Reset() {
	w.raw = [8][0x1000]uint8{}
	w.bank = 1
}

// Load restores the WRAM from s.
func (w *WRAM) Load(s *types.State) {
	w.bank = s.Read8()
	if w.bank == 0 || w.bank > 7 {
		w.bank = 1
	}
	for i := range w.raw {
		s.ReadData(w.raw[i][:])
	}
}

// Save writes the WRAM to s.
func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for i := range w.raw {
		s.WriteData(w.raw[i][:])
	}
}
