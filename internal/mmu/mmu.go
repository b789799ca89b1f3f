// Package mmu provides a memory management unit for the Game Boy. The
// MMU routes every read and write of the 64kB address space to the
// component that owns it: the cartridge, video memory, work RAM or the
// hardware registers installed by the other components.
package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Video is the video memory of the graphics controller.
type Video interface {
	ReadVRAM(address uint16) uint8
	WriteVRAM(address uint16, value uint8)
	ReadOAM(address uint16) uint8
	WriteOAM(address uint16, value uint8)
}

// P1Listener observes the joypad register. The colour adapter listens
// to P1 writes for its command packets and may replace the value
// software reads back.
type P1Listener interface {
	WriteP1(value uint8)
	ReadP1(value uint8) uint8
}

// ROMPatcher replaces values read from the cartridge ROM, such as a
// Game Genie does.
type ROMPatcher interface {
	Patch(address uint16, value uint8) uint8
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (16kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video Video

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	registers *types.HardwareRegisters
	// passive I/O cells (audio and wave RAM), indexed by address & 0x7F
	io *ram.RAM

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// (0xFFFF) - interrupt enable register, installed in registers

	joypad     joypad.Input
	p1Select   uint8
	P1Listener P1Listener
	Patcher    ROMPatcher
	dma        uint8

	model types.Model
	Log   log.Logger
}

// NewMMU returns a new MMU routing the hardware register space through
// h. Components install their registers in h before or after the MMU
// is created.
func NewMMU(h *types.HardwareRegisters, video Video, input joypad.Input, l log.Logger) *MMU {
	m := &MMU{
		Video:     video,
		wRAM:      NewWRAM(h),
		registers: h,
		io:        ram.NewRAM(0x80),
		zRAM:      ram.NewRAM(0x7F), // 127 bytes
		joypad:    input,
		model:     types.DMGABC,
		Log:       l,
	}

	h.Register(types.BDIS, nil, func(v uint8) {
		// it's assumed any write to this register will disable the boot rom
		if !m.bootROMDone && m.bootROM != nil {
			m.Log.Debugf("boot rom unmapped")
		}
		m.bootROMDone = true
	})

	m.Reset()
	return m
}

// SetCartridge inserts a cartridge.
func (m *MMU) SetCartridge(cart cartridge.Cartridge) {
	m.Cart = cart
}

// SetBootROM maps a boot ROM over the first 256 bytes of the cartridge
// until BDIS is written. A nil ROM removes it.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMMapped reports whether the boot ROM is currently mapped.
func (m *MMU) BootROMMapped() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// SetModel sets the model of the emulated hardware. SVBK only responds
// on colour models.
func (m *MMU) SetModel(model types.Model) {
	m.model = model
	m.wRAM.colour = model.IsColour()
}

// Model returns the model of the emulated hardware.
func (m *MMU) Model() types.Model {
	return m.model
}

// Reset clears the work RAM, HRAM and I/O cells and puts the I/O
// cells in their post boot ROM state.
func (m *MMU) Reset() {
	m.wRAM.Reset()
	m.zRAM.Reset()
	m.io.Reset()
	for address, v := range types.CommonIO {
		if isPassive(address) {
			m.io.Write(address&0x7F, v)
		}
	}
	m.p1Select = 0x30
	m.dma = 0xFF
	m.bootROMDone = m.bootROM == nil
}

// cart returns the inserted cartridge, panicking with a *ConfigError
// if there is none.
func (m *MMU) cart(op string, address uint16) cartridge.Cartridge {
	if m.Cart == nil {
		panic(&ConfigError{Op: op, Address: address, Err: ErrNoCartridge})
	}
	return m.Cart
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if address < boot.Size && m.BootROMMapped() {
		return m.bootROM.Read(address)
	}

	v := m.cart("read", address).Read(address)
	if m.Patcher != nil {
		v = m.Patcher.Patch(address, v)
	}
	return v
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readCart(address)
	case address < 0xA000:
		return m.Video.ReadVRAM(address)
	case address < 0xC000:
		return m.cart("read", address).Read(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.Video.ReadOAM(address)
	case address < 0xFF00:
		// unusable memory
		return 0xFF
	case address < 0xFF80, address == types.IE:
		return m.readIO(address)
	default:
		return m.zRAM.Read(address - 0xFF80)
	}
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000, address >= 0xA000 && address < 0xC000:
		m.cart("write", address).Write(address, value)
	case address < 0xA000:
		m.Video.WriteVRAM(address, value)
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.Video.WriteOAM(address, value)
	case address < 0xFF00:
		// unusable memory
	case address < 0xFF80, address == types.IE:
		m.writeIO(address, value)
	default:
		m.zRAM.Write(address-0xFF80, value)
	}
}

// Read16 reads a little-endian word.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian word.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

func (m *MMU) readIO(address uint16) uint8 {
	switch address {
	case types.P1:
		return m.readP1()
	case types.DMA:
		return m.dma
	}

	if v, ok := m.registers.Read(address); ok {
		return v
	}
	if isPassive(address) {
		return m.io.Read(address & 0x7F)
	}
	return 0xFF
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case types.P1:
		m.p1Select = value & 0x30
		if m.P1Listener != nil {
			m.P1Listener.WriteP1(value)
		}
		return
	case types.DMA:
		m.dma = value
		m.transferOAM(value)
		return
	case types.DIV, types.LY:
		// any write resets the counter
		value = 0
	case types.STAT:
		// the mode and coincidence bits are read only
		if current, ok := m.registers.Read(types.STAT); ok {
			value = value&^0x07 | current&0x07
		}
	}

	if m.registers.Write(address, value) {
		return
	}
	if isPassive(address) {
		m.io.Write(address&0x7F, value)
	}
}

// readP1 returns the joypad register. Bits 4 and 5 select the
// directions and buttons respectively (0 = selected), and the low
// nibble reports the pressed keys of the selected columns.
func (m *MMU) readP1() uint8 {
	v := 0xC0 | m.p1Select | 0x0F
	if m.joypad != nil {
		if m.p1Select&types.Bit4 == 0 {
			v &= 0xF0 | m.joypad.Directions()
		}
		if m.p1Select&types.Bit5 == 0 {
			v &= 0xF0 | m.joypad.Buttons()
		}
	}
	if m.P1Listener != nil {
		v = m.P1Listener.ReadP1(v)
	}
	return v
}

// isPassive reports whether address is an I/O cell that is plain
// storage: the audio registers and wave RAM.
func isPassive(address uint16) bool {
	switch {
	case address >= types.NR10 && address <= types.NR52:
		return address != 0xFF15 && address != 0xFF1F
	case address >= types.WaveRAM && address < types.WaveRAM+16:
		return true
	}
	return false
}

var _ types.Stater = (*MMU)(nil)

// Load restores the WRAM, HRAM and I/O cells from s.
func (m *MMU) Load(s *types.State) {
	m.wRAM.Load(s)
	m.zRAM.Load(s)
	m.io.Load(s)
	m.p1Select = s.Read8() & 0x30
	m.dma = s.Read8()
	m.bootROMDone = s.ReadBool() || m.bootROM == nil
}

// Save writes the WRAM, HRAM and I/O cells to s.
func (m *MMU) Save(s *types.State) {
	m.wRAM.Save(s)
	m.zRAM.Save(s)
	m.io.Save(s)
	s.Write8(m.p1Select)
	s.Write8(m.dma)
	s.WriteBool(m.bootROMDone)
}
