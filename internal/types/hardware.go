package types

// HardwareRegisters is the table of hardware registers owned by a
// single memory bus. It is indexed by the address of the register
// ANDed with 0x007F, with IE (0xFFFF) sharing slot 0x7F. Lookups
// match the full address, so 0xFF7F stays unmapped.
//
// Each bus owns its own table, so several sessions can run in the
// same process without stepping on each other's registers.
type HardwareRegisters [0x80]*HardwareRegister

// HardwareRegister is a single memory-mapped register, backed by
// the component that owns it.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Register installs a hardware register at address. A nil read
// function makes the register read 0xFF, a nil write function makes
// it read-only.
func (h *HardwareRegisters) Register(address HardwareAddress, read func() uint8, write func(v uint8)) {
	if read == nil {
		read = NoRead
	}
	if write == nil {
		write = NoWrite
	}
	h[address&0x007F] = &HardwareRegister{
		address: address,
		read:    read,
		write:   write,
	}
}

// Registered reports whether a register has been installed at address.
func (h *HardwareRegisters) Registered(address HardwareAddress) bool {
	return h.lookup(address) != nil
}

// lookup returns the register installed at address, or nil.
func (h *HardwareRegisters) lookup(address HardwareAddress) *HardwareRegister {
	r := h[address&0x007F]
	if r == nil || r.address != address {
		return nil
	}
	return r
}

// Read returns the value of the hardware register at address,
// and false if no register is installed there.
func (h *HardwareRegisters) Read(address HardwareAddress) (uint8, bool) {
	r := h.lookup(address)
	if r == nil {
		return 0xFF, false
	}
	return r.read(), true
}

// Write writes value to the hardware register at address, returning
// false if no register is installed there.
func (h *HardwareRegisters) Write(address HardwareAddress, value uint8) bool {
	r := h.lookup(address)
	if r == nil {
		return false
	}
	r.write(value)
	return true
}

// Address returns the address the register was installed at.
func (r *HardwareRegister) Address() HardwareAddress {
	return r.address
}

// NoRead is a read function for write-only registers.
func NoRead() uint8 {
	return 0xFF
}

// NoWrite is a write function for read-only registers.
func NoWrite(v uint8) {}
