package mmu

// transferOAM copies 160 bytes from value<<8 into OAM. The whole
// transfer happens at once, rather than a byte every M-cycle.
func (m *MMU) transferOAM(value uint8) {
	source := uint16(value) << 8
	for offset := uint16(0); offset < 0xA0; offset++ {
		currentSource := source + offset

		// is a DMA trying to read from the OAM?
		if currentSource >= 0xE000 {
			// if so, make sure we don't read from the OAM
			// and instead read from the source address - 0x2000
			currentSource &^= 0x2000
		}
		m.Video.WriteOAM(0xFE00+offset, m.Read(currentSource))
	}
}
