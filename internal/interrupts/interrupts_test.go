package interrupts

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestService_Vector(t *testing.T) {
	tests := []struct {
		flag, enable uint8
		vector       uint16
		remaining    uint8
	}{
		{0x00, 0x1F, 0x0000, 0x00},
		{VBlankFlag, 0x1F, 0x0040, 0x00},
		{LCDFlag, 0x1F, 0x0048, 0x00},
		{TimerFlag, 0x1F, 0x0050, 0x00},
		{SerialFlag, 0x1F, 0x0058, 0x00},
		{JoypadFlag, 0x1F, 0x0060, 0x00},
		{TimerFlag | JoypadFlag, 0x1F, 0x0050, JoypadFlag},
		{TimerFlag | JoypadFlag, JoypadFlag, 0x0060, TimerFlag},
		{VBlankFlag, 0x00, 0x0000, VBlankFlag},
	}
	for _, tt := range tests {
		s := &Service{Flag: tt.flag, Enable: tt.enable}
		if v := s.Vector(); v != tt.vector {
			t.Errorf("IF=%02X IE=%02X: expected vector %04X, got %04X", tt.flag, tt.enable, tt.vector, v)
		}
		if s.Flag != tt.remaining {
			t.Errorf("IF=%02X IE=%02X: expected IF %02X after dispatch, got %02X", tt.flag, tt.enable, tt.remaining, s.Flag)
		}
	}
}

func TestService_Registers(t *testing.T) {
	var h types.HardwareRegisters
	s := NewService(&h)

	h.Write(types.IF, 0xFF)
	if s.Flag != 0x1F {
		t.Errorf("expected IF to keep the low 5 bits, got %02X", s.Flag)
	}
	s.Flag = 0x01
	if v, _ := h.Read(types.IF); v != 0xE1 {
		t.Errorf("expected IF to read 0xE1, got %02X", v)
	}
	h.Write(types.IE, 0x05)
	if v, _ := h.Read(types.IE); v != 0x05 {
		t.Errorf("expected IE to read 0x05, got %02X", v)
	}
	if !s.HasInterrupts() {
		t.Errorf("expected V-blank to be pending")
	}
}
