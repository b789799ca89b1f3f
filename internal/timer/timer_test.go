package timer

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newTestController() (*Controller, *types.HardwareRegisters, *interrupts.Service) {
	h := &types.HardwareRegisters{}
	irq := interrupts.NewService(h)
	return NewController(h, irq), h, irq
}

func TestController_DIV(t *testing.T) {
	c, h, _ := newTestController()

	c.Advance(63)
	if c.DIV() != 0 {
		t.Errorf("expected DIV 0 after 63 M-cycles, got %d", c.DIV())
	}
	c.Advance(1)
	if c.DIV() != 1 {
		t.Errorf("expected DIV 1 after 64 M-cycles, got %d", c.DIV())
	}
	for i := 0; i < 255*64; i++ {
		c.Advance(1)
	}
	if c.DIV() != 0 {
		t.Errorf("expected DIV to wrap to 0, got %d", c.DIV())
	}

	c.Advance(100)
	h.Write(types.DIV, 0xAB)
	if v, _ := h.Read(types.DIV); v != 0 {
		t.Errorf("expected write to reset DIV, got %d", v)
	}
	// the sub-counter is reset too
	c.Advance(63)
	if c.DIV() != 0 {
		t.Errorf("expected DIV sub-counter to reset, got %d", c.DIV())
	}
}

func TestController_TIMARates(t *testing.T) {
	tests := []struct {
		tac    uint8
		period int
	}{
		{0x04, 256},
		{0x05, 4},
		{0x06, 16},
		{0x07, 64},
	}
	for _, tt := range tests {
		c, h, _ := newTestController()
		h.Write(types.TAC, tt.tac)

		for i := 0; i < tt.period-1; i++ {
			c.Advance(1)
		}
		if c.TIMA() != 0 {
			t.Errorf("TAC=%02X: expected TIMA 0 after %d M-cycles, got %d", tt.tac, tt.period-1, c.TIMA())
		}
		c.Advance(1)
		if c.TIMA() != 1 {
			t.Errorf("TAC=%02X: expected TIMA 1 after %d M-cycles, got %d", tt.tac, tt.period, c.TIMA())
		}
		for i := 0; i < 10; i++ {
			c.Advance(uint8(tt.period / 4))
			c.Advance(uint8(tt.period / 4))
			c.Advance(uint8(tt.period / 4))
			c.Advance(uint8(tt.period / 4))
		}
		if c.TIMA() != 11 {
			t.Errorf("TAC=%02X: expected TIMA 11, got %d", tt.tac, c.TIMA())
		}
	}
}

func TestController_Disabled(t *testing.T) {
	c, h, _ := newTestController()
	h.Write(types.TAC, 0x01)
	c.Advance(200)
	if c.TIMA() != 0 {
		t.Errorf("expected disabled timer not to count, got %d", c.TIMA())
	}
	if v, _ := h.Read(types.TAC); v != 0xF9 {
		t.Errorf("expected TAC to read 0xF9, got %02X", v)
	}
}

func TestController_Overflow(t *testing.T) {
	c, h, irq := newTestController()
	h.Write(types.TMA, 0xF0)
	h.Write(types.TIMA, 0xFF)
	h.Write(types.TAC, 0x05)

	c.Advance(3)
	if irq.Flag&interrupts.TimerFlag != 0 {
		t.Fatalf("expected no interrupt before overflow")
	}
	c.Advance(1)
	if c.TIMA() != 0xF0 {
		t.Errorf("expected TIMA to reload from TMA, got %02X", c.TIMA())
	}
	if irq.Flag&interrupts.TimerFlag == 0 {
		t.Errorf("expected timer interrupt on overflow")
	}
}

func TestController_State(t *testing.T) {
	a, h, _ := newTestController()
	h.Write(types.TAC, 0x06)
	h.Write(types.TMA, 0x42)
	a.Advance(77)

	s := types.NewState()
	a.Save(s)
	b, _, _ := newTestController()
	b.Load(types.StateFromBytes(s.Bytes()))

	for i := 0; i < 500; i++ {
		a.Advance(3)
		b.Advance(3)
		if a.DIV() != b.DIV() || a.TIMA() != b.TIMA() {
			t.Fatalf("timers diverged after load at step %d", i)
		}
	}
}
