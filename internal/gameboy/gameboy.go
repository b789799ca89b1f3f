// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy owns every component of the emulated hardware and runs
// them in lockstep, one frame at a time.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cheats"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/scheduler"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/sgb"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = scheduler.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = scheduler.CyclesPerFrame
	// FrameTime is the real time taken by a single frame.
	FrameTime = time.Second * CyclesPerFrame / ClockSpeed
)

// ErrUnsupportedModel is returned for the colour models, as only the
// monochrome graphics controller is emulated.
var ErrUnsupportedModel = errors.New("gameboy: unsupported model")

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Interrupts *interrupts.Service
	Joypad     *joypad.State
	Serial     *serial.Controller
	Scheduler  *scheduler.Scheduler
	// SGB is the colour adapter, nil unless emulating a Super Game Boy.
	SGB *sgb.Adapter
	// Cheats are applied to the bus, nil unless set with WithCheats.
	Cheats *cheats.Set

	registers *types.HardwareRegisters
	bootROM   *boot.ROM

	// configuration set by options
	log          log.Logger
	model        types.Model
	palette      palette.Palette
	speed        float64
	initialState []byte
	bootROMImage []byte
	serialDevice serial.Device

	// err is the configuration error that stopped the session
	err error
}

// New returns a new GameBoy with rom inserted.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g, err := newGameBoy(cart, opts...)
	if err != nil {
		return nil, err
	}
	g.log.Infof("loaded %s", cart.Header())
	return g, nil
}

// NewWithoutCartridge returns a new GameBoy with no cartridge
// inserted. Running it fails with a *mmu.ConfigError as soon as the
// CPU touches the cartridge.
func NewWithoutCartridge(opts ...Opt) (*GameBoy, error) {
	return newGameBoy(nil, opts...)
}

func newGameBoy(cart cartridge.Cartridge, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		log:     log.NewNullLogger(),
		palette: palette.Greyscale,
		speed:   1,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.bootROMImage != nil {
		rom, err := boot.LoadBootROM(g.bootROMImage)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.bootROM = rom
		if g.model == types.Unset {
			g.model = rom.Model()
		}
	}
	if g.model == types.Unset {
		g.model = types.DMGABC
	}
	if g.model.IsColour() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, g.model)
	}

	g.registers = &types.HardwareRegisters{}
	g.Interrupts = interrupts.NewService(g.registers)
	g.Joypad = joypad.New(g.Interrupts)
	g.Timer = timer.NewController(g.registers, g.Interrupts)
	g.PPU = ppu.New(g.registers, g.Interrupts)
	g.Scheduler = scheduler.NewScheduler()
	g.Serial = serial.NewController(g.registers, g.Interrupts, g.Scheduler)
	g.MMU = mmu.NewMMU(g.registers, g.PPU, g.Joypad, g.log)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts, g.log)
	g.CPU.OnStop = g.Timer.ResetDIV

	g.MMU.SetModel(g.model)
	g.MMU.SetCartridge(cart)
	g.MMU.SetBootROM(g.bootROM)
	g.Serial.Attach(g.serialDevice)
	if g.model == types.SGB {
		g.SGB = sgb.New(g.palette, g.log)
		g.MMU.P1Listener = g.SGB
	}
	if g.Cheats != nil {
		g.MMU.Patcher = g.Cheats
	}

	g.Scheduler.Attach(g.CPU, g.Timer, g.PPU)
	g.Scheduler.RegisterEvent(scheduler.RTCTick, g.tickRTC)

	g.Reset()

	if g.initialState != nil {
		if err := g.Load(types.StateFromBytes(g.initialState)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// LoadCartridge replaces the cartridge and resets the GameBoy.
func (g *GameBoy) LoadCartridge(rom []byte) error {
	cart, err := cartridge.New(rom)
	if err != nil {
		return fmt.Errorf("gameboy: %w", err)
	}
	g.MMU.SetCartridge(cart)
	g.Reset()
	g.log.Infof("loaded %s", cart.Header())
	return nil
}

// Reset puts every component in its power on state. Without a boot
// ROM, the CPU starts at 0x0100 with the registers the boot ROM of
// the model leaves behind.
func (g *GameBoy) Reset() {
	g.Scheduler.Reset()
	g.Interrupts.Reset()
	g.Joypad.Reset()
	g.Timer.Reset()
	g.PPU.Reset()
	g.PPU.Palette = g.palette
	g.Serial.Reset()
	g.MMU.Reset()
	if g.SGB != nil {
		g.SGB.Reset()
	}

	if g.bootROM != nil {
		g.CPU.ResetBoot()
	} else {
		g.CPU.Reset(g.model)
	}

	if _, ok := g.MMU.Cart.(cartridge.Clock); ok {
		g.Scheduler.ScheduleEvent(scheduler.RTCTick, ClockSpeed)
	}
	g.err = nil
}

// tickRTC advances the cartridge clock by a second.
func (g *GameBoy) tickRTC() {
	if clock, ok := g.MMU.Cart.(cartridge.Clock); ok {
		clock.TickSecond()
		g.Scheduler.ScheduleEvent(scheduler.RTCTick, ClockSpeed)
	}
}

// Model returns the emulated model.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Frame runs the emulation for a single frame (70224 clock cycles).
//
// A configuration error, such as running without a cartridge, stops
// the GameBoy: it is returned as a *mmu.ConfigError now and on every
// later call, until Reset. A command the colour adapter does not
// understand is returned as a *sgb.UnhandledCommandError.
func (g *GameBoy) Frame() (err error) {
	if g.err != nil {
		return g.err
	}
	defer func() {
		if r := recover(); r != nil {
			var configErr *mmu.ConfigError
			if e, ok := r.(error); ok && errors.As(e, &configErr) {
				g.err = configErr
				err = configErr
				return
			}
			panic(r)
		}
	}()

	g.Scheduler.RunFrame()
	if g.Cheats != nil {
		g.Cheats.Apply(g.MMU)
	}

	if g.SGB != nil {
		if g.SGB.Updated() {
			g.PPU.Palette = g.SGB.Palettes()[0]
			g.PPU.SetMask(g.SGB.Mask())
		}
		if err := g.SGB.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Image returns the screen. The image is reused, and changes as the
// emulation runs.
func (g *GameBoy) Image() *image.RGBA {
	return g.PPU.Image()
}

// Run runs frames until ctx is cancelled or a frame fails, sending a
// copy of every frame to frames, if not nil. Frames are paced to real
// time at the configured speed. Cancellation is checked between frames.
func (g *GameBoy) Run(ctx context.Context, frames chan<- *image.RGBA) error {
	var tick <-chan time.Time
	if g.speed > 0 {
		ticker := time.NewTicker(time.Duration(float64(FrameTime) / g.speed))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := g.Frame(); err != nil {
			return err
		}

		if frames != nil {
			select {
			case frames <- cloneImage(g.Image()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func cloneImage(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Press presses a button.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}
