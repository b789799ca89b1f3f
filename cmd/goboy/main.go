// Command goboy runs a ROM headless: for a number of frames, or until
// interrupted. It can restore and write snapshots, save a screenshot,
// print a digest of every frame, capture serial output and apply cheats.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/dmgcore/internal/cheats"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/digest"
	"github.com/thelolagemann/dmgcore/pkg/emu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/statsview"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// config holds the parsed command line.
type config struct {
	romFile, bootROM, state, saveState, saves string
	screenshot, paletteName, model            string
	cheatFile, serialOut                      string
	frames, scale                             int
	speed                                     float64
	digest, sgb                               bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.romFile, "rom", "", "The rom file to load")
	flag.StringVar(&cfg.bootROM, "boot", "", "The boot rom file to load")
	flag.IntVar(&cfg.frames, "frames", 0, "Number of frames to run, 0 runs until interrupted")
	flag.StringVar(&cfg.state, "state", "", "The state file to load")
	flag.StringVar(&cfg.saveState, "save-state", "", "Write a state file when done")
	flag.StringVar(&cfg.saves, "saves", "saves", "The folder battery saves are kept in")
	flag.StringVar(&cfg.screenshot, "screenshot", "", "Write the last frame to this PNG file")
	flag.IntVar(&cfg.scale, "scale", 1, "Scale of the screenshot")
	flag.BoolVar(&cfg.digest, "digest", false, "Print a digest of every frame when done")
	flag.StringVar(&cfg.paletteName, "palette", "greyscale", "The palette to use. Can be greyscale, classic or green")
	flag.StringVar(&cfg.model, "model", "auto", "The model to emulate. Can be auto, dmg, mgb or sgb")
	flag.BoolVar(&cfg.sgb, "sgb", false, "Emulate a Super Game Boy")
	flag.StringVar(&cfg.cheatFile, "cheats", "", "The cheat file to load")
	flag.StringVar(&cfg.serialOut, "serial", "", "Capture serial output to this file, - for stdout")
	flag.Float64Var(&cfg.speed, "speed", 0, "The speed to run at when running until interrupted, 0 is unthrottled")
	debug := flag.Bool("debug", false, "Enable debug logging")
	stats := flag.Bool("statsview", false, "Serve runtime statistics over HTTP")
	flag.Parse()

	level := logrus.InfoLevel
	if *debug {
		level = logrus.DebugLevel
	}
	logger := log.NewWithWriter(os.Stderr, level)

	if *stats {
		if !statsview.Available() {
			logger.Fatal("statsview not available, rebuild with -tags statsview")
		}
		statsview.Launch(os.Stderr)
	}

	// every error leaves through here, after start has closed its files
	if err := start(logger, cfg); err != nil {
		logger.Fatal(err.Error())
	}
}

// start builds a GameBoy from cfg and runs it. Failures after the
// emulation has run are logged, so that the remaining outputs are
// still written.
func start(logger log.Logger, cfg config) error {
	if cfg.romFile == "" {
		return errors.New("no rom file given, use -rom")
	}
	rom, err := utils.LoadFile(cfg.romFile)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.Speed(cfg.speed)}

	if cfg.bootROM != "" {
		boot, err := utils.LoadFile(cfg.bootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	p, err := palette.ByName(cfg.paletteName)
	if err != nil {
		return err
	}
	opts = append(opts, gameboy.WithPalette(p))

	switch strings.ToLower(cfg.model) {
	case "auto":
		// no-op
	case "dmg":
		opts = append(opts, gameboy.AsModel(types.DMGABC))
	case "mgb":
		opts = append(opts, gameboy.AsModel(types.MGB))
	case "sgb":
		opts = append(opts, gameboy.AsModel(types.SGB))
	default:
		return fmt.Errorf("unknown model %q", cfg.model)
	}
	if cfg.sgb {
		opts = append(opts, gameboy.WithSGB())
	}

	var capture *serial.Capture
	if cfg.serialOut != "" {
		var w io.Writer = os.Stdout
		if cfg.serialOut != "-" {
			f, err := os.Create(cfg.serialOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		capture = serial.NewCapture(w)
		opts = append(opts, gameboy.WithSerial(capture))
	}

	if cfg.cheatFile != "" {
		f, err := os.Open(cfg.cheatFile)
		if err != nil {
			return err
		}
		set, err := cheats.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithCheats(set))
	}

	store := emu.NewFileStore("")
	if cfg.state != "" {
		s, err := store.LoadState(cfg.state)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithState(s.Bytes()))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	battery := emu.NewSave(cfg.saves, gb.MMU.Cart.Title())
	if cfg.state == "" {
		if err := battery.Load(gb.MMU.Cart); err != nil {
			logger.Errorf("unable to load battery save: %s", err)
		}
	}

	dig := digest.NewVideo()
	if err := run(gb, cfg.frames, dig); err != nil {
		logger.Errorf("stopped: %s", err)
	}

	if err := battery.Store(gb.MMU.Cart); err != nil {
		logger.Errorf("unable to write battery save: %s", err)
	}
	if capture != nil && capture.Err() != nil {
		logger.Errorf("serial capture: %s", capture.Err())
	}
	if cfg.screenshot != "" {
		if err := utils.SavePNG(gb.Image(), cfg.screenshot, cfg.scale); err != nil {
			logger.Errorf("unable to save screenshot: %s", err)
		}
	}
	if cfg.saveState != "" {
		s, err := gb.Save()
		if err == nil {
			err = store.SaveState(cfg.saveState, s)
		}
		if err != nil {
			logger.Errorf("unable to save state: %s", err)
		}
	}
	if cfg.digest {
		fmt.Printf("%s %d frames\n", dig.Hash(), dig.Frames())
	}
	return nil
}

// run runs n frames as fast as possible, or when n is 0, runs at the
// configured speed until interrupted.
func run(gb *gameboy.GameBoy, n int, dig *digest.Video) error {
	if n > 0 {
		for i := 0; i < n; i++ {
			if err := gb.Frame(); err != nil {
				return err
			}
			dig.NewFrame(gb.Image())
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := make(chan *image.RGBA, 1)
	done := make(chan error, 1)
	go func() {
		done <- gb.Run(ctx, frames)
		close(frames)
	}()
	for frame := range frames {
		dig.NewFrame(frame)
	}
	if err := <-done; !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
