// Command dmgcore runs a ROM against the emulator core and shows its
// output through an SDL2 window, a websocket stream, or both — the
// host-facing counterpart to the teacher's root main.go and
// cmd/goboy/main.go, rebuilt around this module's own GameBoy and
// display APIs instead of the teacher's fyne views and audio driver.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nullpilot/dmgcore/internal/gameboy"
	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/pkg/display"
	dlog "github.com/nullpilot/dmgcore/pkg/log"
)

func main() {
	romPath := flag.String("rom", "", "path to the ROM image to run")
	bootPath := flag.String("boot", "", "path to a boot ROM image (optional)")
	displayMode := flag.String("display", "none", "display mode: none or sdl2 (requires building with -tags sdl2)")
	scale := flag.Int("scale", 3, "SDL2 window scale factor")
	streamAddr := flag.String("stream-addr", "", "if set, serve a websocket frame stream at this address (e.g. :8080)")
	paletteName := flag.String("palette", "greyscale", "display palette: greyscale or green")
	saveInterval := flag.Duration("save-interval", 10*time.Second, "interval between periodic battery-RAM saves")
	debug := flag.Bool("debug", false, "log every button press/release at debug level")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "dmgcore: -rom is required")
		os.Exit(2)
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("dmgcore: reading rom: %v", err)
	}

	pal := display.Greyscale
	if *paletteName == "green" {
		pal = display.Green
	}

	opts := []gameboy.GameBoyOpt{gameboy.SaveEvery(*saveInterval)}
	if *bootPath != "" {
		boot, err := os.ReadFile(*bootPath)
		if err != nil {
			log.Fatalf("dmgcore: reading boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	gb, err := gameboy.New(rom, newFileSink(*romPath), opts...)
	if err != nil {
		log.Fatalf("dmgcore: %v", err)
	}
	defer func() {
		if err := gb.Save(); err != nil {
			log.Printf("dmgcore: final save failed: %v", err)
		}
	}()

	log.Printf("dmgcore: loaded %q (checksum %s)", gb.Bus.Cartridge().Title(), gb.Bus.Cartridge().Checksum())

	inputLog := dlog.NewLeveled(dlog.LevelInfo)
	if *debug {
		inputLog = dlog.NewLeveled(dlog.LevelDebug)
	}

	var streamer *display.Streamer
	if *streamAddr != "" {
		streamer = display.NewStreamer(dlog.New())
		mux := http.NewServeMux()
		mux.Handle("/stream", streamer)
		go func() {
			if err := http.ListenAndServe(*streamAddr, mux); err != nil {
				log.Printf("dmgcore: websocket server stopped: %v", err)
			}
		}()
		log.Printf("dmgcore: streaming frames on ws://%s/stream", *streamAddr)
	}

	var win *display.Window
	if *displayMode == "sdl2" {
		win, err = display.NewWindow(gb.Bus.Cartridge().Title(), *scale, pal)
		if err != nil {
			log.Fatalf("dmgcore: opening window: %v", err)
		}
		defer win.Close()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			return
		default:
		}

		frame, err := gb.RunFrame()
		if err != nil {
			log.Printf("dmgcore: %v — CPU has locked up, stopping", err)
			return
		}

		if streamer != nil {
			streamer.Broadcast(frame, pal)
		}

		if win != nil {
			if err := win.Draw(frame); err != nil {
				log.Printf("dmgcore: draw failed: %v", err)
			}
			pressed, released, quit := win.PollInput()
			if quit {
				return
			}
			for _, btn := range pressed {
				gb.PressButton(btn)
				logButton(inputLog, "pressed", btn)
			}
			for _, btn := range released {
				gb.ReleaseButton(btn)
				logButton(inputLog, "released", btn)
			}
		}
	}
}

// logButton reports a joypad event at debug level, tagging it by row
// (action vs. direction) so a -debug session can tell at a glance which
// half of the input matrix is driving a test failure.
func logButton(l dlog.Logger, verb string, btn joypad.Button) {
	row := "direction"
	if joypad.IsAction(btn) {
		row = "action"
	}
	l.Debugf("%s %s button 0x%02X", row, verb, btn)
}
