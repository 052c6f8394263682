//go:build !sdl2

package display

import (
	"errors"

	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/internal/ppu"
)

// ErrSDLUnavailable is returned by NewWindow when the binary was built
// without the sdl2 tag (no SDL2 development libraries at build time).
var ErrSDLUnavailable = errors.New("display: built without sdl2 tag, no native window support")

// Window is the no-op stand-in used when SDL2 isn't available. The
// websocket Streamer and PNG dumper work regardless of this build tag.
type Window struct{}

func NewWindow(title string, scale int, pal Palette) (*Window, error) {
	return nil, ErrSDLUnavailable
}

func (w *Window) Draw(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8) error {
	return ErrSDLUnavailable
}

func (w *Window) PollInput() (pressed, released []joypad.Button, quit bool) {
	return nil, nil, false
}

func (w *Window) Close() {}
