//go:build sdl2

package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/internal/ppu"
)

// Window is a native SDL2 window rendering the PPU framebuffer directly,
// scaled by Scale. Building with this file requires SDL2's development
// libraries installed; without the sdl2 build tag, stub.go's Window is
// used instead (spec §8's display Non-goal only excludes a full GUI, not
// a minimal pixel-scaled window).
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pal      Palette
	Scale    int
}

// keymap translates SDL keycodes to Button values.
var keymap = map[sdl.Keycode]joypad.Button{
	sdl.K_z:         joypad.ButtonA,
	sdl.K_x:         joypad.ButtonB,
	sdl.K_RETURN:    joypad.ButtonStart,
	sdl.K_BACKSPACE: joypad.ButtonSelect,
	sdl.K_UP:        joypad.ButtonUp,
	sdl.K_DOWN:      joypad.ButtonDown,
	sdl.K_LEFT:      joypad.ButtonLeft,
	sdl.K_RIGHT:     joypad.ButtonRight,
}

// NewWindow creates and shows an SDL2 window sized for scale-factor
// pixels per Game Boy pixel.
func NewWindow(title string, scale int, pal Palette) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING,
		int32(ppu.ScreenWidth), int32(ppu.ScreenHeight))
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl create texture: %w", err)
	}

	return &Window{window: win, renderer: renderer, texture: texture, pal: pal, Scale: scale}, nil
}

// Draw uploads frame to the streaming texture and presents it.
func (w *Window) Draw(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8) error {
	pixels := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := w.pal.RGBA(frame[y][x])
			i := (y*ppu.ScreenWidth + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, c.A
		}
	}
	if err := w.texture.Update(nil, pixels, ppu.ScreenWidth*4); err != nil {
		return err
	}
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
	return nil
}

// PollInput drains pending SDL events, returning buttons newly pressed
// and released since the last call, plus whether the window was closed.
func (w *Window) PollInput() (pressed, released []joypad.Button, quit bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			btn, ok := keymap[e.Keysym.Sym]
			if !ok {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				pressed = append(pressed, btn)
			} else if e.Type == sdl.KEYUP {
				released = append(released, btn)
			}
		}
	}
	return
}

// Close tears down SDL resources.
func (w *Window) Close() {
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
