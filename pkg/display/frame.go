package display

import (
	"image"

	"github.com/nullpilot/dmgcore/internal/ppu"
)

// ToImage renders a PPU framebuffer through a palette into an RGBA
// image, the same pixel-by-pixel conversion the teacher's GameBoy.Run
// does when copying a prepared frame onto its canvas.
func ToImage(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			img.Set(x, y, pal.RGBA(frame[y][x]))
		}
	}
	return img
}
