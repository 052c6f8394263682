package display

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/nullpilot/dmgcore/internal/ppu"
)

// DumpPNG writes frame to path as a PNG, scaled up by factor with
// nearest-neighbor sampling so a 160x144 frame is still legible at
// normal viewing sizes — the same upscale-then-encode step the
// teacher's pixelgl display does via golang.org/x/image/draw, just
// aimed at a file instead of a window.
func DumpPNG(path string, frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal Palette, factor int) error {
	if factor < 1 {
		factor = 1
	}
	src := ToImage(frame, pal)

	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*factor, ppu.ScreenHeight*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, dst)
}
