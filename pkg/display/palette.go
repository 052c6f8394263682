// Package display turns a PPU framebuffer (spec §4.4's 2-bit color-index
// grid) into pixels for the outside world: a color palette, a PNG
// dumper, a websocket frame streamer, and (behind a build tag) a native
// SDL2 window.
package display

import "image/color"

// Palette maps the PPU's 4 color indices to RGB, the same table-of-RGB
// structure the teacher's ppu/palette package uses.
type Palette struct {
	Colors [4]color.RGBA
}

// Greyscale maps color indices 0-3 straight to the framebuffer's own
// grayscale values (255, 192, 96, 0 respectively).
var Greyscale = Palette{Colors: [4]color.RGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF},
	{R: 0x60, G: 0x60, B: 0x60, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}}

// Green approximates the original DMG's reflective green-tinted screen.
var Green = Palette{Colors: [4]color.RGBA{
	{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF},
	{R: 0x8B, G: 0xAC, B: 0x0F, A: 0xFF},
	{R: 0x30, G: 0x62, B: 0x30, A: 0xFF},
	{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF},
}}

// RGBA returns the color for a 2-bit PPU color index.
func (p Palette) RGBA(index uint8) color.RGBA {
	return p.Colors[index&0x03]
}
