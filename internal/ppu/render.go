package ppu

import (
	"sort"

	"github.com/nullpilot/dmgcore/pkg/bits"
)

// tileRow decodes and returns the 8 color indices for the given tile
// row (0-7) of the tile named by tileIndex, honoring LCDC's addressing
// mode (unsigned 0x8000 base, or signed 0x8800 base with 0x9000 as the
// zero point).
func (p *PPU) tileRow(tileIndex uint8, row uint8, unsignedAddressing bool) [8]uint8 {
	var base uint16
	if unsignedAddressing {
		base = uint16(tileIndex) * 16
	} else {
		base = uint16(int16(0x1000) + int16(int8(tileIndex))*16)
	}
	t := p.tiles.decode(p.vram[base : base+16])
	return t[row]
}

// renderScanline composes the background, window, and sprite layers
// for line ly into the framebuffer, already passed through the
// relevant palette register (spec §4.4).
func (p *PPU) renderScanline(ly uint8) {
	var bg [ScreenWidth]uint8   // raw (pre-palette) BG/window color indices, for sprite priority
	var out [ScreenWidth]uint8 // final palette-applied indices

	unsignedAddressing := bits.Test(p.lcdc, 4)
	bgWindowEnabled := bits.Test(p.lcdc, 0)

	if bgWindowEnabled {
		p.renderBackground(ly, unsignedAddressing, &bg)
	}

	windowDrawn := false
	if bgWindowEnabled && bits.Test(p.lcdc, 5) && p.wy <= ly && p.wx <= 166 {
		p.renderWindow(unsignedAddressing, &bg)
		windowDrawn = true
	}

	for x := 0; x < ScreenWidth; x++ {
		out[x] = applyPalette(p.bgp, bg[x])
	}

	if bits.Test(p.lcdc, 1) {
		p.renderSprites(ly, &bg, &out)
	}

	p.frame[ly] = out

	if windowDrawn {
		p.windowLine++
	}
}

func (p *PPU) renderBackground(ly uint8, unsignedAddressing bool, bg *[ScreenWidth]uint8) {
	mapBase := uint16(0x1800) // 0x9800 - 0x8000
	if bits.Test(p.lcdc, 3) {
		mapBase = 0x1C00 // 0x9C00 - 0x8000
	}

	y := uint16(ly) + uint16(p.scy)
	tileRow := (y >> 3) & 31
	fineY := uint8(y & 7)

	for x := 0; x < ScreenWidth; x++ {
		bgX := uint16(x) + uint16(p.scx)
		tileCol := (bgX >> 3) & 31
		fineX := uint8(bgX & 7)

		tileIndex := p.vram[mapBase+tileRow*32+tileCol]
		row := p.tileRow(tileIndex, fineY, unsignedAddressing)
		bg[x] = row[fineX]
	}
}

func (p *PPU) renderWindow(unsignedAddressing bool, bg *[ScreenWidth]uint8) {
	mapBase := uint16(0x1800)
	if bits.Test(p.lcdc, 6) {
		mapBase = 0x1C00
	}

	winX := int(p.wx) - 7
	tileRow := uint16(p.windowLine>>3) & 31
	fineY := uint8(p.windowLine & 7)

	for x := winX; x < ScreenWidth; x++ {
		if x < 0 {
			continue
		}
		col := uint16(x-winX) >> 3 & 31
		fineX := uint8((x - winX) & 7)

		tileIndex := p.vram[mapBase+tileRow*32+col]
		row := p.tileRow(tileIndex, fineY, unsignedAddressing)
		bg[x] = row[fineX]
	}
}

func (p *PPU) renderSprites(ly uint8, bg *[ScreenWidth]uint8, out *[ScreenWidth]uint8) {
	tall := bits.Test(p.lcdc, 2)
	sprites := p.spritesOnLine(ly, tall)

	// Lower X wins; ties keep OAM order (stable sort preserves it).
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].x < sprites[j].x })

	height := 8
	if tall {
		height = 16
	}

	drawn := make([]bool, ScreenWidth)

	for _, s := range sprites {
		top := int(s.y) - 16
		line := int(ly) - top
		if s.flipY {
			line = height - 1 - line
		}

		tileIndex := s.tile
		if tall {
			tileIndex &^= 0x01
			if line >= 8 {
				tileIndex |= 0x01
				line -= 8
			}
		}

		row := p.tileRow(tileIndex, uint8(line), true) // sprites always use 0x8000 addressing

		left := int(s.x) - 8
		for col := 0; col < 8; col++ {
			sx := left + col
			if sx < 0 || sx >= ScreenWidth || drawn[sx] {
				continue
			}
			srcCol := col
			if s.flipX {
				srcCol = 7 - col
			}
			colorIndex := row[srcCol]
			if colorIndex == 0 {
				continue // transparent
			}
			if s.priority && bg[sx] != 0 {
				continue // behind non-zero BG color
			}

			palette := p.obp0
			if s.palette1 {
				palette = p.obp1
			}
			out[sx] = applyPalette(palette, colorIndex)
			drawn[sx] = true
		}
	}
}
