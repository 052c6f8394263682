package ppu

import "github.com/nullpilot/dmgcore/pkg/bits"

// spriteAttr is one 4-byte OAM entry, decoded.
type spriteAttr struct {
	y, x     uint8
	tile     uint8
	priority bool // true: behind BG colors 1-3
	flipY    bool
	flipX    bool
	palette1 bool // true: use OBP1, false: OBP0
}

func decodeSprite(oam []uint8, index int) spriteAttr {
	base := index * 4
	flags := oam[base+3]
	return spriteAttr{
		y:        oam[base+0],
		x:        oam[base+1],
		tile:     oam[base+2],
		priority: bits.Test(flags, 7),
		flipY:    bits.Test(flags, 6),
		flipX:    bits.Test(flags, 5),
		palette1: bits.Test(flags, 4),
	}
}

// spritesOnLine returns up to 10 sprites (the hardware-enforced
// per-scanline limit) overlapping the given LY, in OAM order — the
// order the renderer uses as the DMG's X-then-OAM-index priority rule.
func (p *PPU) spritesOnLine(ly uint8, tall bool) []spriteAttr {
	height := 8
	if tall {
		height = 16
	}

	var out []spriteAttr
	for i := 0; i < 40 && len(out) < 10; i++ {
		s := decodeSprite(p.oam[:], i)
		top := int(s.y) - 16
		if int(ly) < top || int(ly) >= top+height {
			continue
		}
		out = append(out, s)
	}
	return out
}
