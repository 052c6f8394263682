package ppu

import (
	"github.com/cespare/xxhash"

	"github.com/nullpilot/dmgcore/pkg/bits"
)

// tile is a decoded 8x8 block of 2-bit color indices, pre-palette.
type tile [8][8]uint8

// tileCache memoizes the (fairly expensive, branchy) bitplane-unpacking
// decode by content hash: most games reuse a small, fixed tile set
// across the whole frame, so hashing the raw 16 VRAM bytes and caching
// the decoded result avoids re-unpacking the same tile hundreds of
// times per frame (spec §4.4, §9). Content-hash keying means a tile
// never needs explicit invalidation — a VRAM write that changes a
// tile's bytes simply produces a different hash and a cache miss.
type tileCache struct {
	entries map[uint64]tile
}

func newTileCache() tileCache {
	return tileCache{entries: make(map[uint64]tile, 512)}
}

// invalidate exists so CPUWrite can note that VRAM changed; the cache
// itself needs no bookkeeping per address since it is keyed on content,
// not location, but large long-running sessions that touch many
// distinct tile contents would otherwise grow the map forever, so this
// is where a future eviction policy would hook in.
func (c *tileCache) invalidate(vramOffset uint16) {}

// decode returns the 8x8 tile for the 16 raw bytes at b, decoding and
// memoizing on first sight of that exact content.
func (c *tileCache) decode(b []uint8) tile {
	h := xxhash.Sum64(b)
	if t, ok := c.entries[h]; ok {
		return t
	}
	var t tile
	for row := 0; row < 8; row++ {
		lo, hi := b[row*2], b[row*2+1]
		for col := 0; col < 8; col++ {
			bit := 7 - col
			t[row][col] = bits.Val(lo, uint8(bit)) | bits.Val(hi, uint8(bit))<<1
		}
	}
	c.entries[h] = t
	return t
}
