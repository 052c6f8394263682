package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullpilot/dmgcore/internal/interrupts"
)

func statMode(p *PPU) uint8 { return p.CPURead(0xFF41) & 0x03 }

func TestModeSequenceOneLine(t *testing.T) {
	p := New(interrupts.NewService())
	p.CPUWrite(0xFF40, 0x80) // LCD on

	assert.Equal(t, uint8(modeOAM), statMode(p))

	p.Step(80)
	assert.Equal(t, uint8(modeDraw), statMode(p))

	p.Step(172)
	assert.Equal(t, uint8(modeHBlank), statMode(p))

	p.Step(456 - 252)
	assert.Equal(t, uint8(1), p.CPURead(0xFF44))
	assert.Equal(t, uint8(modeOAM), statMode(p))
}

func TestVBlankRequestsInterruptAndSetsFrameReady(t *testing.T) {
	irq := interrupts.NewService()
	p := New(irq)
	p.CPUWrite(0xFF40, 0x80)

	p.Step(144 * 456)

	assert.True(t, irq.Flag&(1<<interrupts.VBlankFlag) != 0)
	assert.True(t, p.FrameReady())
	assert.False(t, p.FrameReady(), "FrameReady clears on read")
}

func TestDisabledLCDHoldsLYAtZero(t *testing.T) {
	p := New(interrupts.NewService())
	p.Step(10000)
	assert.Equal(t, uint8(0), p.CPURead(0xFF44))
}

func TestLYCCoincidenceRequestsSTAT(t *testing.T) {
	irq := interrupts.NewService()
	p := New(irq)
	p.CPUWrite(0xFF45, 1) // LYC = 1
	p.CPUWrite(0xFF41, 1<<6)
	p.CPUWrite(0xFF40, 0x80)

	p.Step(456) // complete line 0, LY becomes 1

	assert.True(t, irq.Flag&(1<<interrupts.LCDFlag) != 0)
	assert.NotZero(t, p.CPURead(0xFF41)&0x04)
}

func TestVRAMInaccessibleDuringMode3(t *testing.T) {
	p := New(interrupts.NewService())
	p.CPUWrite(0xFF40, 0x80)
	p.Step(80) // now in mode 3

	p.CPUWrite(0x8000, 0x42) // write should be dropped
	assert.Equal(t, uint8(0xFF), p.CPURead(0x8000))
}

func TestTileDecodeMatchesKnownPattern(t *testing.T) {
	var c = newTileCache()
	// row 0 = 0b11000000 / 0b10000000 -> colors: 3,1,0,0,0,0,0,0
	row := []uint8{0b11000000, 0b10000000}
	raw := make([]uint8, 16)
	raw[0], raw[1] = row[0], row[1]
	tl := c.decode(raw)
	assert.Equal(t, uint8(3), tl[0][0])
	assert.Equal(t, uint8(1), tl[0][1])
	assert.Equal(t, uint8(0), tl[0][2])
}

func TestSpriteXPriorityLowerXWins(t *testing.T) {
	p := New(interrupts.NewService())
	p.CPUWrite(0xFF40, 0x82) // LCD + OBJ enable

	// Two opaque tiles (all pixels color 1) at the same scanline.
	solid := make([]uint8, 16)
	for i := 0; i < 8; i++ {
		solid[i*2] = 0xFF
	}
	copy(p.vram[0:16], solid)

	// Sprite A at x=20 using OBP1, sprite B at x=18 using OBP0; both tile 0,
	// y=16 (screen line 0), overlapping at screen x=12..17.
	p.oam[0], p.oam[1], p.oam[2], p.oam[3] = 16, 20, 0, 0x10
	p.oam[4], p.oam[5], p.oam[6], p.oam[7] = 16, 18, 0, 0x00
	p.CPUWrite(0xFF48, 0xFF) // OBP0: color index 1 -> 3
	p.CPUWrite(0xFF49, 0x08) // OBP1: color index 1 -> 2

	p.renderScanline(0)

	// Sprite B (x=18, lower X) should win the overlap, so the pixel shows
	// OBP0's mapping (3), not OBP1's (2).
	assert.Equal(t, uint8(3), p.frame[0][12])
}
