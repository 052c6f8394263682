// Package ppu implements the DMG picture processing unit: VRAM/OAM
// storage, the LCDC/STAT/LY/LYC/palette/scroll register file, the
// Mode 2/3/0/1 dot-timing state machine, and scanline-at-a-time BG,
// window and sprite compositing into an 8-bit-index framebuffer
// (spec §4.4).
package ppu

import (
	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/nullpilot/dmgcore/pkg/bits"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	modeHBlank = 0
	modeVBlank = 1
	modeOAM    = 2
	modeDraw   = 3
)

// PPU owns VRAM, OAM, and the full LCD register file.
type PPU struct {
	vram [0x2000]uint8 // 0x8000-0x9FFF
	oam  [0xA0]uint8   // 0xFE00-0xFE9F

	lcdc uint8 // FF40
	stat uint8 // FF41
	scy  uint8 // FF42
	scx  uint8 // FF43
	ly   uint8 // FF44
	lyc  uint8 // FF45
	bgp  uint8 // FF47
	obp0 uint8 // FF48
	obp1 uint8 // FF49
	wy   uint8 // FF4A
	wx   uint8 // FF4B

	windowLine int // internal window-line counter, only advances on lines the window was actually drawn

	dot int // dots elapsed within the current scanline, 0..455

	frame [ScreenHeight][ScreenWidth]uint8 // 2-bit color indices, post-palette
	ready bool                             // a fresh frame completed since the last FrameReady check

	tiles tileCache

	irq *interrupts.Service
}

// New returns a PPU with the LCD off and all registers zeroed, wired to
// request VBlank/STAT interrupts through irq.
func New(irq *interrupts.Service) *PPU {
	return &PPU{irq: irq, tiles: newTileCache()}
}

// enabled reports whether LCDC bit 7 (LCD/PPU enable) is set.
func (p *PPU) enabled() bool { return bits.Test(p.lcdc, 7) }

func (p *PPU) mode() uint8 { return bits.Mask(p.stat, 2) }

func (p *PPU) setMode(m uint8) {
	if p.mode() == m {
		return
	}
	p.stat = p.stat&^0x03 | m&0x03
	switch m {
	case modeHBlank:
		if bits.Test(p.stat, 3) {
			p.irq.Request(interrupts.LCDFlag)
		}
	case modeOAM:
		if bits.Test(p.stat, 5) {
			p.irq.Request(interrupts.LCDFlag)
		}
	case modeVBlank:
		if bits.Test(p.stat, 4) {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
}

// Step advances the PPU by the given number of T-cycles. A disabled LCD
// does not advance the dot counter at all — it holds at LY=0, mode 0,
// exactly as real hardware does.
func (p *PPU) Step(cycles uint16) {
	if !p.enabled() {
		return
	}
	for i := uint16(0); i < cycles; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	p.dot++

	if p.ly < ScreenHeight {
		switch {
		case p.dot == 1:
			p.setMode(modeOAM)
		case p.dot == 80:
			p.setMode(modeDraw)
		case p.dot == 80+172:
			p.renderScanline(p.ly)
			p.setMode(modeHBlank)
		}
	}

	if p.dot >= 456 {
		p.dot = 0
		p.ly++

		switch {
		case p.ly < ScreenHeight:
			p.setMode(modeOAM)
		case p.ly == ScreenHeight:
			p.setMode(modeVBlank)
			p.irq.Request(interrupts.VBlankFlag)
			p.ready = true
			p.windowLine = 0
		case p.ly > 153:
			p.ly = 0
			p.setMode(modeOAM)
		}

		p.updateCoincidence()
	}
}

func (p *PPU) updateCoincidence() {
	p.stat = bits.SetTo(p.stat, 2, p.ly == p.lyc)
	if p.ly == p.lyc && bits.Test(p.stat, 6) {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// FrameReady reports whether a new frame has completed since the last
// call, clearing the flag as it does.
func (p *PPU) FrameReady() bool {
	r := p.ready
	p.ready = false
	return r
}

// Frame returns the most recently completed 160x144 buffer of 2-bit
// color indices (already passed through BGP/OBP0/OBP1). The coordinator
// owns turning these into an actual color before display.
func (p *PPU) Frame() [ScreenHeight][ScreenWidth]uint8 {
	return p.frame
}

// CPURead handles a CPU-visible read in VRAM, OAM, or the PPU register
// block. VRAM reads during Mode 3 and OAM reads during Modes 2/3 return
// 0xFF, matching the windows where the PPU itself owns the bus.
func (p *PPU) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.enabled() && p.mode() == modeDraw {
			return 0xFF
		}
		return p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if p.enabled() && (p.mode() == modeOAM || p.mode() == modeDraw) {
			return 0xFF
		}
		return p.oam[addr-0xFE00]
	case addr == 0xFF40:
		return p.lcdc
	case addr == 0xFF41:
		return p.stat | 0x80
	case addr == 0xFF42:
		return p.scy
	case addr == 0xFF43:
		return p.scx
	case addr == 0xFF44:
		return p.ly
	case addr == 0xFF45:
		return p.lyc
	case addr == 0xFF47:
		return p.bgp
	case addr == 0xFF48:
		return p.obp0
	case addr == 0xFF49:
		return p.obp1
	case addr == 0xFF4A:
		return p.wy
	case addr == 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

// CPUWrite handles a CPU-visible write to VRAM, OAM, or the PPU register
// block, subject to the same bus-ownership windows as CPURead. Writing
// LY resets the scanline counter; toggling LCDC's enable bit resets the
// whole dot/line state, matching real hardware's behavior when the LCD
// is switched on or off mid-frame.
func (p *PPU) CPUWrite(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.enabled() && p.mode() == modeDraw {
			return
		}
		p.vram[addr-0x8000] = value
		p.tiles.invalidate(addr - 0x8000)
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if p.enabled() && (p.mode() == modeOAM || p.mode() == modeDraw) {
			return
		}
		p.oam[addr-0xFE00] = value
	case addr == 0xFF40:
		was := p.enabled()
		p.lcdc = value
		if was && !p.enabled() {
			p.ly, p.dot = 0, 0
			p.stat = p.stat &^ 0x03
		} else if !was && p.enabled() {
			p.ly, p.dot = 0, 0
			p.setMode(modeOAM)
		}
	case addr == 0xFF41:
		p.stat = p.stat&0x07 | value&0x78
	case addr == 0xFF42:
		p.scy = value
	case addr == 0xFF43:
		p.scx = value
	case addr == 0xFF44:
		p.ly, p.dot = 0, 0
	case addr == 0xFF45:
		p.lyc = value
		p.updateCoincidence()
	case addr == 0xFF47:
		p.bgp = value
	case addr == 0xFF48:
		p.obp0 = value
	case addr == 0xFF49:
		p.obp1 = value
	case addr == 0xFF4A:
		p.wy = value
	case addr == 0xFF4B:
		p.wx = value
	}
}
