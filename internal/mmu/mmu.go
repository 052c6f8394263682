// Package mmu implements the DMG memory bus: address decoding across
// cartridge ROM/RAM, VRAM/OAM (delegated to the PPU), work RAM, high
// RAM, the I/O register block, and OAM DMA. It is the single handle
// the CPU, and no one else, uses to read or write memory (spec §4.2).
package mmu

import (
	"github.com/nullpilot/dmgcore/internal/cartridge"
	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/internal/ppu"
	"github.com/nullpilot/dmgcore/internal/serial"
	"github.com/nullpilot/dmgcore/internal/timer"
)

// Bus wires the full CPU-visible address space together.
type Bus struct {
	cart *cartridge.Cartridge

	wram [0x2000]uint8 // 0xC000-0xDFFF, echoed at 0xE000-0xFDFF
	hram [0x7F]uint8   // 0xFF80-0xFFFE

	ppu    *ppu.PPU
	timer  *timer.Timer
	pad    *joypad.Pad
	serial *serial.Controller
	irq    *interrupts.Service

	bootROM     []uint8
	bootEnabled bool

	dmaActive bool
	dmaSrc    uint16
	dmaIndex  int
}

// New wires a Bus from its already-constructed subsystems. bootROM may
// be nil, in which case the boot overlay is skipped and execution is
// assumed to start post-boot.
func New(cart *cartridge.Cartridge, p *ppu.PPU, t *timer.Timer, pad *joypad.Pad, sc *serial.Controller, irq *interrupts.Service, bootROM []uint8) *Bus {
	return &Bus{
		cart:        cart,
		ppu:         p,
		timer:       t,
		pad:         pad,
		serial:      sc,
		irq:         irq,
		bootROM:     bootROM,
		bootEnabled: len(bootROM) > 0,
	}
}

// Read returns the byte visible to the CPU at addr.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		if b.bootEnabled && addr < 0x0100 && len(b.bootROM) >= 0x100 {
			return b.bootROM[addr]
		}
		return b.cart.Read(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.ppu.CPURead(addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram[addr-0x2000-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if b.dmaActive {
			return 0xFF
		}
		return b.ppu.CPURead(addr)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		return 0xFF // unmapped OAM-adjacent region
	case addr == 0xFF00:
		return 0xC0 | b.pad.Selection() | b.pad.Read()
	case addr == 0xFF01, addr == 0xFF02:
		return b.serial.Read(addr)
	case addr == timer.DIV, addr == timer.TIMA, addr == timer.TMA, addr == timer.TAC:
		return b.timer.Read(addr)
	case addr == interrupts.FlagRegister:
		return b.irq.Read(addr)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		return b.ppu.CPURead(addr)
	case addr == 0xFF50:
		return 0xFF
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	case addr == interrupts.EnableRegister:
		return b.irq.Read(addr)
	default:
		return 0xFF
	}
}

// Write handles a CPU-visible write to addr.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, value)
	case addr >= 0x8000 && addr <= 0x9FFF:
		b.ppu.CPUWrite(addr, value)
	case addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, value)
	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0x2000-0xC000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if !b.dmaActive {
			b.ppu.CPUWrite(addr, value)
		}
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		// unmapped, writes ignored
	case addr == 0xFF00:
		b.pad.Write(value)
	case addr == 0xFF01, addr == 0xFF02:
		b.serial.Write(addr, value)
	case addr == timer.DIV, addr == timer.TIMA, addr == timer.TMA, addr == timer.TAC:
		b.timer.Write(addr, value)
	case addr == interrupts.FlagRegister:
		b.irq.Write(addr, value)
	case addr == 0xFF46:
		b.startDMA(value)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		b.ppu.CPUWrite(addr, value)
	case addr == 0xFF50:
		if value != 0 {
			b.bootEnabled = false
		}
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
	case addr == interrupts.EnableRegister:
		b.irq.Write(addr, value)
	}
}

func (b *Bus) startDMA(src uint8) {
	b.dmaActive = true
	b.dmaSrc = uint16(src) << 8
	b.dmaIndex = 0
}

// StepDMA advances an in-flight OAM DMA transfer by one T-cycle,
// copying a single byte per call, so the 160-byte transfer completes
// after 160 T-cycles (spec §4.2). The coordinator calls this once per
// T-cycle alongside Timer and PPU stepping.
func (b *Bus) StepDMA() {
	if !b.dmaActive {
		return
	}
	v := b.Read(b.dmaSrc + uint16(b.dmaIndex))
	b.ppu.CPUWrite(0xFE00+uint16(b.dmaIndex), v)
	b.dmaIndex++
	if b.dmaIndex >= 0xA0 {
		b.dmaActive = false
	}
}

// Cartridge returns the underlying cartridge, for host code that wants
// to flush battery RAM on shutdown.
func (b *Bus) Cartridge() *cartridge.Cartridge { return b.cart }
