package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/dmgcore/internal/cartridge"
	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/internal/ppu"
	"github.com/nullpilot/dmgcore/internal/serial"
	"github.com/nullpilot/dmgcore/internal/timer"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	rom := make([]byte, 32*1024)
	copy(rom[0x134:0x143], "TESTROM")
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00 // 32KB

	cart, err := cartridge.Load(rom, nil)
	require.NoError(t, err)

	irq := interrupts.NewService()
	return New(cart, ppu.New(irq), timer.New(irq), joypad.New(irq), serial.NewController(irq, nil), irq, nil)
}

func TestWRAMReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0xC010))
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0xE010))

	b.Write(0xE020, 0x77)
	assert.Equal(t, uint8(0x77), b.Read(0xC020))
}

func TestHRAMReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFF90, 0x11)
	assert.Equal(t, uint8(0x11), b.Read(0xFF90))
}

func TestOAMDMACopiesOneByePerStep(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 0x100; i++ {
		b.wram[i] = uint8(i)
	}
	b.Write(0xFF46, 0xC0) // source 0xC000

	for i := 0; i < 0xA0; i++ {
		b.StepDMA()
	}

	for i := 0; i < 0xA0; i++ {
		assert.Equal(t, uint8(i), b.Read(0xFE00+uint16(i)))
	}
}

func TestOAMInaccessibleToCPUDuringDMA(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFF46, 0xC0)
	b.Write(0xFE00, 0x99) // dropped, DMA owns OAM
	assert.NotEqual(t, uint8(0x99), b.Read(0xFE00))
}

func TestBootROMOverlayDisablesOnWrite(t *testing.T) {
	rom := make([]byte, 32*1024)
	rom[0x147] = 0x00
	cart, err := cartridge.Load(rom, nil)
	require.NoError(t, err)

	boot := make([]byte, 0x100)
	boot[0] = 0xAA

	irq := interrupts.NewService()
	b := New(cart, ppu.New(irq), timer.New(irq), joypad.New(irq), serial.NewController(irq, nil), irq, boot)

	assert.Equal(t, uint8(0xAA), b.Read(0x0000))
	b.Write(0xFF50, 0x01)
	assert.Equal(t, uint8(0x00), b.Read(0x0000), "reads the cartridge now that the overlay is disabled")
}

func TestInterruptRegistersRouteThroughBus(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFFFF, 0x1F)
	assert.Equal(t, uint8(0xFF), b.Read(0xFFFF), "IE's upper 3 bits always read as 1")
}
