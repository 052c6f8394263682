package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRLCA(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.A = 0x85
	load(bus, c.PC, 0x07) // RLCA
	c.Step()
	assert.Equal(t, uint8(0x0B), c.A)
	assert.True(t, c.flag(FlagCarry))
	assert.False(t, c.flag(FlagZero), "accumulator rotates always clear Z")
}

func TestCBRotateSetsZero(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.B = 0x00
	load(bus, c.PC, 0xCB, 0x00) // RLC B
	cycles := c.Step()
	assert.Equal(t, uint8(0x00), c.B)
	assert.True(t, c.flag(FlagZero))
	assert.Equal(t, uint8(8), cycles)
}

func TestCBOnMemoryIsMoreExpensive(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.SetHL(0xC400)
	bus[0xC400] = 0x01
	load(bus, c.PC, 0xCB, 0x06) // RLC (HL)
	cycles := c.Step()
	assert.Equal(t, uint8(0x02), bus[0xC400])
	assert.Equal(t, uint8(16), cycles)
}

func TestSLAShiftsInZero(t *testing.T) {
	c, _, _ := newTestCPU()
	result := c.sla(0x80)
	assert.Equal(t, uint8(0x00), result)
	assert.True(t, c.flag(FlagCarry))
	assert.True(t, c.flag(FlagZero))
}

func TestSRAPreservesSignBit(t *testing.T) {
	c, _, _ := newTestCPU()
	result := c.sra(0x81)
	assert.Equal(t, uint8(0xC0), result, "arithmetic shift keeps bit 7")
	assert.True(t, c.flag(FlagCarry))
}

func TestSRLClearsSignBit(t *testing.T) {
	c, _, _ := newTestCPU()
	result := c.srl(0x81)
	assert.Equal(t, uint8(0x40), result)
	assert.True(t, c.flag(FlagCarry))
}

func TestSwapNibbles(t *testing.T) {
	c, _, _ := newTestCPU()
	result := c.swap(0xA5)
	assert.Equal(t, uint8(0x5A), result)
	assert.False(t, c.flag(FlagCarry))
}

func TestBitSetsZeroWhenClear(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.B = 0x00
	load(bus, c.PC, 0xCB, 0x40) // BIT 0,B
	c.Step()
	assert.True(t, c.flag(FlagZero))
	assert.True(t, c.flag(FlagHalfCarry))
}

func TestResAndSet(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.B = 0xFF
	load(bus, c.PC, 0xCB, 0x80) // RES 0,B
	c.Step()
	assert.Equal(t, uint8(0xFE), c.B)

	load(bus, c.PC, 0xCB, 0xC0) // SET 0,B
	c.Step()
	assert.Equal(t, uint8(0xFF), c.B)
}
