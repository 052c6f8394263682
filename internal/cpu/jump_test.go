package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJRUnconditional(t *testing.T) {
	c, bus, _ := newTestCPU()
	load(bus, c.PC, 0x18, 0xFE) // JR -2 (spins back onto itself)
	start := c.PC
	cycles := c.Step()
	assert.Equal(t, start, c.PC)
	assert.Equal(t, uint8(12), cycles)
}

func TestJRConditionalNotTakenIsCheaper(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.setFlag(FlagZero, true)
	load(bus, c.PC, 0x20, 0x10) // JR NZ,+16 - Z set, so not taken
	start := c.PC
	cycles := c.Step()
	assert.Equal(t, start+2, c.PC)
	assert.Equal(t, uint8(8), cycles)
}

func TestJPConditionalTaken(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.setFlag(FlagZero, true)
	load(bus, c.PC, 0xCA, 0x00, 0xD0) // JP Z,0xD000
	cycles := c.Step()
	assert.Equal(t, uint16(0xD000), c.PC)
	assert.Equal(t, uint8(16), cycles)
}

func TestJPHLUsesRegisterDirectly(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.SetHL(0xBEEF)
	load(bus, c.PC, 0xE9) // JP (HL)
	cycles := c.Step()
	assert.Equal(t, uint16(0xBEEF), c.PC)
	assert.Equal(t, uint8(4), cycles, "JP (HL) reads no memory, it's just a register move into PC")
}

func TestCallConditionalTakenPushesReturnAddress(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.setFlag(FlagZero, false) // the post-boot F (0xB0) has Z set
	sp := c.SP
	load(bus, c.PC, 0xC4, 0x00, 0xD0) // CALL NZ,0xD000; Z clear, so taken
	cycles := c.Step()
	assert.Equal(t, uint16(0xD000), c.PC)
	assert.NotEqual(t, sp, c.SP, "condition was true, so the return address was pushed")
	assert.Equal(t, uint8(24), cycles)
}

func TestCallConditionalNotTakenSkipsPush(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.setFlag(FlagZero, true)
	sp := c.SP
	load(bus, c.PC, 0xC4, 0x00, 0xD0) // CALL NZ,0xD000; Z set, so not taken
	cycles := c.Step()
	assert.Equal(t, sp, c.SP)
	assert.Equal(t, uint8(12), cycles)
}

func TestRSTPushesReturnAddress(t *testing.T) {
	c, bus, _ := newTestCPU()
	returnAddr := c.PC + 1 // RST is a single byte, so PC already advanced past it by push time
	load(bus, c.PC, 0xEF)  // RST 28H
	c.Step()
	assert.Equal(t, uint16(0x0028), c.PC)
	assert.Equal(t, uint8(returnAddr), bus[c.SP])
}
