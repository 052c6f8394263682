package cpu

import (
	"testing"

	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func TestInterruptDispatchPushesPCAndJumps(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = true
	irq.Enable = 0x1F
	irq.Request(interrupts.VBlankFlag)
	load(bus, c.PC, 0x00) // NOP; the interrupt fires after it completes

	pc := c.PC
	c.Step()

	assert.Equal(t, interrupts.VBlank, c.PC)
	assert.False(t, irq.IME, "IME is cleared on dispatch")
	assert.False(t, irq.Flag&(1<<interrupts.VBlankFlag) != 0, "IF bit cleared on dispatch")
	assert.Equal(t, uint8(pc+1), bus[c.SP])
}

func TestInterruptDispatchRespectsPriority(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = true
	irq.Enable = 0x1F
	irq.Request(interrupts.TimerFlag)
	irq.Request(interrupts.VBlankFlag)
	load(bus, c.PC, 0x00)

	c.Step()
	assert.Equal(t, interrupts.VBlank, c.PC, "VBlank outranks Timer")
}

func TestNoDispatchWhenIMEOff(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = false
	irq.Enable = 0x1F
	irq.Request(interrupts.VBlankFlag)
	load(bus, c.PC, 0x00)

	pc := c.PC
	c.Step()
	assert.Equal(t, pc+1, c.PC, "no dispatch, just the NOP")
}

func TestEIHasOneInstructionLatency(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.Enable = 0x1F
	irq.Request(interrupts.VBlankFlag)
	load(bus, c.PC, 0xFB, 0x00, 0x00) // EI; NOP; NOP

	c.Step() // EI itself: IME still false until the *next* instruction finishes
	assert.False(t, irq.IME)

	c.Step() // the NOP right after EI: IME becomes true during this step
	assert.Equal(t, interrupts.VBlank, c.PC, "the interrupt fires right after that NOP, not before")
}

func TestDIIsImmediate(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = true
	load(bus, c.PC, 0xF3) // DI
	c.Step()
	assert.False(t, irq.IME)
}

func TestHaltWakesOnPendingInterruptWithIMEOff(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = false
	irq.Enable = 0x1F
	load(bus, c.PC, 0x76, 0x00, 0x00) // HALT; NOP; NOP
	c.Step()
	assert.Equal(t, modeHaltDI, c.mode)

	irq.Request(interrupts.VBlankFlag)
	c.Step()
	assert.Equal(t, modeNormal, c.mode, "an interrupt becoming pending wakes HALT even with IME off")
}

func TestHaltBugReexecutesNextByte(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = false
	irq.Enable = 0x1F
	irq.Request(interrupts.VBlankFlag) // already pending when HALT executes
	load(bus, c.PC, 0x76, 0x3C)        // HALT; INC A
	c.A = 0x00                         // start from zero rather than the post-boot A=0x01
	pc := c.PC

	c.Step() // HALT enters modeHaltBug since IME is off and an interrupt is already pending
	assert.Equal(t, modeHaltBug, c.mode)
	assert.Equal(t, pc+1, c.PC)

	c.Step() // INC A executes once...
	assert.Equal(t, uint8(1), c.A)
	assert.Equal(t, pc+1, c.PC, "PC failed to advance, so the next fetch re-reads the same byte")

	c.Step() // ...and again, the halt-bug duplicate execution
	assert.Equal(t, uint8(2), c.A)
}

func TestHaltWithIMEOnWaitsForDispatch(t *testing.T) {
	c, bus, irq := newTestCPU()
	irq.IME = true
	irq.Enable = 0x1F
	load(bus, c.PC, 0x76) // HALT
	c.Step()
	assert.Equal(t, modeHalt, c.mode)

	irq.Request(interrupts.VBlankFlag)
	c.Step()
	assert.Equal(t, modeNormal, c.mode)
	assert.Equal(t, interrupts.VBlank, c.PC, "IME was on, so the wake also dispatches")
}
