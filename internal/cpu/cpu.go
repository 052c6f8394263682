// Package cpu implements the Sharp LR35902 instruction interpreter:
// registers, the ALU, the opcode tables, and the fetch/execute/
// interrupt-dispatch loop. CPU.Step executes exactly one instruction
// (or one HALT/STOP-idle tick) and returns the number of T-cycles it
// took, which the coordinator then feeds to the timer and PPU in
// lock-step (spec §2, §3, §5).
package cpu

import "github.com/nullpilot/dmgcore/internal/interrupts"

// Bus is the memory interface the CPU executes against. *mmu.Bus
// satisfies it; tests use smaller fakes.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeHaltBug
	modeHaltDI // HALT entered with IME off and no interrupt pending: lower-power wait, no PC quirk
	modeStop
	modeEnableIME // EI's effect is delayed until after the next instruction
	modeLockup    // an illegal opcode executed; the CPU never recovers (spec §7)
)

// CPU is the Sharp LR35902 interpreter.
type CPU struct {
	Registers
	PC, SP uint16

	bus Bus
	irq *interrupts.Service

	mode   mode
	cycles uint8 // T-cycles elapsed during the instruction in progress
	err    error // sticky IllegalOpcode, set once and never cleared
}

// New returns a CPU wired to bus and irq, with registers and PC at
// their post-boot-ROM reset values (spec §3).
func New(bus Bus, irq *interrupts.Service) *CPU {
	return &CPU{
		Registers: Registers{A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D},
		PC:        0x0100,
		SP:        0xFFFE,
		bus:       bus,
		irq:       irq,
	}
}

// tick accounts for one M-cycle (4 T-cycles) of bus or internal work.
func (c *CPU) tick() { c.cycles += 4 }

func (c *CPU) readByte(addr uint16) uint8 {
	c.tick()
	return c.bus.Read(addr)
}

func (c *CPU) writeByte(addr uint16, value uint8) {
	c.tick()
	c.bus.Write(addr, value)
}

// fetch reads the byte at PC, consuming a cycle, and advances PC. It's
// also the mechanism the halt bug exploits: on modeHaltBug, PC is
// stepped back afterward so the following fetch re-reads the same
// byte.
func (c *CPU) fetch() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) pendingInterrupts() bool {
	return c.irq.Enable&c.irq.Flag&0x1F != 0
}

// Step executes one instruction (or one idle HALT/STOP tick), handling
// any interrupt dispatch that follows, and returns the number of
// T-cycles it took.
func (c *CPU) Step() uint8 {
	c.cycles = 0

	switch c.mode {
	case modeLockup:
		c.tick()
		return c.cycles
	case modeHalt, modeStop:
		c.tick()
		if c.pendingInterrupts() {
			c.mode = modeNormal
		}
	case modeHaltDI:
		c.tick()
		if c.pendingInterrupts() {
			c.mode = modeNormal
		}
	case modeHaltBug:
		op := c.fetch()
		c.PC--
		c.mode = modeNormal
		c.execute(op)
	case modeEnableIME:
		c.irq.IME = true
		c.mode = modeNormal
		c.execute(c.fetch())
	default:
		c.execute(c.fetch())
	}

	if c.irq.IME && c.pendingInterrupts() {
		c.dispatchInterrupt()
	}

	return c.cycles
}

// dispatchInterrupt pushes PC, jumps to the highest-priority pending
// vector, clears its IF bit, and disables IME — the standard 5-M-cycle
// interrupt-acknowledge sequence (spec §4.5).
func (c *CPU) dispatchInterrupt() {
	vector, flag, ok := c.irq.NextVector()
	if !ok {
		return
	}

	c.tick()
	c.tick()

	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.irq.Clear(flag)
	c.irq.IME = false
	c.PC = vector

	c.tick()
}

// halt enters HALT, applying the halt-bug PC-suppression quirk when
// IME is off but an interrupt is already pending (spec §4.5, §13):
// real hardware doesn't refetch the instruction, it just fails to
// advance PC once, so the byte after HALT is executed twice.
func (c *CPU) halt() {
	switch {
	case c.irq.IME:
		c.mode = modeHalt
	case c.pendingInterrupts():
		c.mode = modeHaltBug
	default:
		c.mode = modeHaltDI
	}
}

func (c *CPU) stop() {
	c.mode = modeStop
}

// illegal records execution of one of the eleven undefined opcodes and
// locks the CPU up: real hardware never recovers from this, so neither
// does Step — every subsequent call just burns a cycle and leaves err
// in place (spec §7).
func (c *CPU) illegal(opcode uint8) {
	c.err = &IllegalOpcode{Opcode: opcode, PC: c.PC - 1}
	c.mode = modeLockup
}

// Err returns the sticky error left by an illegal-opcode lockup, or nil
// while the CPU is executing normally.
func (c *CPU) Err() error {
	return c.err
}

// ei schedules IME to turn on after the instruction following EI
// executes — the one-instruction latency real hardware has (spec §4.5).
func (c *CPU) ei() {
	c.mode = modeEnableIME
}

func (c *CPU) di() {
	c.irq.IME = false
}
