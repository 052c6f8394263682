package cpu

// installMiscOpcodes fills in every opcode that doesn't fit one of the
// regular families generated in init() above: control flow targets, the
// special-addressing loads, the accumulator rotates/DAA/CPL/SCF/CCF, and
// the interrupt-enable/STOP/HALT-adjacent instructions. Unassigned slots
// (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD) are
// the Sharp LR35902's undefined opcodes; real hardware locks up the CPU
// if one is ever executed, so they're wired to illegal(), which records
// an IllegalOpcode error and locks the CPU up, rather than left nil.
func installMiscOpcodes() {
	opcodeTable[0x00] = func(c *CPU) {}

	opcodeTable[0x02] = func(c *CPU) { c.writeByte(c.BC(), c.A) }
	opcodeTable[0x12] = func(c *CPU) { c.writeByte(c.DE(), c.A) }
	opcodeTable[0x22] = func(c *CPU) { c.writeByte(c.HL(), c.A); c.SetHL(c.HL() + 1) }
	opcodeTable[0x32] = func(c *CPU) { c.writeByte(c.HL(), c.A); c.SetHL(c.HL() - 1) }

	opcodeTable[0x0A] = func(c *CPU) { c.A = c.readByte(c.BC()) }
	opcodeTable[0x1A] = func(c *CPU) { c.A = c.readByte(c.DE()) }
	opcodeTable[0x2A] = func(c *CPU) { c.A = c.readByte(c.HL()); c.SetHL(c.HL() + 1) }
	opcodeTable[0x3A] = func(c *CPU) { c.A = c.readByte(c.HL()); c.SetHL(c.HL() - 1) }

	opcodeTable[0x07] = func(c *CPU) { c.A = c.rlc(c.A); c.setFlag(FlagZero, false) }
	opcodeTable[0x0F] = func(c *CPU) { c.A = c.rrc(c.A); c.setFlag(FlagZero, false) }
	opcodeTable[0x17] = func(c *CPU) { c.A = c.rl(c.A); c.setFlag(FlagZero, false) }
	opcodeTable[0x1F] = func(c *CPU) { c.A = c.rr(c.A); c.setFlag(FlagZero, false) }

	opcodeTable[0x08] = func(c *CPU) {
		addr := c.fetch16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	}

	opcodeTable[0x10] = func(c *CPU) { c.stop() }

	opcodeTable[0x18] = func(c *CPU) {
		offset := int8(c.fetch())
		c.tick()
		c.PC = uint16(int32(c.PC) + int32(offset))
	}

	opcodeTable[0x27] = func(c *CPU) { c.daa() }
	opcodeTable[0x2F] = func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract, true)
		c.setFlag(FlagHalfCarry, true)
	}
	opcodeTable[0x37] = func(c *CPU) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, true)
	}
	opcodeTable[0x3F] = func(c *CPU) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, !c.flag(FlagCarry))
	}

	opcodeTable[0xC3] = func(c *CPU) { addr := c.fetch16(); c.tick(); c.PC = addr }
	opcodeTable[0xC9] = func(c *CPU) { c.PC = c.pop(); c.tick() }
	opcodeTable[0xD9] = func(c *CPU) { c.PC = c.pop(); c.tick(); c.irq.IME = true }
	opcodeTable[0xCD] = func(c *CPU) {
		addr := c.fetch16()
		c.push(c.PC)
		c.PC = addr
	}
	opcodeTable[0xE9] = func(c *CPU) { c.PC = c.HL() }

	opcodeTable[0xC6] = func(c *CPU) { c.A = c.add8(c.A, c.fetch(), false) }
	opcodeTable[0xCE] = func(c *CPU) { c.A = c.add8(c.A, c.fetch(), true) }
	opcodeTable[0xD6] = func(c *CPU) { c.A = c.sub8(c.A, c.fetch(), false) }
	opcodeTable[0xDE] = func(c *CPU) { c.A = c.sub8(c.A, c.fetch(), true) }
	opcodeTable[0xE6] = func(c *CPU) { c.A = c.and8(c.A, c.fetch()) }
	opcodeTable[0xEE] = func(c *CPU) { c.A = c.xor8(c.A, c.fetch()) }
	opcodeTable[0xF6] = func(c *CPU) { c.A = c.or8(c.A, c.fetch()) }
	opcodeTable[0xFE] = func(c *CPU) { c.cp8(c.A, c.fetch()) }

	opcodeTable[0xE0] = func(c *CPU) { c.writeByte(0xFF00+uint16(c.fetch()), c.A) }
	opcodeTable[0xF0] = func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.fetch())) }
	opcodeTable[0xE2] = func(c *CPU) { c.writeByte(0xFF00+uint16(c.C), c.A) }
	opcodeTable[0xF2] = func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.C)) }
	opcodeTable[0xEA] = func(c *CPU) { c.writeByte(c.fetch16(), c.A) }
	opcodeTable[0xFA] = func(c *CPU) { c.A = c.readByte(c.fetch16()) }

	opcodeTable[0xE8] = func(c *CPU) {
		offset := int8(c.fetch())
		c.tick()
		c.SP = c.addSPSigned(offset)
		c.tick()
	}
	opcodeTable[0xF8] = func(c *CPU) {
		offset := int8(c.fetch())
		c.SetHL(c.addSPSigned(offset))
		c.tick()
	}
	opcodeTable[0xF9] = func(c *CPU) { c.tick(); c.SP = c.HL() }

	opcodeTable[0xF3] = func(c *CPU) { c.di() }
	opcodeTable[0xFB] = func(c *CPU) { c.ei() }

	for _, op := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		op := op
		opcodeTable[op] = func(c *CPU) { c.illegal(op) }
	}
}
