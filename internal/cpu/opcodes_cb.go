package cpu

// cbTable holds all 256 CB-prefixed opcodes. The eight rotate/shift
// groups and the BIT/RES/SET groups are each a regular function of
// (group-or-bit, operand) over the same 8 operand slots (B,C,D,E,H,L,
// (HL),A), so rather than hand-writing 256 near-identical entries they
// are generated once at init time (spec §9).
var cbTable [256]func(*CPU)

var shiftOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc,
	(*CPU).rrc,
	(*CPU).rl,
	(*CPU).rr,
	(*CPU).sla,
	(*CPU).sra,
	(*CPU).swap,
	(*CPU).srl,
}

func init() {
	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		operand := op & 0x07

		switch {
		case op < 0x40:
			group := (op >> 3) & 0x07
			shift := shiftOps[group]
			cbTable[op] = func(c *CPU) {
				v := c.readHLOrReg(operand)
				c.writeHLOrReg(operand, shift(c, v))
			}
		case op < 0x80:
			bit := (op >> 3) & 0x07
			cbTable[op] = func(c *CPU) {
				c.bit(c.readHLOrReg(operand), bit)
			}
		case op < 0xC0:
			bit := (op >> 3) & 0x07
			cbTable[op] = func(c *CPU) {
				c.writeHLOrReg(operand, res(c.readHLOrReg(operand), bit))
			}
		default:
			bit := (op >> 3) & 0x07
			cbTable[op] = func(c *CPU) {
				c.writeHLOrReg(operand, set(c.readHLOrReg(operand), bit))
			}
		}
	}
}
