package cpu

import "fmt"

// IllegalOpcode reports execution of one of the Sharp LR35902's eleven
// undefined opcodes (spec §7: 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC,
// 0xED, 0xF4, 0xFC, 0xFD). Real hardware locks the CPU up permanently;
// dmgcore models that by halting instruction dispatch and leaving this
// error in place so the coordinator can surface it to the host instead
// of the lockup passing for a silent freeze.
type IllegalOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcode) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
