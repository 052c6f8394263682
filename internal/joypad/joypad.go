// Package joypad models the Game Boy's single I/O register (0xFF00) that
// multiplexes two 4-bit input rows — direction keys and action buttons —
// onto the same four bus lines, selected by bits 4/5 of the register
// itself (spec §4.6). Bit-level 0xFF00 masking (bits 7-6 read as 1) is the
// memory bus's job (spec §4.2); Pad only ever deals with the selectable
// row and the pressed-state mask.
package joypad

import (
	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/nullpilot/dmgcore/pkg/bits"
)

// Button is a bitmask identifying one physical button.
type Button = uint8

const (
	ButtonA      Button = 0x01
	ButtonB      Button = 0x02
	ButtonSelect Button = 0x04
	ButtonStart  Button = 0x08
	ButtonRight  Button = 0x10
	ButtonLeft   Button = 0x20
	ButtonUp     Button = 0x40
	ButtonDown   Button = 0x80
)

// actionButtons is the subset of Button selected by the action row
// (bit 5 = 0); the rest belong to the direction row (bit 4 = 0).
const actionButtons = ButtonA | ButtonB | ButtonSelect | ButtonStart

// Pad holds the joypad's selectable-row register and pressed-button mask.
type Pad struct {
	selection uint8 // bits 5-4 as last written by the CPU
	pressed   Button
	irq       *interrupts.Service
}

// New returns a new Pad with no row selected and nothing pressed.
func New(irq *interrupts.Service) *Pad {
	return &Pad{selection: 0x30, irq: irq}
}

// Read returns the low nibble exposed on the bus: inverted state of
// whichever row (or rows) is currently selected, ORed together if both
// are selected, all-ones if neither is.
func (p *Pad) Read() uint8 {
	nibble := uint8(0x0F)
	if !bits.Test(p.selection, 4) { // direction row selected
		nibble &= ^(p.directionNibble())
	}
	if !bits.Test(p.selection, 5) { // action row selected
		nibble &= ^(p.actionNibble())
	}
	return nibble
}

// Selection returns the raw bits 5-4 as last written, for bus masking.
func (p *Pad) Selection() uint8 { return p.selection }

// Write stores the row-selection bits (5-4); the lower nibble is
// read-only from the CPU's perspective.
func (p *Pad) Write(value uint8) {
	p.selection = value & 0x30
}

func (p *Pad) directionNibble() uint8 {
	n := uint8(0)
	n = bits.SetTo(n, 0, p.pressed&ButtonRight != 0)
	n = bits.SetTo(n, 1, p.pressed&ButtonLeft != 0)
	n = bits.SetTo(n, 2, p.pressed&ButtonUp != 0)
	n = bits.SetTo(n, 3, p.pressed&ButtonDown != 0)
	return n
}

func (p *Pad) actionNibble() uint8 {
	n := uint8(0)
	n = bits.SetTo(n, 0, p.pressed&ButtonA != 0)
	n = bits.SetTo(n, 1, p.pressed&ButtonB != 0)
	n = bits.SetTo(n, 2, p.pressed&ButtonSelect != 0)
	n = bits.SetTo(n, 3, p.pressed&ButtonStart != 0)
	return n
}

// Press marks a button pressed, requesting the joypad interrupt when the
// bus-visible bit transitions 1→0 for a selected row (spec §4.6).
func (p *Pad) Press(btn Button) {
	before := p.Read()
	p.pressed |= btn
	after := p.Read()
	if before&^after != 0 {
		p.irq.Request(interrupts.JoypadFlag)
	}
}

// Release marks a button released. Releasing never raises an interrupt.
func (p *Pad) Release(btn Button) {
	p.pressed &^= btn
}

// IsAction reports whether btn belongs to the action-button row, used
// only by callers translating raw key events into Button values.
func IsAction(btn Button) bool {
	return btn&actionButtons != 0
}
