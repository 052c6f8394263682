// Package interrupts implements the IF/IE register pair shared by every
// subsystem that can request or dispatch an interrupt: the CPU reads it
// before each fetch, while the timer, PPU, joypad and serial packages
// only ever call Request.
package interrupts

import "fmt"

// Address is the dispatch vector for an interrupt source.
type Address = uint16

const (
	VBlank Address = 0x0040
	LCD    Address = 0x0048
	Timer  Address = 0x0050
	Serial Address = 0x0058
	Joypad Address = 0x0060
)

// Flag is the bit index of an interrupt source within IF/IE.
type Flag = uint8

const (
	VBlankFlag Flag = 0
	LCDFlag    Flag = 1
	TimerFlag  Flag = 2
	SerialFlag Flag = 3
	JoypadFlag Flag = 4
)

// vectors is indexed by Flag and gives the priority order spec §4.5
// dispatch uses: lowest-numbered pending+enabled source wins.
var vectors = [5]Address{VBlank, LCD, Timer, Serial, Joypad}

const (
	// FlagRegister is IF (0xFF0F). Upper 3 bits always read as 1.
	FlagRegister uint16 = 0xFF0F
	// EnableRegister is IE (0xFFFF). Upper 3 bits always read as 1.
	EnableRegister uint16 = 0xFFFF
)

// Service holds the IF/IE register pair. It is shared (by pointer) between
// the CPU and every subsystem that can raise an interrupt.
type Service struct {
	Flag   uint8 // IF, 0xFF0F
	Enable uint8 // IE, 0xFFFF
	IME    bool  // interrupt master enable
}

// NewService returns a new, all-zero Service.
func NewService() *Service {
	return &Service{}
}

// Request sets the IF bit for the given source.
func (s *Service) Request(flag Flag) {
	s.Flag |= 1 << flag
}

// Clear clears the IF bit for the given source.
func (s *Service) Clear(flag Flag) {
	s.Flag &^= 1 << flag
}

// Pending reports whether any enabled interrupt is currently requested,
// irrespective of IME: the same IE&IF check the CPU applies (through its
// own pendingInterrupts) for HALT/STOP wake-up (spec §4.5).
func (s *Service) Pending() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// NextVector returns the vector and Flag of the highest-priority pending
// and enabled interrupt, and whether one exists.
func (s *Service) NextVector() (Address, Flag, bool) {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0, 0, false
	}
	for f := Flag(0); f < 5; f++ {
		if pending&(1<<f) != 0 {
			return vectors[f], f, true
		}
	}
	return 0, 0, false
}

// Read returns the value of the register at the given address.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case FlagRegister:
		return s.Flag&0b0001_1111 | 0b1110_0000
	case EnableRegister:
		return s.Enable | 0b1110_0000
	}
	panic(fmt.Sprintf("interrupts: illegal read from %04X", address))
}

// Write writes the given value to the register at the given address.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case FlagRegister:
		s.Flag = value & 0x1F
	case EnableRegister:
		s.Enable = value
	default:
		panic(fmt.Sprintf("interrupts: illegal write to %04X", address))
	}
}
