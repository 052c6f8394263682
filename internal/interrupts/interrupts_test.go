package interrupts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestAndClear(t *testing.T) {
	s := NewService()
	s.Request(TimerFlag)
	assert.Equal(t, uint8(1<<TimerFlag), s.Flag)
	s.Clear(TimerFlag)
	assert.Equal(t, uint8(0), s.Flag)
}

func TestPendingRequiresBothFlagAndEnable(t *testing.T) {
	s := NewService()
	s.Request(VBlankFlag)
	assert.False(t, s.Pending(), "not enabled yet")
	s.Enable = 1 << VBlankFlag
	assert.True(t, s.Pending())
}

func TestNextVectorPriorityOrder(t *testing.T) {
	s := NewService()
	s.Enable = 0x1F
	s.Request(TimerFlag)
	s.Request(VBlankFlag)

	addr, flag, ok := s.NextVector()
	assert.True(t, ok)
	assert.Equal(t, VBlankFlag, flag, "VBlank outranks Timer")
	assert.Equal(t, VBlank, addr)
}

func TestNoVectorWhenNothingPending(t *testing.T) {
	s := NewService()
	s.Enable = 0x1F
	_, _, ok := s.NextVector()
	assert.False(t, ok)
}

func TestFlagRegisterReadMasksUpperBits(t *testing.T) {
	s := NewService()
	s.Flag = 0xFF
	assert.Equal(t, uint8(0xFF), s.Read(FlagRegister), "upper 3 bits already read as 1, low 5 preserved")
	s.Write(FlagRegister, 0xFF)
	assert.Equal(t, uint8(0x1F), s.Flag)
}
