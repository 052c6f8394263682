// Package gameboy wires cartridge, bus, CPU, timer, PPU, joypad and
// serial together and drives them in lock-step: every CPU.Step() result
// feeds the timer, the in-flight OAM DMA transfer, and the PPU the same
// number of T-cycles before the next instruction fetches (spec §2, §5).
package gameboy

import (
	"time"

	"github.com/nullpilot/dmgcore/internal/cartridge"
	"github.com/nullpilot/dmgcore/internal/cpu"
	"github.com/nullpilot/dmgcore/internal/interrupts"
	"github.com/nullpilot/dmgcore/internal/joypad"
	"github.com/nullpilot/dmgcore/internal/mmu"
	"github.com/nullpilot/dmgcore/internal/ppu"
	"github.com/nullpilot/dmgcore/internal/serial"
	"github.com/nullpilot/dmgcore/internal/timer"
	"github.com/nullpilot/dmgcore/pkg/log"
)

// ClockSpeed is the DMG's T-cycle clock, 4.194304 MHz.
const ClockSpeed = 4194304

// FrameRate is the LCD's refresh rate; TicksPerFrame is the number of
// T-cycles in one frame at that rate. RunFrame does not use it: it steps
// until the PPU reports a completed frame.
const FrameRate = 60
const TicksPerFrame = ClockSpeed / FrameRate

// GameBoy owns every emulated component and is the only thing host code
// (cmd/dmgcore, pkg/display) needs to hold a reference to.
type GameBoy struct {
	CPU        *cpu.CPU
	Bus        *mmu.Bus
	PPU        *ppu.PPU
	Timer      *timer.Timer
	Joypad     *joypad.Pad
	Serial     *serial.Controller
	Interrupts *interrupts.Service

	cart *cartridge.Cartridge
	log  log.Logger

	lastRTCTick time.Time
}

// GameBoyOpt configures a GameBoy at construction time.
type GameBoyOpt func(*GameBoy)

// WithBootROM overlays rom at 0x0000-0x00FF until the CPU writes a
// nonzero value to 0xFF50, and resets the CPU to the boot ROM's own
// entry state (spec §3) instead of the post-boot register values.
func WithBootROM(rom []byte) GameBoyOpt {
	return func(g *GameBoy) {
		g.Bus = mmu.New(g.cart, g.PPU, g.Timer, g.Joypad, g.Serial, g.Interrupts, rom)
		g.CPU = cpu.New(g.Bus, g.Interrupts)
		g.CPU.PC = 0x0000
		g.CPU.SP = 0x0000
		g.CPU.SetAF(0)
		g.CPU.SetBC(0)
		g.CPU.SetDE(0)
		g.CPU.SetHL(0)
	}
}

// WithLogger overrides the default stdout logger.
func WithLogger(l log.Logger) GameBoyOpt {
	return func(g *GameBoy) { g.log = l }
}

// WithSerialSink attaches a line sink to the serial controller; common
// uses are a test-ROM output capture or a log file.
func WithSerialSink(sink serial.Sink) GameBoyOpt {
	return func(g *GameBoy) { g.Serial.SetSink(sink) }
}

// SaveEvery starts a background ticker that flushes battery RAM to the
// cartridge's Sink every interval, so progress survives a crash between
// explicit saves.
func SaveEvery(interval time.Duration) GameBoyOpt {
	return func(g *GameBoy) {
		t := time.NewTicker(interval)
		go func() {
			for range t.C {
				if err := g.cart.Flush(); err != nil {
					// PersistenceFailure (spec §7) is surfaced but never
					// fatal — emulation keeps running either way.
					g.log.Warnf("periodic save failed: %v", err)
				}
			}
		}()
	}
}

// New loads rom against sink (which may be nil for battery-less
// cartridges) and wires every subsystem together, applying opts in
// order. Without WithBootROM, the CPU starts at the post-boot register
// values described in spec §3.
func New(rom []byte, sink cartridge.Sink, opts ...GameBoyOpt) (*GameBoy, error) {
	cart, err := cartridge.Load(rom, sink)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	video := ppu.New(irq)
	clock := timer.New(irq)
	pad := joypad.New(irq)
	sc := serial.NewController(irq, nil)
	bus := mmu.New(cart, video, clock, pad, sc, irq, nil)

	g := &GameBoy{
		CPU:        cpu.New(bus, irq),
		Bus:        bus,
		PPU:        video,
		Timer:      clock,
		Joypad:     pad,
		Serial:     sc,
		Interrupts: irq,
		cart:       cart,
		log:        log.New(),
	}
	g.lastRTCTick = rtcEpoch()

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Step executes exactly one CPU instruction (or idle HALT/STOP tick),
// then advances the timer, any in-flight OAM DMA transfer, and the PPU
// by the same number of T-cycles — the sequential model spec §5
// requires, as opposed to running each subsystem on its own goroutine.
// A non-nil error means the CPU hit one of the eleven illegal opcodes
// (spec §7, cpu.IllegalOpcode) and has locked up; the other subsystems
// still advance by cycles so the frame in progress is flushed, but the
// CPU will keep returning the same error on every future Step.
func (g *GameBoy) Step() (uint8, error) {
	cycles := g.CPU.Step()

	g.Timer.Step(uint16(cycles))
	g.PPU.Step(uint16(cycles))
	for i := uint8(0); i < cycles; i++ {
		g.Bus.StepDMA()
	}

	g.tickRTC()
	return cycles, g.CPU.Err()
}

// tickRTC advances the cartridge's real-time clock, if it has one, by
// however many whole seconds of wall-clock time have elapsed since the
// last tick. Sub-second remainders are carried forward rather than
// dropped, so short frames don't starve the clock.
func (g *GameBoy) tickRTC() {
	rtc, ok := g.cart.RTC()
	if !ok {
		return
	}
	elapsed := time.Since(g.lastRTCTick)
	seconds := int(elapsed / time.Second)
	if seconds == 0 {
		return
	}
	rtc.Tick(seconds)
	g.lastRTCTick = g.lastRTCTick.Add(time.Duration(seconds) * time.Second)
}

// RunFrame steps the emulation until the PPU reports a completed frame
// and returns it. If the CPU locks up on an illegal opcode mid-frame,
// RunFrame stops immediately and returns the partial frame alongside
// the error, matching spec §7's "the frame is flushed" requirement.
func (g *GameBoy) RunFrame() ([ppu.ScreenHeight][ppu.ScreenWidth]uint8, error) {
	for !g.PPU.FrameReady() {
		if _, err := g.Step(); err != nil {
			return g.PPU.Frame(), err
		}
	}
	return g.PPU.Frame(), nil
}

// PressButton and ReleaseButton forward host input to the joypad.
func (g *GameBoy) PressButton(btn joypad.Button)   { g.Joypad.Press(btn) }
func (g *GameBoy) ReleaseButton(btn joypad.Button) { g.Joypad.Release(btn) }

// Save flushes battery-backed cartridge RAM through the configured Sink.
func (g *GameBoy) Save() error { return g.cart.Flush() }

func rtcEpoch() time.Time { return time.Now() }
