// Package serial implements the byte-log shim spec.md's Non-goals carve
// out of full serial-link emulation: just enough of SB (0xFF01) and SC
// (0xFF02) to capture the output Blargg-style test ROMs emit one byte at
// a time (spec §4.2, §6). Real cable-link shift-register timing is out
// of scope.
package serial

import "github.com/nullpilot/dmgcore/internal/interrupts"

// Sink receives flushed serial lines. Host code (a test harness, a log
// file, the websocket streamer) implements this.
type Sink func(line string)

// Controller holds SB/SC and accumulates bytes written to SB into a line
// buffer, flushing it to Sink when the CPU writes a newline (0x0A) to SB.
// Writing the "start transfer, internal clock" pattern (0x81) to SC does
// not flush; it completes the (simulated) transfer at once and requests
// the serial interrupt.
type Controller struct {
	data    uint8
	control uint8
	buf     []byte
	irq     *interrupts.Service
	sink    Sink
}

// NewController returns a Controller that raises the serial interrupt
// through irq and flushes completed lines to sink. sink may be nil.
func NewController(irq *interrupts.Service, sink Sink) *Controller {
	return &Controller{irq: irq, sink: sink, control: 0x7E}
}

// SetSink replaces the line sink.
func (c *Controller) SetSink(sink Sink) { c.sink = sink }

// Read returns SB or SC.
func (c *Controller) Read(addr uint16) uint8 {
	switch addr {
	case 0xFF01:
		return c.data
	case 0xFF02:
		return c.control | 0x7E
	}
	return 0xFF
}

// Write handles a CPU write to SB or SC. Per spec §4.2, a write of 0x0A
// (newline) to SB flushes the accumulated line to sink; any other byte is
// appended. Writing 0x81 ("start transfer, internal clock") to SC is the
// handshake test ROMs use before writing the next SB byte; since no real
// link partner exists, the transfer completes immediately and the serial
// interrupt is requested so the ROM doesn't stall waiting for it.
func (c *Controller) Write(addr uint16, value uint8) {
	switch addr {
	case 0xFF01:
		c.data = value
		if value == 0x0A {
			c.flush()
		} else {
			c.buf = append(c.buf, value)
		}
	case 0xFF02:
		c.control = value
		if value == 0x81 {
			c.control &^= 0x80
			c.irq.Request(interrupts.SerialFlag)
		}
	}
}

func (c *Controller) flush() {
	if c.sink != nil && len(c.buf) > 0 {
		c.sink(string(c.buf))
	}
	c.buf = c.buf[:0]
}

// Buffered returns the not-yet-flushed line contents, for tests.
func (c *Controller) Buffered() string {
	return string(c.buf)
}
