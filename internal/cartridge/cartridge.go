// Package cartridge decodes a ROM image's header and wraps it in the
// memory bank controller its cartridge type names, presenting a single
// Read/Write interface the memory bus can address uniformly regardless
// of which MBC variant backs it (spec §4.1, §6).
package cartridge

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// MBC is the banking behaviour every cartridge variant implements. The
// bus hands it addresses in the 0x0000-0x7FFF (ROM) and 0xA000-0xBFFF
// (external RAM) windows unmodified; everything else is the bus's job.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// RAM returns the external RAM backing store for persistence, or
	// nil if the cartridge has none.
	RAM() []byte
}

// RTC is implemented by MBC variants that carry a real-time clock
// (currently MBC3). The bus exposes it only so a host can latch and
// advance wall-clock time; the CPU never calls it directly.
type RTC interface {
	Latch()
	Tick(seconds int)
}

// Sink persists and restores battery-backed external RAM, keyed by
// PersistKey. A nil Sink makes battery saves a no-op.
type Sink interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Cartridge owns the decoded header and the MBC it selects.
type Cartridge struct {
	header *Header
	mbc    MBC
	sink   Sink
}

// Load decodes rom's header, builds the matching MBC, and — if the
// cartridge has battery-backed RAM and sink is non-nil — restores any
// previously persisted contents.
func Load(rom []byte, sink Sink) (*Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	mbc, err := newMBC(h, rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{header: h, mbc: mbc, sink: sink}

	if h.Battery && sink != nil {
		if saved, err := sink.Load(h.PersistKey()); err == nil && saved != nil {
			copy(mbc.RAM(), saved)
		}
	}

	return c, nil
}

func newMBC(h *Header, rom []byte) (MBC, error) {
	switch h.Kind {
	case KindNone:
		return newNoneMBC(rom), nil
	case KindMBC1:
		return newMBC1(rom, h.RAMSize), nil
	case KindMBC2:
		return newMBC2(rom), nil
	case KindMBC3:
		return newMBC3(rom, h.RAMSize), nil
	case KindMBC5:
		return newMBC5(rom, h.RAMSize), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMBC, h.Kind)
	}
}

// Read dispatches a ROM or external-RAM read to the underlying MBC.
func (c *Cartridge) Read(addr uint16) uint8 { return c.mbc.Read(addr) }

// Write dispatches a ROM-window (bank control) or external-RAM write to
// the underlying MBC.
func (c *Cartridge) Write(addr uint16, value uint8) { c.mbc.Write(addr, value) }

// Title returns the cartridge's header title.
func (c *Cartridge) Title() string { return c.header.Title }

// Kind returns the cartridge's MBC variant.
func (c *Cartridge) Kind() Kind { return c.header.Kind }

// RTC returns the cartridge's real-time clock, if it has one.
func (c *Cartridge) RTC() (RTC, bool) {
	rtc, ok := c.mbc.(RTC)
	return rtc, ok
}

// Flush persists battery-backed RAM through the Sink given to Load, if
// both the cartridge has a battery and a Sink was provided.
func (c *Cartridge) Flush() error {
	if !c.header.Battery || c.sink == nil {
		return nil
	}
	ram := c.mbc.RAM()
	if ram == nil {
		return nil
	}
	return c.sink.Save(c.header.PersistKey(), ram)
}

// Checksum returns the hex-encoded MD5 of the cartridge title, a
// filesystem-safe identifier for the cartridge. It is not the key used
// for battery saves (that is PersistKey); cmd/dmgcore reports it in its
// startup log line.
func (c *Cartridge) Checksum() string {
	sum := md5.Sum([]byte(c.header.Title))
	return hex.EncodeToString(sum[:])
}
