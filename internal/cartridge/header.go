package cartridge

import (
	"fmt"
	"strings"
)

// Kind identifies which MBC variant a cartridge uses (spec §3, §4.1).
type Kind uint8

const (
	KindNone Kind = iota
	KindMBC1
	KindMBC2
	KindMBC3
	KindMBC5
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	default:
		return "Unknown"
	}
}

// Header is the decoded 0x0134-0x0149 cartridge header region.
type Header struct {
	Title      string
	CartType   uint8
	Kind       Kind
	Battery    bool
	ROMBanks   int
	ROMSize    int
	RAMSize    int
	HasRTC     bool
}

// batteryTypes lists cartridge-type bytes that carry battery-backed RAM
// (spec §4.1).
var batteryTypes = map[uint8]bool{
	0x03: true, 0x06: true, 0x09: true, 0x0F: true,
	0x10: true, 0x13: true, 0x1B: true, 0x1E: true,
}

var rtcTypes = map[uint8]bool{0x0F: true, 0x10: true}

// kindForType maps a cartridge-type byte (0x0147) to an MBC Kind.
func kindForType(t uint8) (Kind, error) {
	switch t {
	case 0x00, 0x08, 0x09:
		return KindNone, nil
	case 0x01, 0x02, 0x03:
		return KindMBC1, nil
	case 0x05, 0x06:
		return KindMBC2, nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return KindMBC3, nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return KindMBC5, nil
	default:
		return 0, fmt.Errorf("%w: cartridge type %#02x", ErrUnsupportedMBC, t)
	}
}

// romBanks maps the 0x0148 ROM-size code to a bank count.
func romBanks(code uint8) int {
	if code > 8 {
		return 2
	}
	return 2 << code
}

// ramSize maps the 0x0149 RAM-size code to a byte count.
func ramSize(code uint8) int {
	switch code {
	case 0:
		return 0
	case 1:
		return 2 * 1024
	case 2:
		return 8 * 1024
	case 3:
		return 32 * 1024
	case 4:
		return 128 * 1024
	case 5:
		return 64 * 1024
	default:
		return 0
	}
}

// parseHeader decodes the header region of rom (spec §6). rom must be at
// least 0x150 bytes long.
func parseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: rom too short for header (%d bytes)", ErrHeaderMismatch, len(rom))
	}

	title := strings.TrimRight(string(rom[0x134:0x143]), "\x00")
	cartType := rom[0x147]

	kind, err := kindForType(cartType)
	if err != nil {
		return nil, err
	}

	banks := romBanks(rom[0x148])
	declaredSize := banks * 16 * 1024
	if len(rom) < declaredSize {
		return nil, fmt.Errorf("%w: header declares %d bytes, file has %d", ErrHeaderMismatch, declaredSize, len(rom))
	}

	return &Header{
		Title:    title,
		CartType: cartType,
		Kind:     kind,
		Battery:  batteryTypes[cartType],
		HasRTC:   rtcTypes[cartType],
		ROMBanks: banks,
		ROMSize:  declaredSize,
		RAMSize:  ramSize(rom[0x149]),
	}, nil
}

// PersistKey is the key used to look up battery RAM in the host's
// key/value sink: the cartridge title, lowercased and NUL-trimmed
// (spec §6).
func (h *Header) PersistKey() string {
	return strings.ToLower(strings.TrimRight(h.Title, "\x00"))
}
