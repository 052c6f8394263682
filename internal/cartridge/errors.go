package cartridge

import "errors"

var (
	// ErrUnsupportedMBC is returned when a ROM's cartridge-type byte names
	// an MBC variant this core doesn't implement.
	ErrUnsupportedMBC = errors.New("cartridge: unsupported MBC type")
	// ErrHeaderMismatch is returned when the file is shorter than the
	// header's declared ROM size, or too short to hold a header at all.
	// A file longer than the declared size is accepted.
	ErrHeaderMismatch = errors.New("cartridge: header/file size mismatch")
)
