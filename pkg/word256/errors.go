package word256

import "errors"

// Errors returned by Word256 constructors and accessors. These are the only
// failure modes the value type itself can produce; arithmetic never errors
// (see package doc).
var (
	// ErrInvalidLength is returned by FromBytes when given more than 32 bytes.
	ErrInvalidLength = errors.New("word256: input exceeds 32 bytes")
	// ErrIndexOutOfRange is returned by Get for an index outside [0, 31].
	ErrIndexOutOfRange = errors.New("word256: byte index out of range [0,31]")
	// ErrBitIndexOutOfRange is returned by GetBit/SetBit for an index
	// outside [0, 255].
	ErrBitIndexOutOfRange = errors.New("word256: bit index out of range [0,255]")
)
