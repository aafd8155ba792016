// Package word256 implements the fixed-width 256-bit unsigned integer used
// as the EVM's native machine word. Every value is immutable: arithmetic,
// bitwise, comparison, and conversion methods always return a new Word256
// rather than mutating the receiver.
//
// A Word256 is four uint64 limbs in little-endian limb order: l0 holds bits
// 0-63 (least significant), l3 holds bits 192-255 (most significant). This
// is an internal implementation detail; the public byte representation
// (Bytes, FromBytes, Get) is always 32-byte big-endian, matching calldata,
// storage keys, and RLP scalar encoding.
//
// Word256 is not a general-purpose big-integer type: it never grows beyond
// 256 bits, arithmetic wraps modulo 2^256, and division by zero yields zero
// rather than an error, matching EVM opcode semantics.
package word256

import "encoding/binary"

// Word256 is an immutable 256-bit unsigned integer.
type Word256 struct {
	l0, l1, l2, l3 uint64
}

// Distinguished constants. All are zero-value-safe to share across
// goroutines since Word256 is immutable.
var (
	// ZERO is the additive identity.
	ZERO = Word256{}
	// ONE is the multiplicative identity.
	ONE = Word256{l0: 1}
	// MinusOne is two's-complement -1: every bit set. Its bit pattern is
	// identical to Max; the two differ only in how a caller interprets them.
	MinusOne = Word256{l0: ^uint64(0), l1: ^uint64(0), l2: ^uint64(0), l3: ^uint64(0)}
	// Max is the unsigned maximum (2^256 - 1): every bit set.
	Max = MinusOne
)

// FromLimbs builds a Word256 directly from its four little-endian limbs.
// l0 is the least significant limb, l3 the most significant.
func FromLimbs(l0, l1, l2, l3 uint64) Word256 {
	return Word256{l0: l0, l1: l1, l2: l2, l3: l3}
}

// FromU64 zero-extends a uint64 into the least-significant limb.
func FromU64(v uint64) Word256 {
	return Word256{l0: v}
}

// FromU32 zero-extends a uint32.
func FromU32(v uint32) Word256 {
	return Word256{l0: uint64(v)}
}

// FromByte zero-extends a single byte.
func FromByte(v byte) Word256 {
	return Word256{l0: uint64(v)}
}

// FromBytes interprets b as a big-endian unsigned integer and zero-pads it
// on the high side to 32 bytes. It fails with ErrInvalidLength if len(b) >
// 32.
func FromBytes(b []byte) (Word256, error) {
	if len(b) > 32 {
		return Word256{}, ErrInvalidLength
	}
	var padded [32]byte
	copy(padded[32-len(b):], b)
	return fromPadded(padded), nil
}

// fromPadded unpacks an exactly-32-byte big-endian array into limbs.
func fromPadded(b [32]byte) Word256 {
	return Word256{
		l3: binary.BigEndian.Uint64(b[0:8]),
		l2: binary.BigEndian.Uint64(b[8:16]),
		l1: binary.BigEndian.Uint64(b[16:24]),
		l0: binary.BigEndian.Uint64(b[24:32]),
	}
}

// Bytes returns the canonical 32-byte big-endian representation, zero-padded
// on the high side.
func (w Word256) Bytes() [32]byte {
	var b [32]byte
	binary.BigEndian.PutUint64(b[0:8], w.l3)
	binary.BigEndian.PutUint64(b[8:16], w.l2)
	binary.BigEndian.PutUint64(b[16:24], w.l1)
	binary.BigEndian.PutUint64(b[24:32], w.l0)
	return b
}

// Get returns the big-endian byte at position i, where i = 0 is the most
// significant byte. It fails with ErrIndexOutOfRange outside [0, 31].
func (w Word256) Get(i int) (byte, error) {
	if i < 0 || i > 31 {
		return 0, ErrIndexOutOfRange
	}
	b := w.Bytes()
	return b[i], nil
}

// Limbs returns the four little-endian limbs (l0 least significant).
func (w Word256) Limbs() [4]uint64 {
	return [4]uint64{w.l0, w.l1, w.l2, w.l3}
}

// Equal reports bit-equality of the four limbs.
func (w Word256) Equal(other Word256) bool {
	return w == other
}

// String renders the value as a 0x-prefixed, 64-digit hex string, used by
// the word256vm command's stack dump and by test failure messages.
func (w Word256) String() string {
	b := w.Bytes()
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 2+64)
	out[0], out[1] = '0', 'x'
	for i, c := range b {
		out[2+i*2] = hexdigits[c>>4]
		out[2+i*2+1] = hexdigits[c&0xf]
	}
	return string(out)
}
