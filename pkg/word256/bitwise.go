package word256

import "math/bits"

// And returns the limb-wise bitwise AND of w and x.
func (w Word256) And(x Word256) Word256 {
	return Word256{w.l0 & x.l0, w.l1 & x.l1, w.l2 & x.l2, w.l3 & x.l3}
}

// Or returns the limb-wise bitwise OR of w and x.
func (w Word256) Or(x Word256) Word256 {
	return Word256{w.l0 | x.l0, w.l1 | x.l1, w.l2 | x.l2, w.l3 | x.l3}
}

// Xor returns the limb-wise bitwise XOR of w and x.
func (w Word256) Xor(x Word256) Word256 {
	return Word256{w.l0 ^ x.l0, w.l1 ^ x.l1, w.l2 ^ x.l2, w.l3 ^ x.l3}
}

// Not returns the limb-wise bitwise complement of w.
func (w Word256) Not() Word256 {
	return Word256{^w.l0, ^w.l1, ^w.l2, ^w.l3}
}

// getBitUnchecked returns bit i (0 = least significant) without bounds
// checking; used internally where i is already known to be in range.
func (w Word256) getBitUnchecked(i int) bool {
	limbs := w.Limbs()
	return limbs[i/64]&(uint64(1)<<uint(i%64)) != 0
}

// GetBit returns bit i, where i = 0 is the least significant bit. It fails
// with ErrBitIndexOutOfRange outside [0, 255].
func (w Word256) GetBit(i int) (bool, error) {
	if i < 0 || i > 255 {
		return false, ErrBitIndexOutOfRange
	}
	return w.getBitUnchecked(i), nil
}

// SetBit returns a copy of w with bit i set to 1. It fails with
// ErrBitIndexOutOfRange outside [0, 255].
func (w Word256) SetBit(i int) (Word256, error) {
	if i < 0 || i > 255 {
		return Word256{}, ErrBitIndexOutOfRange
	}
	limbs := w.Limbs()
	limbs[i/64] |= uint64(1) << uint(i%64)
	return FromLimbs(limbs[0], limbs[1], limbs[2], limbs[3]), nil
}

// shlLimbs shifts the four limbs left by n bits, 0 <= n < 256.
func shlLimbs(limbs [4]uint64, n uint) [4]uint64 {
	wordShift := n / 64
	bitShift := n % 64
	var r [4]uint64
	for i := 3; i >= 0; i-- {
		srcIdx := i - int(wordShift)
		if srcIdx < 0 {
			continue
		}
		v := limbs[srcIdx] << bitShift
		if bitShift != 0 && srcIdx > 0 {
			v |= limbs[srcIdx-1] >> (64 - bitShift)
		}
		r[i] = v
	}
	return r
}

// shrLimbs shifts the four limbs right (logical) by n bits, 0 <= n < 256.
func shrLimbs(limbs [4]uint64, n uint) [4]uint64 {
	wordShift := n / 64
	bitShift := n % 64
	var r [4]uint64
	for i := 0; i < 4; i++ {
		srcIdx := i + int(wordShift)
		if srcIdx > 3 {
			continue
		}
		v := limbs[srcIdx] >> bitShift
		if bitShift != 0 && srcIdx < 3 {
			v |= limbs[srcIdx+1] << (64 - bitShift)
		}
		r[i] = v
	}
	return r
}

// shiftFitsUint reports whether n (a shift amount popped from the stack)
// is small enough to matter; shifts by 256 or more always produce a
// degenerate result (zero, or MinusOne for SAR).
func shiftFitsUint(n Word256) (uint, bool) {
	if !n.FitsU64() || n.ToU64() >= 256 {
		return 0, false
	}
	return uint(n.ToU64()), true
}

// Shl returns w shifted left by n bits. Shifting by 256 or more yields 0.
func (w Word256) Shl(n Word256) Word256 {
	amt, ok := shiftFitsUint(n)
	if !ok {
		return ZERO
	}
	r := shlLimbs(w.Limbs(), amt)
	return FromLimbs(r[0], r[1], r[2], r[3])
}

// Shr returns w shifted right (logical) by n bits. Shifting by 256 or more
// yields 0.
func (w Word256) Shr(n Word256) Word256 {
	amt, ok := shiftFitsUint(n)
	if !ok {
		return ZERO
	}
	r := shrLimbs(w.Limbs(), amt)
	return FromLimbs(r[0], r[1], r[2], r[3])
}

// Sar returns w shifted right (arithmetic) by n bits, filling vacated high
// bits with the sign bit. Shifting by 256 or more yields ZERO if w is
// non-negative, MinusOne if w is negative.
func (w Word256) Sar(n Word256) Word256 {
	amt, ok := shiftFitsUint(n)
	if !ok {
		if w.IsNegative() {
			return MinusOne
		}
		return ZERO
	}
	if amt == 0 {
		return w
	}
	r := shrLimbs(w.Limbs(), amt)
	if w.IsNegative() {
		// Fill the top `amt` bits with ones.
		fill := shlLimbs([4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}, 256-amt)
		r[0] |= fill[0]
		r[1] |= fill[1]
		r[2] |= fill[2]
		r[3] |= fill[3]
	}
	return FromLimbs(r[0], r[1], r[2], r[3])
}

// maskLow returns a value with the low n bits set (0 <= n <= 256).
func maskLow(n uint) Word256 {
	if n == 0 {
		return ZERO
	}
	if n >= 256 {
		return MinusOne
	}
	return ONE.Shl(FromU64(uint64(n))).Sub(ONE)
}

// SignExtend implements the EVM SIGNEXTEND operation: k identifies the
// 0-indexed byte (from the least-significant end) whose sign bit is
// extended through the remaining high bits. For k >= 31 the value is
// returned unchanged.
func (w Word256) SignExtend(k Word256) Word256 {
	if !k.FitsU64() || k.ToU64() >= 31 {
		return w
	}
	bit := uint(k.ToU64()*8 + 7)
	keep := maskLow(bit + 1)
	if w.getBitUnchecked(int(bit)) {
		return w.Or(keep.Not())
	}
	return w.And(keep)
}

// Clz returns the number of leading zero bits (256 when w is zero).
func (w Word256) Clz() int {
	if w.l3 != 0 {
		return bits.LeadingZeros64(w.l3)
	}
	if w.l2 != 0 {
		return 64 + bits.LeadingZeros64(w.l2)
	}
	if w.l1 != 0 {
		return 128 + bits.LeadingZeros64(w.l1)
	}
	if w.l0 != 0 {
		return 192 + bits.LeadingZeros64(w.l0)
	}
	return 256
}

// BitLength returns the number of bits needed to represent w (0 for ZERO).
// Clz() + BitLength() == 256 always holds.
func (w Word256) BitLength() int {
	return 256 - w.Clz()
}

// ByteLength returns ceil(BitLength/8) (0 for ZERO).
func (w Word256) ByteLength() int {
	return (w.BitLength() + 7) / 8
}
