package word256

import "math/bits"

// Add returns the 256-bit wrapping sum of w and x via limb-by-limb carry
// propagation. It never errors: overflow wraps modulo 2^256, matching the
// EVM ADD opcode.
func (w Word256) Add(x Word256) Word256 {
	var r Word256
	var c uint64
	r.l0, c = bits.Add64(w.l0, x.l0, 0)
	r.l1, c = bits.Add64(w.l1, x.l1, c)
	r.l2, c = bits.Add64(w.l2, x.l2, c)
	r.l3, _ = bits.Add64(w.l3, x.l3, c)
	return r
}

// Sub returns the 256-bit wrapping difference w - x via limb-by-limb
// borrow propagation.
func (w Word256) Sub(x Word256) Word256 {
	var r Word256
	var b uint64
	r.l0, b = bits.Sub64(w.l0, x.l0, 0)
	r.l1, b = bits.Sub64(w.l1, x.l1, b)
	r.l2, b = bits.Sub64(w.l2, x.l2, b)
	r.l3, _ = bits.Sub64(w.l3, x.l3, b)
	return r
}

// Negate returns the two's-complement negation of w.
func (w Word256) Negate() Word256 {
	return ZERO.Sub(w)
}

// Abs returns w interpreted as a signed value, negated if negative.
// Abs(MinSigned) wraps back to MinSigned, matching EVM two's-complement
// convention (no trap on the single unrepresentable case).
func (w Word256) Abs() Word256 {
	if w.IsNegative() {
		return w.Negate()
	}
	return w
}

// mulFull computes the full 512-bit product of w and x as eight
// little-endian uint64 limbs, via 4x4 schoolbook multiplication of 64x64
// partial products.
func mulFull(w, x Word256) [8]uint64 {
	a := w.Limbs()
	b := x.Limbs()
	var r [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, r[i+j], 0)
			hi, _ = bits.Add64(hi, 0, c1)
			lo, c2 = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, c2)
			r[i+j] = lo
			carry = hi
		}
		k := i + 4
		for carry != 0 {
			r[k], carry = bits.Add64(r[k], carry, 0)
			k++
		}
	}
	return r
}

// Mul returns the low 256 bits of the 512-bit product of w and x; the high
// 256 bits are discarded (wrapping multiplication modulo 2^256).
func (w Word256) Mul(x Word256) Word256 {
	p := mulFull(w, x)
	return FromLimbs(p[0], p[1], p[2], p[3])
}

// Exp returns w raised to the exponent power, wrapping modulo 2^256, via
// left-to-right binary exponentiation. Only the significant bits of the
// exponent are visited. exp(a, 0) = 1 for every a, including a = 0;
// exp(0, e) = 0 for e != 0.
func (w Word256) Exp(exponent Word256) Word256 {
	if exponent.IsZero() {
		return ONE
	}
	nbits := exponent.BitLength()
	result := ONE
	for i := nbits - 1; i >= 0; i-- {
		result = result.Mul(result)
		if exponent.getBitUnchecked(i) {
			result = result.Mul(w)
		}
	}
	return result
}
