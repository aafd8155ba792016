// Package conformance cross-checks Word256 arithmetic against two
// independent oracles: the standard library's math/big (arbitrary
// precision, trusted but not EVM-shaped) and github.com/holiman/uint256
// (a widely used, independently implemented 256-bit machine-word type).
// Agreement across all three rules out an entire class of bugs that a
// single self-consistent implementation can't catch.
package conformance

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/eth2030/word256vm/pkg/word256"
	"github.com/holiman/uint256"
)

var modulus = new(big.Int).Lsh(big.NewInt(1), 256)

func wordToBig(w word256.Word256) *big.Int {
	b := w.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func wordToU256(w word256.Word256) *uint256.Int {
	b := w.Bytes()
	var u uint256.Int
	u.SetBytes(b[:])
	return &u
}

func u256ToWord(u *uint256.Int) word256.Word256 {
	var b [32]byte
	u.WriteToArray32(&b)
	got, err := word256.FromBytes(b[:])
	if err != nil {
		panic(err)
	}
	return got
}

func randomWord(r *rand.Rand) word256.Word256 {
	var limbs [4]uint64
	for i := range limbs {
		limbs[i] = r.Uint64()
	}
	return word256.FromLimbs(limbs[0], limbs[1], limbs[2], limbs[3])
}

// corpus returns a mix of edge-case and random values, shared across the
// property checks below.
func corpus(r *rand.Rand, n int) []word256.Word256 {
	vs := []word256.Word256{
		word256.ZERO, word256.ONE, word256.MinusOne, word256.Max,
		word256.FromU64(2), word256.FromU64(0xffffffff),
	}
	for len(vs) < n {
		vs = append(vs, randomWord(r))
	}
	return vs
}

func TestAddAgainstBigAndUint256(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	vs := corpus(r, 40)
	for _, x := range vs {
		for _, y := range vs {
			got := x.Add(y)

			wantBig := new(big.Int).Add(wordToBig(x), wordToBig(y))
			wantBig.Mod(wantBig, modulus)
			if wordToBig(got).Cmp(wantBig) != 0 {
				t.Fatalf("Add(%s,%s) = %s, math/big wants %s", x, y, got, wantBig)
			}

			var wantU256 uint256.Int
			wantU256.Add(wordToU256(x), wordToU256(y))
			if !got.Equal(u256ToWord(&wantU256)) {
				t.Fatalf("Add(%s,%s) = %s, uint256 wants %s", x, y, got, u256ToWord(&wantU256))
			}
		}
	}
}

func TestMulAgainstBigAndUint256(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	vs := corpus(r, 30)
	for _, x := range vs {
		for _, y := range vs {
			got := x.Mul(y)

			wantBig := new(big.Int).Mul(wordToBig(x), wordToBig(y))
			wantBig.Mod(wantBig, modulus)
			if wordToBig(got).Cmp(wantBig) != 0 {
				t.Fatalf("Mul(%s,%s) = %s, math/big wants %s", x, y, got, wantBig)
			}

			var wantU256 uint256.Int
			wantU256.Mul(wordToU256(x), wordToU256(y))
			if !got.Equal(u256ToWord(&wantU256)) {
				t.Fatalf("Mul(%s,%s) = %s, uint256 wants %s", x, y, got, u256ToWord(&wantU256))
			}
		}
	}
}

func TestDivModAgainstUint256(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	vs := corpus(r, 40)
	for _, x := range vs {
		for _, y := range vs {
			gotDiv := x.Div(y)
			gotMod := x.Mod(y)

			var wantDiv, wantMod uint256.Int
			if y.IsZero() {
				wantDiv.Clear()
				wantMod.Clear()
			} else {
				wantDiv.Div(wordToU256(x), wordToU256(y))
				wantMod.Mod(wordToU256(x), wordToU256(y))
			}
			if !gotDiv.Equal(u256ToWord(&wantDiv)) {
				t.Fatalf("Div(%s,%s) = %s, uint256 wants %s", x, y, gotDiv, u256ToWord(&wantDiv))
			}
			if !gotMod.Equal(u256ToWord(&wantMod)) {
				t.Fatalf("Mod(%s,%s) = %s, uint256 wants %s", x, y, gotMod, u256ToWord(&wantMod))
			}
		}
	}
}

func TestSDivSModAgainstUint256(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	vs := corpus(r, 40)
	for _, x := range vs {
		for _, y := range vs {
			gotDiv := x.SDiv(y)
			gotMod := x.SMod(y)

			var wantDiv, wantMod uint256.Int
			if y.IsZero() {
				wantDiv.Clear()
				wantMod.Clear()
			} else {
				wantDiv.SDiv(wordToU256(x), wordToU256(y))
				wantMod.SMod(wordToU256(x), wordToU256(y))
			}
			if !gotDiv.Equal(u256ToWord(&wantDiv)) {
				t.Fatalf("SDiv(%s,%s) = %s, uint256 wants %s", x, y, gotDiv, u256ToWord(&wantDiv))
			}
			if !gotMod.Equal(u256ToWord(&wantMod)) {
				t.Fatalf("SMod(%s,%s) = %s, uint256 wants %s", x, y, gotMod, u256ToWord(&wantMod))
			}
		}
	}
}

func TestBitwiseAndShiftAgainstUint256(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	vs := corpus(r, 20)
	shifts := []word256.Word256{word256.ZERO, word256.FromU64(1), word256.FromU64(255), word256.FromU64(256), word256.Max}

	for _, x := range vs {
		for _, y := range vs {
			if !u256ToWord(wordToU256(x).And(wordToU256(x), wordToU256(y))).Equal(x.And(y)) {
				t.Fatalf("And(%s,%s) mismatch", x, y)
			}
			if !u256ToWord(wordToU256(x).Or(wordToU256(x), wordToU256(y))).Equal(x.Or(y)) {
				t.Fatalf("Or(%s,%s) mismatch", x, y)
			}
			if !u256ToWord(wordToU256(x).Xor(wordToU256(x), wordToU256(y))).Equal(x.Xor(y)) {
				t.Fatalf("Xor(%s,%s) mismatch", x, y)
			}
		}
		for _, shift := range shifts {
			var wantShl, wantShr uint256.Int
			wantShl.Lsh(wordToU256(x), uint(shift.ClampedToU64()))
			wantShr.Rsh(wordToU256(x), uint(shift.ClampedToU64()))
			if shift.ClampedToU64() >= 256 {
				wantShl.Clear()
				wantShr.Clear()
			}
			if !u256ToWord(&wantShl).Equal(x.Shl(shift)) {
				t.Fatalf("Shl(%s,%s) mismatch", x, shift)
			}
			if !u256ToWord(&wantShr).Equal(x.Shr(shift)) {
				t.Fatalf("Shr(%s,%s) mismatch", x, shift)
			}
		}
	}
}

func TestCmpAgainstUint256(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	vs := corpus(r, 30)
	for _, x := range vs {
		for _, y := range vs {
			wantLt := wordToU256(x).Lt(wordToU256(y))
			gotLt := x.CmpUnsigned(y) == word256.Less
			if wantLt != gotLt {
				t.Fatalf("Lt(%s,%s): uint256=%v word256=%v", x, y, wantLt, gotLt)
			}
		}
	}
}

func TestExpAgainstUint256SmallExponents(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	bases := corpus(r, 10)
	for _, base := range bases {
		for e := uint64(0); e <= 16; e++ {
			exp := word256.FromU64(e)
			got := base.Exp(exp)

			var want uint256.Int
			want.Exp(wordToU256(base), wordToU256(exp))
			if !got.Equal(u256ToWord(&want)) {
				t.Fatalf("Exp(%s,%d) = %s, uint256 wants %s", base, e, got, u256ToWord(&want))
			}
		}
	}
}
