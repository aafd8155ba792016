package word256

import (
	"math/big"
	"testing"
)

// TestAddModOverflowCarry exercises the case the spec calls out explicitly:
// an addmod reduction whose intermediate sum overflows 256 bits must not
// silently drop the carry.
func TestAddModOverflowCarry(t *testing.T) {
	m := FromU64(7)
	a := MinusOne
	b := MinusOne
	got := a.AddMod(b, m)
	want := fromBig(new(big.Int).Mod(
		new(big.Int).Add(a.toBig(), b.toBig()),
		m.toBig(),
	))
	if !got.Equal(want) {
		t.Errorf("addmod(max,max,7) = %s, want %s", got, want)
	}
}

func TestByteOpcodeScenario(t *testing.T) {
	value := FromLimbs(0, 0, 0, 1<<63) // 0x8000...00
	b, err := value.Get(0)
	if err != nil || b != 0x80 {
		t.Errorf("Get(0) = %v, %v, want 0x80", b, err)
	}
	if _, err := value.Get(32); err != ErrIndexOutOfRange {
		t.Errorf("Get(32) should be out of range, got %v", err)
	}
}

func TestClampedConversions(t *testing.T) {
	small := FromU64(42)
	if small.ClampedToU64() != 42 {
		t.Error("ClampedToU64 of small value should round-trip")
	}
	big256 := MinusOne
	if big256.ClampedToU64() == 0 {
		t.Error("ClampedToU64 of max should saturate, not be zero")
	}
	if big256.ClampedToU32() == 0 {
		t.Error("ClampedToU32 of max should saturate, not be zero")
	}
}

func TestFitsU64U32(t *testing.T) {
	if !FromU64(5).FitsU64() {
		t.Error("small value should fit u64")
	}
	if !FromU32(5).FitsU32() {
		t.Error("small value should fit u32")
	}
	if FromLimbs(0, 1, 0, 0).FitsU64() {
		t.Error("value with l1 set should not fit u64")
	}
	if FromLimbs(1<<32, 0, 0, 0).FitsU32() {
		t.Error("value with high bit of l0 set should not fit u32")
	}
}
