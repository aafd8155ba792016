package vm

import "github.com/eth2030/word256vm/pkg/word256"

// executionFunc is the signature of an opcode transformer: it mutates the
// frame's stack (and, for CALLDATALOAD/RETURNDATALOAD-style opcodes,
// reads frame-supplied input data) and reports the halt reason, if any.
// Gas has already been charged by Frame.Dispatch before execute runs.
type executionFunc func(f *Frame) OperationResult

func popPush1(f *Frame, op func(x word256.Word256) word256.Word256) OperationResult {
	if f.Stack.Len() < 1 {
		return halted(HaltStackUnderflow)
	}
	x, _ := f.Stack.Pop()
	if err := f.Stack.Push(op(x)); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

func popPush2(f *Frame, op func(x, y word256.Word256) word256.Word256) OperationResult {
	if f.Stack.Len() < 2 {
		return halted(HaltStackUnderflow)
	}
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Pop()
	if err := f.Stack.Push(op(x, y)); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

func popPush3(f *Frame, op func(x, y, z word256.Word256) word256.Word256) OperationResult {
	if f.Stack.Len() < 3 {
		return halted(HaltStackUnderflow)
	}
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Pop()
	z, _ := f.Stack.Pop()
	if err := f.Stack.Push(op(x, y, z)); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

func haltForStackErr(err error) OperationResult {
	switch err {
	case ErrStackOverflow:
		return halted(HaltStackOverflow)
	case ErrStackUnderflow:
		return halted(HaltStackUnderflow)
	default:
		return halted(HaltInvalidOperation)
	}
}

func boolWord(b bool) word256.Word256 {
	if b {
		return word256.ONE
	}
	return word256.ZERO
}

func opAdd(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Add(y) })
}

func opSub(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Sub(y) })
}

func opMul(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Mul(y) })
}

func opDiv(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Div(y) })
}

func opSdiv(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.SDiv(y) })
}

func opMod(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Mod(y) })
}

func opSmod(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.SMod(y) })
}

func opAddmod(f *Frame) OperationResult {
	return popPush3(f, func(x, y, m word256.Word256) word256.Word256 { return x.AddMod(y, m) })
}

func opMulmod(f *Frame) OperationResult {
	return popPush3(f, func(x, y, m word256.Word256) word256.Word256 { return x.MulMod(y, m) })
}

func opExp(f *Frame) OperationResult {
	base, _ := f.Stack.Pop()
	exponent, _ := f.Stack.Pop()

	dynamic := gasExp(exponent.ByteLength())
	if !f.chargeGas(dynamic) {
		return halted(HaltInsufficientGas)
	}

	if err := f.Stack.Push(base.Exp(exponent)); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

func opSignExtend(f *Frame) OperationResult {
	return popPush2(f, func(k, v word256.Word256) word256.Word256 { return v.SignExtend(k) })
}

func opLt(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 {
		return boolWord(x.CmpUnsigned(y) == word256.Less)
	})
}

func opGt(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 {
		return boolWord(x.CmpUnsigned(y) == word256.Greater)
	})
}

func opSlt(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 {
		return boolWord(x.CmpSigned(y) == word256.Less)
	})
}

func opSgt(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 {
		return boolWord(x.CmpSigned(y) == word256.Greater)
	})
}

func opEq(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 {
		return boolWord(x.Equal(y))
	})
}

func opIsZero(f *Frame) OperationResult {
	return popPush1(f, func(x word256.Word256) word256.Word256 {
		return boolWord(x.IsZero())
	})
}

func opAnd(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.And(y) })
}

func opOr(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Or(y) })
}

func opXor(f *Frame) OperationResult {
	return popPush2(f, func(x, y word256.Word256) word256.Word256 { return x.Xor(y) })
}

func opNot(f *Frame) OperationResult {
	return popPush1(f, func(x word256.Word256) word256.Word256 { return x.Not() })
}

// opByte implements BYTE: pop index, pop value; index >= 32 yields zero,
// otherwise the selected big-endian byte is placed in the low byte of the
// result.
func opByte(f *Frame) OperationResult {
	return popPush2(f, func(index, value word256.Word256) word256.Word256 {
		if !index.FitsU64() || index.ToU64() >= 32 {
			return word256.ZERO
		}
		b, _ := value.Get(int(index.ToU64()))
		return word256.FromByte(b)
	})
}

func opSHL(f *Frame) OperationResult {
	return popPush2(f, func(shift, value word256.Word256) word256.Word256 { return value.Shl(shift) })
}

func opSHR(f *Frame) OperationResult {
	return popPush2(f, func(shift, value word256.Word256) word256.Word256 { return value.Shr(shift) })
}

func opSAR(f *Frame) OperationResult {
	return popPush2(f, func(shift, value word256.Word256) word256.Word256 { return value.Sar(shift) })
}

// opCalldataLoad implements CALLDATALOAD: pop offset, push up to 32 bytes
// of call data starting there, zero-padded on the right.
func opCalldataLoad(f *Frame) OperationResult {
	offset, _ := f.Stack.Pop()
	w := readWordFromSlice(f.Input, offset)
	if err := f.Stack.Push(w); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

// opReturndataLoad implements RETURNDATALOAD. It is only valid when
// executing inside an EOF container (EOFVersion() != 0); legacy code
// halts with HaltInvalidOperation.
func opReturndataLoad(f *Frame) OperationResult {
	if f.Code == nil || f.Code.EOFVersion() == 0 {
		return halted(HaltInvalidOperation)
	}
	offset, _ := f.Stack.Pop()
	w := readWordFromSlice(f.ReturnData, offset)
	if err := f.Stack.Push(w); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

// opEOFCreate and opExtCall are stack-only stubs: the core does not
// implement contract creation or call dispatch, but both opcodes still
// have a well-defined stack arity (enforced by the jump table) and push
// one failure sentinel (zero) since no call can ever succeed here.
func opEOFCreate(f *Frame) OperationResult {
	if err := f.Stack.BulkPop(4); err != nil {
		return haltForStackErr(err)
	}
	if err := f.Stack.Push(word256.ZERO); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

func opExtCall(f *Frame) OperationResult {
	if err := f.Stack.BulkPop(4); err != nil {
		return haltForStackErr(err)
	}
	if err := f.Stack.Push(word256.ZERO); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

// opPop implements POP: discard the top stack element.
func opPop(f *Frame) OperationResult {
	if _, err := f.Stack.Pop(); err != nil {
		return haltForStackErr(err)
	}
	return ok(0)
}

// makeDup returns an executionFunc that duplicates the nth stack element.
func makeDup(n int) executionFunc {
	return func(f *Frame) OperationResult {
		if err := f.Stack.Dup(n); err != nil {
			return haltForStackErr(err)
		}
		return ok(0)
	}
}

// makeSwap returns an executionFunc that swaps the top with the nth
// element.
func makeSwap(n int) executionFunc {
	return func(f *Frame) OperationResult {
		if err := f.Stack.Swap(n); err != nil {
			return haltForStackErr(err)
		}
		return ok(0)
	}
}

// makePush returns an executionFunc that reads size bytes immediately
// following the opcode and pushes them as a Word256, zero-padded on the
// right if the code ends early. PUSH0 (size 0) always pushes ZERO.
func makePush(size int) executionFunc {
	return func(f *Frame) OperationResult {
		if size == 0 {
			if err := f.Stack.Push(word256.ZERO); err != nil {
				return haltForStackErr(err)
			}
			return ok(0)
		}
		var buf [32]byte
		for i := 0; i < size; i++ {
			if b, okRead := f.Code.ReadU8(f.PC + 1 + i); okRead {
				buf[32-size+i] = b
			}
		}
		w, _ := word256.FromBytes(buf[32-size:])
		if err := f.Stack.Push(w); err != nil {
			return haltForStackErr(err)
		}
		return ok(0)
	}
}
