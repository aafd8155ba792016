package vm

import (
	"github.com/eth2030/word256vm/pkg/log"
	"github.com/eth2030/word256vm/pkg/word256"
)

// HaltReason tags why an execution frame stopped short of normal
// completion. The arithmetic core only ever produces these five; it never
// signals success or revert (that belongs to the caller's frame state
// machine).
type HaltReason int

const (
	// HaltNone means the opcode completed without halting the frame.
	HaltNone HaltReason = iota
	// HaltInsufficientGas is raised when a gas hook detects that the
	// frame's remaining gas would go negative.
	HaltInsufficientGas
	// HaltInvalidOperation is raised when an opcode is structurally
	// invalid in the current code version (e.g. RETURNDATALOAD outside
	// an EOF container).
	HaltInvalidOperation
	// HaltStackOverflow mirrors ErrStackOverflow as a frame-level halt.
	HaltStackOverflow
	// HaltStackUnderflow mirrors ErrStackUnderflow as a frame-level halt.
	HaltStackUnderflow
	// HaltUnsupportedOpcode is raised for opcodes that are recognized but
	// outside this core's implemented subset (state, memory beyond the
	// stack-arity stubs, control flow, logging, and the call family).
	HaltUnsupportedOpcode
)

func (h HaltReason) String() string {
	switch h {
	case HaltNone:
		return "none"
	case HaltInsufficientGas:
		return "insufficient gas"
	case HaltInvalidOperation:
		return "invalid operation"
	case HaltStackOverflow:
		return "stack overflow"
	case HaltStackUnderflow:
		return "stack underflow"
	case HaltUnsupportedOpcode:
		return "unsupported opcode"
	default:
		return "unknown halt reason"
	}
}

// OperationResult is what every opcode transformer returns: the gas cost
// charged and a halt reason (HaltNone when the frame may continue).
// Frame.Dispatch deducts gas from Frame.Gas itself and sets GasCost to the
// total it deducted for the opcode (constant tier plus any dynamic part),
// also when the opcode halts after gas was charged. A transformer called
// directly, outside Dispatch, reports 0.
type OperationResult struct {
	GasCost uint64
	Halt    HaltReason
}

// ok is a convenience constructor for the (by far) common case: charge
// gasCost, don't halt.
func ok(gasCost uint64) OperationResult {
	return OperationResult{GasCost: gasCost, Halt: HaltNone}
}

// halted is a convenience constructor for a frame-terminating result. It
// reports zero gas; Frame.Dispatch replaces GasCost with what it actually
// deducted, which is zero for halts detected before any gas was charged
// (unsupported opcode, stack bounds, insufficient gas for the charge).
func halted(reason HaltReason) OperationResult {
	return OperationResult{GasCost: 0, Halt: reason}
}

// CodeSource is the read-only view of the executing code object that
// opcode transformers need: its EOF version (0 for legacy code) and
// byte/sub-container access. The frame never mutates it.
type CodeSource interface {
	// EOFVersion returns 0 for legacy (non-EOF) code, or the container's
	// version otherwise.
	EOFVersion() int
	// ReadU8 returns the byte at pc and true, or (0, false) if pc is out
	// of range.
	ReadU8(pc int) (byte, bool)
	// SubContainer returns the i'th EOF sub-container, or (nil, false) if
	// there is no such container (including in non-EOF code).
	SubContainer(i int) ([]byte, bool)
}

// Frame is the per-call execution context the opcode transformers operate
// against: a bounded operand stack, the remaining gas counter, the
// executing code, and the call's input/return data. A Frame is
// single-owner and not safe for concurrent use.
type Frame struct {
	Stack      *Stack
	Gas        uint64
	Code       CodeSource
	Input      []byte
	ReturnData []byte
	// PC is the index of the opcode byte about to execute. PUSH
	// transformers read their immediate data relative to it; Step
	// advances it past the opcode and any immediate bytes it consumed.
	PC int
	// Logger, when non-nil, receives a debug-level trace of every
	// dispatched traceable opcode (see SetTracingEnabled and
	// operation.traceable) and the reason for any halt. Nil is valid and
	// silent — most tests and library callers never set it.
	Logger *log.Logger
}

// NewFrame constructs a Frame with a fresh empty stack positioned at the
// start of code.
func NewFrame(gas uint64, code CodeSource, input []byte) *Frame {
	return &Frame{
		Stack: NewStack(),
		Gas:   gas,
		Code:  code,
		Input: input,
	}
}

// Step fetches the opcode at the current PC, dispatches it, and advances
// PC by one plus the opcode's immediate operand length (non-zero only for
// PUSH1..PUSH32). It returns HaltInvalidOperation if PC runs past the end
// of the code.
func (f *Frame) Step() (OpCode, OperationResult) {
	b, okRead := f.Code.ReadU8(f.PC)
	if !okRead {
		return 0, halted(HaltInvalidOperation)
	}
	op := OpCode(b)
	result := f.Dispatch(op)
	if result.Halt == HaltNone {
		f.PC += 1 + pushImmediateLen(op)
	}
	return op, result
}

// pushImmediateLen returns the number of immediate code bytes PUSH1..
// PUSH32 consume after the opcode byte itself (0 for every other opcode,
// including PUSH0).
func pushImmediateLen(op OpCode) int {
	if op >= PUSH1 && op <= PUSH32 {
		return int(op-PUSH1) + 1
	}
	return 0
}

// tracingEnabled is the process-wide switch for routine opcode tracing. It
// defaults to on, matching every descriptor's default traceable=true,
// and is the single knob to silence dispatch tracing across every Frame
// without touching the jump table. Halts are always logged when Logger is
// set, regardless of this switch: they are rare and worth the cost.
var tracingEnabled = true

// SetTracingEnabled turns routine per-opcode DEBUG tracing on or off for
// every Frame in the process. Per-opcode overrides (operation.traceable)
// still apply on top of this: an opcode marked non-traceable stays silent
// even when tracingEnabled is true.
func SetTracingEnabled(enabled bool) {
	tracingEnabled = enabled
}

// chargeGas subtracts cost from the frame's remaining gas. It returns
// false (and leaves Gas unchanged) if cost exceeds the remaining balance,
// signaling the caller to halt with HaltInsufficientGas.
func (f *Frame) chargeGas(cost uint64) bool {
	if cost > f.Gas {
		return false
	}
	f.Gas -= cost
	return true
}

// Dispatch executes a single opcode against the frame: it looks up the
// opcode's descriptor, ensures enough stack depth, computes gas (charging
// the constant tier and any dynamic component), and invokes the
// transformer. Unrecognized or unimplemented opcodes halt with
// HaltUnsupportedOpcode.
func (f *Frame) Dispatch(op OpCode) OperationResult {
	gasBefore := f.Gas
	desc := jumpTable[op]
	if desc == nil {
		f.logHalt(op, HaltUnsupportedOpcode)
		return halted(HaltUnsupportedOpcode)
	}
	if f.Stack.Len() < desc.minStack {
		f.logHalt(op, HaltStackUnderflow)
		return halted(HaltStackUnderflow)
	}
	if f.Stack.Len() > desc.maxStack {
		f.logHalt(op, HaltStackOverflow)
		return halted(HaltStackOverflow)
	}

	gasCost := desc.constantGas
	if desc.dynamicGas != nil {
		extra, err := desc.dynamicGas(f)
		if err != nil {
			f.logHalt(op, HaltInsufficientGas)
			return halted(HaltInsufficientGas)
		}
		gasCost += extra
	}
	if !f.chargeGas(gasCost) {
		f.logHalt(op, HaltInsufficientGas)
		return halted(HaltInsufficientGas)
	}

	result := desc.execute(f)
	result.GasCost = gasBefore - f.Gas
	if f.Logger != nil {
		if result.Halt != HaltNone {
			f.logHalt(op, result.Halt)
		} else if tracingEnabled && desc.traceable {
			f.Logger.Debug("dispatch", "op", desc.mnemonic, "pc", f.PC, "gasCost", result.GasCost)
		}
	}
	return result
}

// logHalt writes a debug-level trace line for a halted dispatch. A no-op
// when Logger is nil.
func (f *Frame) logHalt(op OpCode, reason HaltReason) {
	if f.Logger == nil {
		return
	}
	f.Logger.Debug("halt", "op", op.String(), "pc", f.PC, "reason", reason.String())
}

// readWordFromSlice reads up to 32 bytes from data starting at offset,
// zero-padding on the right when data is shorter than offset+32 (or
// offset itself is past the end). This is the shared behavior of
// CALLDATALOAD and RETURNDATALOAD.
func readWordFromSlice(data []byte, offset word256.Word256) word256.Word256 {
	if offset.BitLength() > 31 {
		return word256.ZERO
	}
	off := offset.ClampedToU64()
	var buf [32]byte
	if off < uint64(len(data)) {
		copy(buf[:], data[off:])
	}
	w, _ := word256.FromBytes(buf[:])
	return w
}
