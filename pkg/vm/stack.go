package vm

import (
	"errors"

	"github.com/eth2030/word256vm/pkg/word256"
)

// Stack errors. The stack has exactly two error kinds, distinguishable by
// the caller.
var (
	ErrStackOverflow  = errors.New("vm: stack overflow (max 1024)")
	ErrStackUnderflow = errors.New("vm: stack underflow")
)

// stackLimit is the maximum depth of the EVM operand stack.
const stackLimit = 1024

// Stack is a bounded, single-owner operand stack of Word256 values. It is
// the only mutable data structure in the core: created at frame start,
// mutated only by Push/Pop/Set/BulkPop/Swap/Dup/Reset, and discarded with
// the frame.
type Stack struct {
	data [stackLimit]word256.Word256
	top  int
}

// NewStack returns a new empty Stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the current number of elements on the stack.
func (s *Stack) Len() int {
	return s.top
}

// Push pushes v onto the stack. Returns ErrStackOverflow if the stack
// already holds stackLimit elements.
func (s *Stack) Push(v word256.Word256) error {
	if s.top >= stackLimit {
		return ErrStackOverflow
	}
	s.data[s.top] = v
	s.top++
	return nil
}

// Pop removes and returns the top element. Returns ErrStackUnderflow if
// the stack is empty.
func (s *Stack) Pop() (word256.Word256, error) {
	if s.top == 0 {
		return word256.ZERO, ErrStackUnderflow
	}
	s.top--
	v := s.data[s.top]
	s.data[s.top] = word256.ZERO
	return v, nil
}

// Peek returns the top element without removing it, and whether the stack
// was non-empty. Peek never errors; an empty stack yields (ZERO, false).
func (s *Stack) Peek() (word256.Word256, bool) {
	if s.top == 0 {
		return word256.ZERO, false
	}
	return s.data[s.top-1], true
}

// Get returns the element at the given depth from the top (0 = top).
// Returns ErrStackUnderflow if offset >= the current size.
func (s *Stack) Get(offset int) (word256.Word256, error) {
	if offset < 0 || offset >= s.top {
		return word256.ZERO, ErrStackUnderflow
	}
	return s.data[s.top-1-offset], nil
}

// Set overwrites the element at the given depth from the top (0 = top).
// Returns ErrStackUnderflow if offset >= the current size.
func (s *Stack) Set(offset int, v word256.Word256) error {
	if offset < 0 || offset >= s.top {
		return ErrStackUnderflow
	}
	s.data[s.top-1-offset] = v
	return nil
}

// BulkPop removes n elements from the top. Returns ErrStackUnderflow if
// n > the current size; n == 0 is a no-op.
func (s *Stack) BulkPop(n int) error {
	if n < 0 || n > s.top {
		return ErrStackUnderflow
	}
	for i := 0; i < n; i++ {
		s.top--
		s.data[s.top] = word256.ZERO
	}
	return nil
}

// Swap exchanges the top element with the element n positions below it
// (n in [1, 16], corresponding to SWAP1..SWAP16).
func (s *Stack) Swap(n int) error {
	if s.top < n+1 {
		return ErrStackUnderflow
	}
	topIdx := s.top - 1
	nthIdx := s.top - 1 - n
	s.data[topIdx], s.data[nthIdx] = s.data[nthIdx], s.data[topIdx]
	return nil
}

// Dup duplicates the element n positions below the top and pushes the
// copy (n in [1, 16], corresponding to DUP1..DUP16).
func (s *Stack) Dup(n int) error {
	if s.top < n {
		return ErrStackUnderflow
	}
	if s.top >= stackLimit {
		return ErrStackOverflow
	}
	s.data[s.top] = s.data[s.top-n]
	s.top++
	return nil
}

// Reset clears all elements from the stack.
func (s *Stack) Reset() {
	for i := 0; i < s.top; i++ {
		s.data[i] = word256.ZERO
	}
	s.top = 0
}
