package interpreter

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/translate"
)

var f = translate.From

var (
	// ErrOutOfRange matches every RangeError.
	ErrOutOfRange = errors.New(f("out of range"))

	ErrStackOverflow  = errors.New(f("call stack overflow"))
	ErrStackUnderflow = errors.New(f("return with empty call stack"))
	ErrKeyIndex       = errors.New(f("key index out of range"))
)

// RangeError reports an instruction that would have accessed state
// outside of its fixed size storage. The instruction has not modified
// any state when this error is returned.
type RangeError struct {
	PC          uint16
	Instruction opcode.Instruction
	Err         error
}

func (e *RangeError) Error() string {
	if e.Instruction.Kind == opcode.Unknown {
		return f("$%04X: %v", e.PC, e.Err)
	}
	return f("$%04X %v: %v", e.PC, e.Instruction, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrOutOfRange) true for any RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
