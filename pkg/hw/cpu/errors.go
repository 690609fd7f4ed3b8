package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyProgram    = errors.New("empty program")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrMissingOperand  = errors.New("missing operand")
	ErrBadArity        = errors.New("not enough operands")
	ErrUnknownRegister = errors.New("unknown register")
	ErrBadImmediate    = errors.New("invalid immediate")
	ErrJumpOutOfBounds = errors.New("jump target out of bounds")
)

type Error error

func MakeError(err Error, message string, args ...interface{}) Error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

// ProgramError decorates any execution error with the index of the failing
// instruction and its source text. It unwraps to the underlying sentinel so
// callers can still dispatch with errors.Is.
type ProgramError struct {
	Line        int
	Instruction string
	Err         error
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("error at line %v (%v): %v", e.Line, e.Instruction, e.Err)
}

func (e *ProgramError) Unwrap() error {
	return e.Err
}

func MakeProgramError(line int, instruction string, err error) error {
	return &ProgramError{
		Line:        line,
		Instruction: instruction,
		Err:         err,
	}
}
