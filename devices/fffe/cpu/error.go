package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error causes. Use errors.Cause or errors.Is to classify a returned error.
var (
	ErrDecode = errors.New("invalid opcode")
	ErrBounds = errors.New("address out of bounds")
)

// Error defines a fatal runtime error for the instruction at IP.
type Error struct {
	IP     uint16 // Address of the faulting instruction.
	Opcode byte   // Opcode of the faulting instruction.
	Msg    string
	cause  error
}

// newError creates a new, formatted error message for the given instruction.
func newError(cause error, instr *Instruction, f string, argv ...interface{}) *Error {
	return &Error{
		IP:     instr.IP,
		Opcode: instr.Opcode,
		Msg:    fmt.Sprintf(f, argv...),
		cause:  cause,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %s", e.IP, e.cause, e.Msg)
}

// Cause returns ErrDecode or ErrBounds.
func (e *Error) Cause() error { return e.cause }

// Unwrap returns ErrDecode or ErrBounds.
func (e *Error) Unwrap() error { return e.cause }
