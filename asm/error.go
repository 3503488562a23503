package asm

import "fmt"

// Position defines the source position of a token.
type Position struct {
	File string // File in which the token was defined.
	Line int    // Line number at which the token was defined.
	Col  int    // Column number at which the token was defined.
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// at returns the position of the given zero based column on the same line.
func (p Position) at(col int) Position {
	p.Col = col + 1
	return p
}

// Error defines a build error with source context.
type Error struct {
	Pos Position
	Msg string
}

// newError creates a new, formatted error message with the given source context.
func newError(pos Position, f string, argv ...interface{}) *Error {
	return &Error{
		Pos: pos,
		Msg: fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + " " + e.Msg
}
