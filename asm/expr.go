package asm

import (
	"strconv"
	"strings"
)

// eval evaluates an operand expression:
//
//	expr    = [ "<" | ">" ] sum
//	sum     = term { ( "+" | "-" ) term }
//	term    = [ "-" ] primary
//	primary = "$" hex | "%" binary | decimal | "'" char "'" | symbol | "*"
//
// "<" and ">" select the low and high byte of the result, "*" is the
// address of the current statement. References to undefined symbols
// yield known=false during the first pass and an error afterwards.
func (a *assembler) eval(src string, pos Position) (value int, known bool, err error) {
	e := exprParser{
		a:     a,
		src:   stripSpace(src),
		pos:   pos,
		known: true,
	}

	if len(e.src) == 0 {
		return 0, false, newError(pos, "missing expression")
	}

	var sel byte
	if e.src[0] == '<' || e.src[0] == '>' {
		sel = e.src[0]
		e.off++
	}

	value, err = e.sum()
	if err != nil {
		return 0, false, err
	}

	if e.off < len(e.src) {
		return 0, false, newError(pos, "unexpected %q in expression %q", e.src[e.off:e.off+1], e.src)
	}

	switch sel {
	case '<':
		value &= 0xff
	case '>':
		value = (value >> 8) & 0xff
	}

	return value, e.known, nil
}

type exprParser struct {
	a     *assembler
	src   string
	off   int
	pos   Position
	known bool
}

func (e *exprParser) sum() (int, error) {
	v, err := e.term()
	if err != nil {
		return 0, err
	}

	for e.off < len(e.src) {
		op := e.src[e.off]
		if op != '+' && op != '-' {
			break
		}
		e.off++

		rhs, err := e.term()
		if err != nil {
			return 0, err
		}

		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}

	return v, nil
}

func (e *exprParser) term() (int, error) {
	if e.off < len(e.src) && e.src[e.off] == '-' {
		e.off++
		v, err := e.primary()
		return -v, err
	}
	return e.primary()
}

func (e *exprParser) primary() (int, error) {
	if e.off >= len(e.src) {
		return 0, newError(e.pos, "unexpected end of expression %q", e.src)
	}

	switch c := e.src[e.off]; {
	case c == '$':
		e.off++
		return e.number(16, isHexDigit)

	case c == '%':
		e.off++
		return e.number(2, func(c byte) bool { return c == '0' || c == '1' })

	case c >= '0' && c <= '9':
		return e.number(10, func(c byte) bool { return c >= '0' && c <= '9' })

	case c == '*':
		e.off++
		return e.a.pc, nil

	case c == '\'':
		if e.off+2 >= len(e.src) || e.src[e.off+2] != '\'' {
			return 0, newError(e.pos, "invalid character literal in %q", e.src)
		}
		v := int(e.src[e.off+1])
		e.off += 3
		return v, nil

	case isIdent(c, false):
		start := e.off
		e.off = scanIdent(e.src, e.off)
		return e.symbol(e.src[start:e.off])
	}

	return 0, newError(e.pos, "unexpected %q in expression %q", e.src[e.off:e.off+1], e.src)
}

func (e *exprParser) number(base int, digit func(byte) bool) (int, error) {
	start := e.off
	for e.off < len(e.src) && digit(e.src[e.off]) {
		e.off++
	}

	if start == e.off {
		return 0, newError(e.pos, "invalid number in expression %q", e.src)
	}

	v, err := strconv.ParseInt(e.src[start:e.off], base, 32)
	if err != nil {
		return 0, newError(e.pos, "invalid number %q", e.src[start:e.off])
	}

	return int(v), nil
}

func (e *exprParser) symbol(name string) (int, error) {
	if v, ok := e.a.symbols[strings.ToLower(name)]; ok {
		return v, nil
	}

	if e.a.final {
		return 0, newError(e.pos, "reference to undefined symbol %q", name)
	}

	e.known = false
	return 0, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
