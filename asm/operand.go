package asm

import "strings"

// Operand syntaxes.
const (
	operandNone        = iota // CLC
	operandAccumulator        // ASL A
	operandImmediate          // LDA #expr
	operandDirect             // LDA expr
	operandIndexX             // LDA expr,X
	operandIndexY             // LDA expr,Y
	operandIndirect           // JMP (expr)
	operandIndirectX          // LDA (expr,X)
	operandIndirectY          // LDA (expr),Y
)

// splitOperand determines the operand syntax and returns it along
// with the embedded expression.
func splitOperand(operand string) (int, string) {
	s := stripSpace(operand)
	upper := strings.ToUpper(s)

	switch {
	case len(s) == 0:
		return operandNone, ""
	case upper == "A":
		return operandAccumulator, ""
	case s[0] == '#':
		return operandImmediate, s[1:]
	case s[0] == '(' && strings.HasSuffix(upper, ",X)"):
		return operandIndirectX, s[1 : len(s)-3]
	case s[0] == '(' && strings.HasSuffix(upper, "),Y"):
		return operandIndirectY, s[1 : len(s)-3]
	case s[0] == '(' && strings.HasSuffix(s, ")"):
		return operandIndirect, s[1 : len(s)-1]
	case strings.HasSuffix(upper, ",X"):
		return operandIndexX, s[:len(s)-2]
	case strings.HasSuffix(upper, ",Y"):
		return operandIndexY, s[:len(s)-2]
	}

	return operandDirect, s
}

// splitArgs splits a comma separated argument list. Commas inside
// quoted strings do not separate arguments.
func splitArgs(operand string, pos Position) ([]string, error) {
	var out []string
	var quote byte
	start := 0

	for i := 0; i < len(operand); i++ {
		c := operand[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			out = append(out, strings.TrimSpace(operand[start:i]))
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, newError(pos, "unterminated quote in %q", operand)
	}

	if last := strings.TrimSpace(operand[start:]); len(last) > 0 || len(out) > 0 {
		out = append(out, last)
	}

	for _, arg := range out {
		if len(arg) == 0 {
			return nil, newError(pos, "empty value in %q", operand)
		}
	}

	return out, nil
}

// stripSpace removes all whitespace outside of quoted strings and
// character literals.
func stripSpace(s string) string {
	var sb strings.Builder
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case isSpace(c):
			continue
		}
		sb.WriteByte(c)
	}

	return sb.String()
}
