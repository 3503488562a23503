package asm

import (
	"bufio"
	"io"
	"strings"

	"github.com/hexaflex/px65/arch"
)

// statement defines a single, non-empty source line.
type statement struct {
	label    string   // Optional label defined on this line.
	labelPos Position // Position of the label.
	op       string   // Instruction or directive name. Empty for label-only lines.
	opPos    Position // Position of the instruction or directive.
	operand  string   // Operand text with comments removed.
	argPos   Position // Position of the operand.

	mode arch.AddressMode // Address mode selected by the first pass.
}

// parse splits the source into statements.
func parse(r io.Reader, file string) ([]*statement, error) {
	var out []*statement

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		st, err := parseLine(scanner.Text(), Position{File: file, Line: line, Col: 1})
		if err != nil {
			return nil, err
		}
		if st != nil {
			out = append(out, st)
		}
	}

	return out, scanner.Err()
}

// parseLine parses a line of the form
//
//	[label:] [op [operand]] [; comment]
//
// Returns nil if the line is blank.
func parseLine(text string, pos Position) (*statement, error) {
	text = stripComment(text)

	col := skipSpace(text, 0)
	if col == len(text) {
		return nil, nil
	}

	var st statement

	start := col
	col = scanIdent(text, col)
	if col < len(text) && text[col] == ':' && col > start {
		st.label = text[start:col]
		st.labelPos = pos.at(start)

		col = skipSpace(text, col+1)
		if col == len(text) {
			return &st, nil
		}

		start = col
		col = scanIdent(text, col)
	}

	// "*=$8000" sets the assembly address.
	if col == start && strings.HasPrefix(text[start:], "*=") {
		st.op = "*="
		st.opPos = pos.at(start)
		col = skipSpace(text, start+2)
		st.operand = strings.TrimSpace(text[col:])
		st.argPos = pos.at(col)
		return &st, nil
	}

	if col == start {
		return nil, newError(pos.at(start), "unexpected %q", text[start:start+1])
	}

	st.op = text[start:col]
	st.opPos = pos.at(start)

	if col < len(text) && !isSpace(text[col]) {
		return nil, newError(pos.at(col), "unexpected %q after %q", text[col:col+1], st.op)
	}

	col = skipSpace(text, col)
	st.operand = strings.TrimSpace(text[col:])
	st.argPos = pos.at(col)
	return &st, nil
}

// stripComment removes a trailing comment. Semicolons inside quoted
// strings or character literals do not start a comment.
func stripComment(text string) string {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return text[:i]
		}
	}
	return text
}

func skipSpace(text string, col int) int {
	for col < len(text) && isSpace(text[col]) {
		col++
	}
	return col
}

// scanIdent returns the end of the identifier starting at col.
func scanIdent(text string, col int) int {
	start := col
	for col < len(text) && isIdent(text[col], col > start) {
		col++
	}
	return col
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// isIdent returns true if c can appear in an identifier. Digits are
// not allowed in the first position.
func isIdent(c byte, inner bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '.':
		return true
	case c >= '0' && c <= '9':
		return inner
	}
	return false
}
