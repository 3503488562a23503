package program

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseHex reads a hex text program image.
//
// Bytes are written as one or two hex digits, optionally prefixed with
// "0x" or "$", and separated by whitespace or commas. A semicolon starts
// a comment running to the end of the line.
//
//	; LDA #$02, BRK
//	a9 02
//	0x00
func ParseHex(r io.Reader) ([]byte, error) {
	var out []byte

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if i := strings.IndexByte(text, ';'); i > -1 {
			text = text[:i]
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})

		for _, field := range fields {
			v, err := parseByte(field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			out = append(out, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// parseByte parses a single hex byte token.
func parseByte(tok string) (byte, error) {
	digits := tok
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	case strings.HasPrefix(digits, "$"):
		digits = digits[1:]
	}

	if len(digits) == 0 || len(digits) > 2 {
		return 0, errors.Errorf("invalid byte %q", tok)
	}

	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, errors.Errorf("invalid byte %q", tok)
	}

	return byte(v), nil
}
