package fbd

import (
	"bufio"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadPalette reads a palette file from disk. See ParsePalette.
func LoadPalette(path string) (Palette, error) {
	fd, err := os.Open(path)
	if err != nil {
		return DefaultPalette, err
	}

	defer fd.Close()

	p, err := ParsePalette(fd)
	if err != nil {
		return DefaultPalette, errors.Wrapf(err, "%s", path)
	}
	return p, nil
}

// ParsePalette reads up to PaletteSize colors, in palette order. Colors
// are written as six hex digits (rrggbb), optionally prefixed with "#",
// "$" or "0x", and separated by whitespace or commas. Everything after
// a ";" is a comment. Entries which are not listed keep their default.
func ParsePalette(r io.Reader) (Palette, error) {
	p := DefaultPalette
	n := 0

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
			if n == PaletteSize {
				return p, errors.Errorf("line %d: more than %d colors", line, PaletteSize)
			}

			c, err := parseColor(field)
			if err != nil {
				return p, errors.Wrapf(err, "line %d", line)
			}

			p[n] = c
			n++
		}
	}

	return p, scanner.Err()
}

func parseColor(s string) (color.RGBA, error) {
	v := s
	switch {
	case strings.HasPrefix(v, "#"), strings.HasPrefix(v, "$"):
		v = v[1:]
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		v = v[2:]
	}

	if len(v) != 6 {
		return color.RGBA{}, errors.Errorf("invalid color %q", s)
	}

	rgb, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Errorf("invalid color %q", s)
	}

	return color.RGBA{byte(rgb >> 16), byte(rgb >> 8), byte(rgb), 0xff}, nil
}
