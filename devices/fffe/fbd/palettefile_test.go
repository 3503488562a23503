package fbd

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParsePalette(t *testing.T) {
	src := `; custom colors
	#102030, $ffffff
	0x0000ff   abcdef ; the rest stays
`
	p, err := ParsePalette(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	want := []color.RGBA{
		{0x10, 0x20, 0x30, 0xff},
		{0xff, 0xff, 0xff, 0xff},
		{0x00, 0x00, 0xff, 0xff},
		{0xab, 0xcd, 0xef, 0xff},
	}

	for i, c := range want {
		if p[i] != c {
			t.Fatalf("color %d: want %v; have %v", i, c, p[i])
		}
	}

	for i := len(want); i < PaletteSize; i++ {
		if p[i] != DefaultPalette[i] {
			t.Fatalf("color %d: want default %v; have %v", i, DefaultPalette[i], p[i])
		}
	}
}

func TestParsePaletteErrors(t *testing.T) {
	tests := []string{
		"12345",
		"#1234567",
		"gg0000",
		strings.Repeat("000000 ", PaletteSize+1),
	}

	for _, src := range tests {
		if _, err := ParsePalette(strings.NewReader(src)); err == nil {
			t.Fatalf("%q: expected an error", src)
		}
	}
}

func TestLoadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pal.txt")
	if err := os.WriteFile(path, []byte("ff0000\n00ff00\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPalette(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.Color(0) != (color.RGBA{0xff, 0, 0, 0xff}) || p.Color(17) != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Fatalf("unexpected colors: %v %v", p.Color(0), p.Color(1))
	}

	if _, err := LoadPalette(filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Fatalf("want not-exist error; have %v", err)
	}

	d := New()
	d.SetPalette(p)
	if d.Palette().Color(1) != p.Color(1) {
		t.Fatalf("SetPalette did not replace the palette")
	}
}
