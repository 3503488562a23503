package program

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	src := `
; clear the screen
a9 02, 0x8d $00 0X02  ; STA $0200
	00
`
	have, err := ParseHex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseHex failure: %v", err)
	}

	want := []byte{0xa9, 0x02, 0x8d, 0x00, 0x02, 0x00}
	if !bytes.Equal(have, want) {
		t.Fatalf("want % x; have % x", want, have)
	}
}

func TestParseHexErrors(t *testing.T) {
	tests := []string{
		"a9 100",
		"zz",
		"0x",
		"$",
		"a9\n02 $1g",
	}

	for _, src := range tests {
		if _, err := ParseHex(strings.NewReader(src)); err == nil {
			t.Fatalf("%q: expected an error", src)
		}
	}

	_, err := ParseHex(strings.NewReader("a9\n02 $1g"))
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error lacks line number: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	want := []byte{0xa9, 0x01, 0x8d, 0x00, 0x02, 0x00}

	bin := filepath.Join(dir, "prog.bin")
	if err := os.WriteFile(bin, want, 0644); err != nil {
		t.Fatal(err)
	}

	hex := filepath.Join(dir, "prog.hex")
	if err := os.WriteFile(hex, []byte("a9 01 8d 00 02 00\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bin, hex} {
		have, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}

		if !bytes.Equal(have, want) {
			t.Fatalf("%s: want % x; have % x", path, want, have)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil || len(p) != 0 {
		t.Fatalf("want empty program; have % x, %v", p, err)
	}
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.bin")
	if err := os.WriteFile(path, make([]byte, MaxSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an oversized program")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.bin")); !os.IsNotExist(err) {
		t.Fatalf("want not-exist error; have %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	want := []byte{0xa9, 0x01, 0x8d, 0x00, 0x02, 0x00}

	src := filepath.Join(dir, "prog.asm")
	if err := os.WriteFile(src, []byte("LDA #1\nSTA $0200\nBRK\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := Open(src)
	if err != nil {
		t.Fatalf("Open source: %v", err)
	}

	if !bytes.Equal(a.Instructions, want) || len(a.Debug.Symbols) != 3 {
		t.Fatalf("unexpected archive: %v", a)
	}

	arc := filepath.Join(dir, "prog"+ArchiveExt)
	fd, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Save(fd); err != nil {
		t.Fatal(err)
	}
	fd.Close()

	b, err := Open(arc)
	if err != nil {
		t.Fatalf("Open archive: %v", err)
	}

	if !bytes.Equal(b.Instructions, want) || len(b.Debug.Symbols) != 3 {
		t.Fatalf("archive lost data: %v", b)
	}

	bin := filepath.Join(dir, "prog.bin")
	if err := os.WriteFile(bin, want, 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Open(bin)
	if err != nil {
		t.Fatalf("Open binary: %v", err)
	}

	if !bytes.Equal(c.Instructions, want) || len(c.Debug.Symbols) != 0 {
		t.Fatalf("unexpected archive: %v", c)
	}
}
