package ar

import (
	"bytes"
	"reflect"
	"testing"
)

func TestAR(t *testing.T) {
	ar := New()
	ar.Origin = 0x8000
	ar.Debug.Files = append(ar.Debug.Files,
		"path/to/file1.asm",
		"path/to/file2.asm")
	ar.Debug.Symbols = append(ar.Debug.Symbols,
		DebugData{0x8000, 1, 20, 30, Breakpoint},
		DebugData{0x8002, 0, 70, 80, 0})
	ar.Instructions = append(ar.Instructions,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	var buf bytes.Buffer
	if err := ar.Save(&buf); err != nil {
		t.Fatal(err)
	}

	br := New()
	if err := br.Load(&buf); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ar, br) {
		t.Fatalf("archive mismatch:\nhave: %v\nwant: %v", br, ar)
	}
}

func TestInvalidArchive(t *testing.T) {
	if err := New().Load(bytes.NewBufferString("not an archive")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestTruncatedArchive(t *testing.T) {
	ar := New()
	ar.Instructions = make([]byte, 100)

	var buf bytes.Buffer
	if err := ar.Save(&buf); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if err := New().Load(bytes.NewReader(data[:len(data)/2])); err == nil {
		t.Fatalf("expected an error for truncated data")
	}
}

func TestDebugFind(t *testing.T) {
	var d Debug
	d.Files = []string{"a.asm"}
	d.Symbols = []DebugData{{Address: 0x8000, Line: 3}, {Address: 0x8002, File: 5, Line: 4}}

	if dd := d.Find(0x8002); dd == nil || dd.Line != 4 {
		t.Fatalf("Find returned %v", dd)
	}

	if d.Find(0x8001) != nil {
		t.Fatalf("Find matched a missing address")
	}

	if d.File(&d.Symbols[0]) != "a.asm" || d.File(&d.Symbols[1]) != "?" {
		t.Fatalf("unexpected file names")
	}
}
