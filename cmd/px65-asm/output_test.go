package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexaflex/px65/asm"
	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/program"
)

const testSource = `
	lda #$02   ; white
	sta $0200
.break
	sta $05ff
	brk
`

func TestWriteHex(t *testing.T) {
	p := make([]byte, 20)
	for i := range p {
		p[i] = byte(i * 3)
	}

	var buf bytes.Buffer
	if err := writeHex(&buf, p); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, have %d: %q", len(lines), buf.String())
	}

	have, err := program.ParseHex(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(have, p) {
		t.Fatalf("round trip mismatch:\nwant %x\nhave %x", p, have)
	}
}

func TestWriteListing(t *testing.T) {
	archive, err := asm.Assemble(strings.NewReader(testSource), "test.asm", cpu.Origin)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeListing(&buf, archive); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []struct {
		prefix string
		text   string
		source string
	}{
		{"8000", "LDA #$02", "test.asm:2"},
		{"8002", "STA $0200", "test.asm:3"},
		{"8005", "STA $05ff", "test.asm:5"},
		{"8008", "BRK", "test.asm:6"},
	}

	if len(lines) != len(want) {
		t.Fatalf("want %d lines, have %d:\n%s", len(want), len(lines), buf.String())
	}

	for i, w := range want {
		line := lines[i]
		if !strings.HasPrefix(line, w.prefix) || !strings.Contains(line, w.text) || !strings.Contains(line, w.source) {
			t.Fatalf("line %d: want %s %s %s; have %q", i, w.prefix, w.text, w.source, line)
		}
	}

	if !strings.Contains(lines[2], "(break)") {
		t.Fatalf("expected breakpoint marker in %q", lines[2])
	}
}

func TestRunAndPrint(t *testing.T) {
	archive, err := asm.Assemble(strings.NewReader(testSource), "test.asm", cpu.Origin)
	if err != nil {
		t.Fatal(err)
	}

	state, err := run(archive.Instructions, 100, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !state.Halted || state.Steps != 3 {
		t.Fatalf("want halt after 3 steps; have halted=%v steps=%d", state.Halted, state.Steps)
	}

	if state.Framebuffer[0] != 2 || state.Framebuffer[cpu.FramebufferSize-1] != 2 {
		t.Fatalf("unexpected framebuffer corners: %d %d", state.Framebuffer[0], state.Framebuffer[cpu.FramebufferSize-1])
	}

	var buf bytes.Buffer
	printFramebuffer(&buf, state.Framebuffer, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != cpu.FramebufferHeight {
		t.Fatalf("want %d rows, have %d", cpu.FramebufferHeight, len(lines))
	}

	if lines[0] != "2"+strings.Repeat("0", 31) {
		t.Fatalf("unexpected first row %q", lines[0])
	}

	if lines[31] != strings.Repeat("0", 31)+"2" {
		t.Fatalf("unexpected last row %q", lines[31])
	}

	buf.Reset()
	printFramebuffer(&buf, state.Framebuffer, true)
	if n := strings.Count(buf.String(), "\n"); n != cpu.FramebufferHeight/2 {
		t.Fatalf("want %d color rows, have %d", cpu.FramebufferHeight/2, n)
	}
}

func TestRunStepLimit(t *testing.T) {
	// Endless loop: jmp $8000
	state, err := run([]byte{0x4c, 0x00, 0x80}, 10, 1)
	if err != nil {
		t.Fatal(err)
	}

	if state.Halted || state.Steps != 10 || state.Cycles != 30 {
		t.Fatalf("unexpected state: %+v", state.Registers)
	}
}
