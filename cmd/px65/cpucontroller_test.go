package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/devices/fffe/fbd"
)

// drawLoop plots pixels forever, one per loop iteration.
//
//	      LDX #0
//	loop: TXA
//	      STA $0200,X
//	      INX
//	      JMP loop
var drawLoop = []byte{
	0xa2, 0x00,
	0x8a,
	0x9d, 0x00, 0x02,
	0xe8,
	0x4c, 0x02, 0x80,
}

func TestRunFrameStopsAtFrameReady(t *testing.T) {
	c := NewCPUController(nil)
	if err := c.Load(drawLoop); err != nil {
		t.Fatal(err)
	}

	c.Start()
	if err := c.RunFrame(1000); err != nil {
		t.Fatal(err)
	}

	// LDX, TXA, STA: the store raises frame-ready.
	if have := c.Registers().PC; have != 0x8006 {
		t.Fatalf("want PC 8006; have %04x", have)
	}

	// Acknowledge the frame and run the next one.
	c.ClearFrameReady()
	if err := c.RunFrame(1000); err != nil {
		t.Fatal(err)
	}

	if have := c.Framebuffer().At(1); have != 1 {
		t.Fatalf("pixel 1: want 01; have %02x", have)
	}
}

func TestRunFrameBudget(t *testing.T) {
	//   loop: JMP loop
	c := NewCPUController(nil)
	c.Load([]byte{0x4c, 0x00, 0x80})
	c.Start()

	if err := c.RunFrame(50); err != nil {
		t.Fatal(err)
	}

	if !c.Running() {
		t.Fatalf("cpu stopped after spending the step budget")
	}
}

func TestRunFrameHalt(t *testing.T) {
	c := NewCPUController(nil)
	c.Load([]byte{0xa9, 0x01, 0x00})
	c.Start()

	if err := c.RunFrame(100); err != nil {
		t.Fatal(err)
	}

	if c.Running() {
		t.Fatalf("cpu still running after BRK")
	}

	if have := c.Registers().A; have != 1 {
		t.Fatalf("A: want 01; have %02x", have)
	}
}

func TestRunFrameFault(t *testing.T) {
	c := NewCPUController(nil)
	c.Load([]byte{0x02})
	c.Start()

	if err := c.RunFrame(100); err == nil {
		t.Fatalf("expected a decode error")
	}

	if c.Running() {
		t.Fatalf("cpu still running after a fault")
	}
}

func TestFaultedCPUStaysPaused(t *testing.T) {
	c := NewCPUController(nil)
	c.Load([]byte{0x02})
	c.Start()
	c.RunFrame(100)

	c.Start()
	if c.Running() {
		t.Fatalf("faulted cpu was restarted")
	}

	c.ToggleRun()
	if c.Running() {
		t.Fatalf("faulted cpu was restarted by ToggleRun")
	}

	c.Reset()
	c.Start()
	if !c.Running() {
		t.Fatalf("cpu did not start after reset")
	}
}

func TestRunFramePaused(t *testing.T) {
	c := NewCPUController(nil)
	c.Load(drawLoop)

	if err := c.RunFrame(100); err != nil {
		t.Fatal(err)
	}

	if have := c.Registers().PC; have != cpu.Origin {
		t.Fatalf("paused cpu executed code: PC=%04x", have)
	}
}

func TestScreenshot(t *testing.T) {
	c := NewCPUController(nil)
	c.Load(drawLoop)
	c.Start()
	for i := 0; i < 4; i++ {
		c.ClearFrameReady()
		c.RunFrame(100)
	}

	p := fbd.DefaultPalette
	var buf bytes.Buffer
	if err := writeScreenshot(&buf, p.Image(c.Framebuffer()), 3); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 96 {
		t.Fatalf("unexpected screenshot size: %v", img.Bounds())
	}

	// Pixel 1 is white, scaled to a 3x3 block.
	r, g, b, _ := img.At(5, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("scaled pixel has the wrong color: %x %x %x", r, g, b)
	}
}

func TestSaveScreenshot(t *testing.T) {
	c := NewCPUController(nil)
	p := fbd.DefaultPalette

	name, err := saveScreenshot(t.TempDir(), p.Image(c.Framebuffer()), 2)
	if err != nil {
		t.Fatal(err)
	}

	fd, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()

	img, err := png.Decode(fd)
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected screenshot size: %v", img.Bounds())
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	want := errors.New("write failed")

	err := writeFile(filepath.Join(dir, "a"), func(io.Writer) error { return want })
	if err != want {
		t.Fatalf("want %v; have %v", want, err)
	}

	// Closing the file early makes the final close fail.
	err = writeFile(filepath.Join(dir, "b"), func(w io.Writer) error {
		return w.(*os.File).Close()
	})
	if err == nil {
		t.Fatalf("close error was dropped")
	}

	if err := writeFile(filepath.Join(dir, "missing", "c"), func(io.Writer) error { return nil }); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestPrettyFrequency(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{12, "12.00 Hz"},
		{1500, "1.50 KHz"},
		{1.79e6, "1.79 MHz"},
		{2e9, "2.00 GHz"},
	}

	for _, tt := range tests {
		if have := prettyFrequency(tt.v); have != tt.want {
			t.Fatalf("want %q; have %q", tt.want, have)
		}
	}
}
