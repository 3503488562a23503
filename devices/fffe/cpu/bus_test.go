package cpu

import (
	"testing"

	"github.com/pkg/errors"
)

func TestBusFrameWindow(t *testing.T) {
	tests := []struct {
		addr uint16
		want bool
	}{
		{0x0000, false},
		{0x01ff, false},
		{FramebufferStart, true},
		{0x0400, true},
		{FramebufferEnd, true},
		{0x0600, false},
		{0xffff, false},
	}

	for _, tt := range tests {
		b := NewBus()
		b.Write(tt.addr, 1)
		if b.FrameReady() != tt.want {
			t.Fatalf("write to %04x: want frame-ready %v; have %v", tt.addr, tt.want, b.FrameReady())
		}
	}
}

func TestBusFrameReadyIsLevelTriggered(t *testing.T) {
	b := NewBus()
	b.Write(0x0300, 1)
	b.Write(0x0000, 1)
	b.Read(0x0300)

	if !b.FrameReady() {
		t.Fatalf("frame-ready dropped without being cleared")
	}

	b.ClearFrameReady()
	if b.FrameReady() {
		t.Fatalf("frame-ready still set after clearing")
	}

	// Writing the same value again still counts.
	b.Write(0x0300, 1)
	if !b.FrameReady() {
		t.Fatalf("rewrite of unchanged pixel did not raise frame-ready")
	}
}

func TestBusWord(t *testing.T) {
	b := NewBus()
	b.Write16(0x1000, 0xbeef)

	if b.Read(0x1000) != 0xef || b.Read(0x1001) != 0xbe {
		t.Fatalf("Write16 is not little endian: %02x %02x", b.Read(0x1000), b.Read(0x1001))
	}

	if b.Read16(0x1000) != 0xbeef {
		t.Fatalf("Read16: want beef; have %04x", b.Read16(0x1000))
	}

	b.Write16(0xffff, 0x1234)
	if b.Read(0xffff) != 0x34 || b.Read(0x0000) != 0x12 {
		t.Fatalf("Write16 did not wrap at the top of memory")
	}

	if b.Read16(0xffff) != 0x1234 {
		t.Fatalf("Read16 did not wrap at the top of memory")
	}
}

func TestBusLoad(t *testing.T) {
	b := NewBus()

	if err := b.Load(0xffff, []byte{0x01}); err != nil {
		t.Fatalf("single byte at ffff rejected: %v", err)
	}

	if b.Read(0xffff) != 0x01 {
		t.Fatalf("Load did not write the program")
	}

	err := b.Load(0xffff, []byte{0x02, 0x03})
	if errors.Cause(err) != ErrBounds {
		t.Fatalf("want ErrBounds; have %v", err)
	}

	if b.Read(0xffff) != 0x01 || b.Read(0x0000) != 0x00 {
		t.Fatalf("rejected load modified memory")
	}

	if err := b.Load(FramebufferStart, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Load failure: %v", err)
	}

	if b.FrameReady() {
		t.Fatalf("Load raised the frame-ready signal")
	}
}

func TestBusClear(t *testing.T) {
	b := NewBus()
	b.Write(0x0200, 5)
	b.Write(0x9000, 5)
	b.Clear()

	if b.Read(0x0200) != 0 || b.Read(0x9000) != 0 || b.FrameReady() {
		t.Fatalf("Clear left state behind")
	}
}

func TestFramebufferView(t *testing.T) {
	b := NewBus()
	fb := b.Framebuffer()

	if fb.Len() != 1024 {
		t.Fatalf("Len: want 1024; have %d", fb.Len())
	}

	b.Write(FramebufferStart, 0x01)
	b.Write(FramebufferStart+FramebufferWidth+2, 0x0e)
	b.Write(FramebufferEnd, 0x0f)

	// The view aliases the bus, so writes after creation are visible.
	if fb.At(0) != 0x01 || fb.Pixel(2, 1) != 0x0e || fb.Pixel(31, 31) != 0x0f {
		t.Fatalf("framebuffer view does not reflect memory")
	}

	dst := make([]byte, 2048)
	if n := fb.CopyTo(dst); n != FramebufferSize {
		t.Fatalf("CopyTo: want %d bytes; have %d", FramebufferSize, n)
	}

	if dst[FramebufferSize-1] != 0x0f {
		t.Fatalf("CopyTo copied the wrong window")
	}
}

func TestMemoryView(t *testing.T) {
	b := NewBus()
	v := b.View()
	b.Write16(0xfffe, 0xabcd)

	if v.Read(0xfffe) != 0xcd || v.Read16(0xfffe) != 0xabcd {
		t.Fatalf("memory view does not reflect memory")
	}

	dst := make([]byte, 4)
	if n := v.CopyTo(0xfffe, dst); n != 2 {
		t.Fatalf("CopyTo: want 2 bytes at the top of memory; have %d", n)
	}
}
