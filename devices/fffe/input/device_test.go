package input

import (
	"io"
	"testing"

	"github.com/hexaflex/px65/devices/fffe/cpu"
)

func TestPressAndTick(t *testing.T) {
	bus := cpu.NewBus()
	d := New(false)
	d.Startup()

	d.Tick(bus)
	if v := bus.Read(Address); v != 0 {
		t.Fatalf("want 0 before any key; have %02x", v)
	}

	if !d.Press('w') {
		t.Fatalf("key was rejected")
	}

	d.Tick(bus)
	if v := bus.Read(Address); v != 'w' {
		t.Fatalf("want %02x; have %02x", 'w', v)
	}

	// A program clearing the register must not see the key again.
	bus.Write(Address, 0)
	d.Tick(bus)
	if v := bus.Read(Address); v != 0 {
		t.Fatalf("key was stored twice: %02x", v)
	}
}

func TestPressRejectsNonASCII(t *testing.T) {
	d := New(false)
	for _, ch := range []rune{0, -1, 0x80, 'é', '世'} {
		if d.Press(ch) {
			t.Fatalf("key %q was accepted", ch)
		}
	}
}

func TestClear(t *testing.T) {
	bus := cpu.NewBus()
	d := New(false)
	d.Press('x')
	d.Clear()
	d.Tick(bus)

	if v := bus.Read(Address); v != 0 {
		t.Fatalf("cleared key was stored: %02x", v)
	}
}

func TestProgramPollsKey(t *testing.T) {
	// loop: lda $ff
	//       beq loop
	//       sta $0200
	//       brk
	program := []byte{0xa5, 0xff, 0xf0, 0xfc, 0x8d, 0x00, 0x02, 0x00}

	d := New(false)
	c := cpu.New(nil)
	c.Connect(d)

	if err := c.Startup(); err != nil {
		t.Fatal(err)
	}
	defer c.Shutdown()

	if err := c.LoadProgram(program); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}

	if c.PC() != cpu.Origin && c.PC() != cpu.Origin+2 {
		t.Fatalf("program left the polling loop: pc=%04x", c.PC())
	}

	d.Press(5)

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		err = c.Step()
	}

	if err != io.EOF {
		t.Fatalf("want io.EOF; have %v", err)
	}

	if v := c.Framebuffer().At(0); v != 5 {
		t.Fatalf("want pixel 5; have %d", v)
	}
}
