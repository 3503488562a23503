// Package input implements a memory mapped last-key register.
//
// The device keeps the most recent key typed by the user, or produced by a
// connected gamepad, and stores it at Address after every executed
// instruction. Programs poll it with a plain LDA $ff. The value stays in
// place until a new key arrives; programs that want to see each key once
// write a zero to Address after reading it.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/px65/devices"
)

// Address is the memory location holding the last key.
const Address = 0x00ff

// Device defines the input device.
type Device struct {
	pad     gamepad
	pending byte // Key waiting to be stored in memory.
	dirty   bool // Is pending waiting to be stored?
	usePad  bool // Should Startup look for a gamepad?
}

var _ devices.Device = &Device{}
var _ devices.Ticker = &Device{}

// New creates a new device. If withGamepad is true, a connected
// gamepad is mapped onto keys as well.
func New(withGamepad bool) *Device {
	return &Device{usePad: withGamepad}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0003)
}

// Startup detects any connected gamepad.
func (d *Device) Startup() error {
	d.Clear()
	if d.usePad {
		d.pad.startup()
	}
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if d.usePad {
		d.pad.shutdown()
	}
	return nil
}

// Clear drops any key which has not yet been stored.
func (d *Device) Clear() {
	d.pending = 0
	d.dirty = false
}

// Press records a typed character. Only 7-bit ASCII is accepted;
// anything else is ignored. Returns true if the key was recorded.
func (d *Device) Press(ch rune) bool {
	if ch <= 0 || ch > 0x7f {
		return false
	}
	d.pending = byte(ch)
	d.dirty = true
	return true
}

// Update polls the gamepad and records a key for every button which
// was pressed since the last call.
func (d *Device) Update() {
	if !d.usePad {
		return
	}
	for _, key := range d.pad.update() {
		d.Press(rune(key))
	}
}

// Tick stores a newly recorded key in memory. Memory is left alone
// when nothing new arrived, so the program is free to clear it.
func (d *Device) Tick(mem devices.Memory) {
	if !d.dirty {
		return
	}
	mem.Write(Address, d.pending)
	d.dirty = false
}

// CharCallback is a glfw character callback which records typed keys.
func (d *Device) CharCallback(_ *glfw.Window, char rune) {
	d.Press(char)
}
