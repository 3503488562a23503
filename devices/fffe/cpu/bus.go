package cpu

import "github.com/pkg/errors"

// Memory layout.
const (
	AddressSpace      = 0x10000 // Size of the addressable memory.
	ZeroPage          = 0x0000  // Start of page zero.
	StackPage         = 0x0100  // Start of the hardware stack page.
	FramebufferStart  = 0x0200  // First byte of the framebuffer window.
	FramebufferEnd    = 0x05ff  // Last byte of the framebuffer window.
	FramebufferWidth  = 32      // Framebuffer width in pixels.
	FramebufferHeight = 32      // Framebuffer height in pixels.
	FramebufferSize   = FramebufferWidth * FramebufferHeight
	Origin            = 0x8000 // Address at which programs are loaded and started.
	ResetVector       = 0xfffc // Address of the reset vector.
)

// Bus defines the system's memory bus: a flat 64 KiB byte array.
// Addresses are 16-bit values, so every access is in range by construction.
type Bus struct {
	mem        [AddressSpace]byte
	frameReady bool
}

// NewBus creates a new, zero-filled bus.
func NewBus() *Bus {
	return &Bus{}
}

// Read returns the byte at the given address.
func (b *Bus) Read(addr uint16) byte {
	return b.mem[addr]
}

// Write sets the byte at the given address. Writes into the
// framebuffer window raise the frame-ready signal.
func (b *Bus) Write(addr uint16, value byte) {
	b.mem[addr] = value
	if addr >= FramebufferStart && addr <= FramebufferEnd {
		b.frameReady = true
	}
}

// Read16 returns the little endian 16-bit value at the given address.
// The high byte is read from addr+1, wrapping at the top of memory.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.mem[addr+1])<<8 | uint16(b.mem[addr])
}

// Write16 sets the little endian 16-bit value at the given address.
func (b *Bus) Write16(addr, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

// Load copies p into memory, starting at the given origin.
//
// A program which does not fit between origin and the top of memory is
// rejected as a whole: nothing is written and the returned error has
// ErrBounds as its cause. Loading does not raise the frame-ready signal.
func (b *Bus) Load(origin uint16, p []byte) error {
	if int(origin)+len(p) > AddressSpace {
		return errors.Wrapf(ErrBounds, "program of %d bytes does not fit at %04x", len(p), origin)
	}
	copy(b.mem[origin:], p)
	return nil
}

// Clear zero-fills memory and drops the frame-ready signal.
func (b *Bus) Clear() {
	b.mem = [AddressSpace]byte{}
	b.frameReady = false
}

// FrameReady returns true if a byte was written into the framebuffer
// window since the last call to ClearFrameReady.
func (b *Bus) FrameReady() bool {
	return b.frameReady
}

// ClearFrameReady drops the frame-ready signal.
func (b *Bus) ClearFrameReady() {
	b.frameReady = false
}

// Framebuffer returns a read-only view over the framebuffer window.
func (b *Bus) Framebuffer() Framebuffer {
	return Framebuffer{p: (*[FramebufferSize]byte)(b.mem[FramebufferStart : FramebufferEnd+1])}
}

// View returns a read-only view over the whole address space.
func (b *Bus) View() View {
	return View{p: &b.mem}
}

// Framebuffer is a fixed-length, read-only view over the framebuffer
// window. It shares storage with the bus; no bytes are copied.
// Pixels are stored row-major, one palette index per byte.
type Framebuffer struct {
	p *[FramebufferSize]byte
}

// Len returns the number of pixels in the framebuffer.
func (f Framebuffer) Len() int {
	return FramebufferSize
}

// At returns the palette index of the i'th pixel.
func (f Framebuffer) At(i int) byte {
	return f.p[i]
}

// Pixel returns the palette index of the pixel at x, y.
func (f Framebuffer) Pixel(x, y int) byte {
	return f.p[y*FramebufferWidth+x]
}

// CopyTo copies the framebuffer contents into dst and returns
// the number of bytes copied.
func (f Framebuffer) CopyTo(dst []byte) int {
	return copy(dst, f.p[:])
}

// View is a read-only view over the full address space.
type View struct {
	p *[AddressSpace]byte
}

// Read returns the byte at the given address.
func (v View) Read(addr uint16) byte {
	return v.p[addr]
}

// Read16 returns the little endian 16-bit value at the given address.
func (v View) Read16(addr uint16) uint16 {
	return uint16(v.p[addr+1])<<8 | uint16(v.p[addr])
}

// CopyTo copies len(dst) bytes starting at addr into dst, stopping
// at the top of memory. Returns the number of bytes copied.
func (v View) CopyTo(addr uint16, dst []byte) int {
	return copy(dst, v.p[addr:])
}
