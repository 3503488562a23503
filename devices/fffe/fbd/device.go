// Package fbd implements the framebuffer display: it renders the 32x32
// pixel framebuffer window of system memory through OpenGL.
package fbd

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/px65/devices"
	"github.com/hexaflex/px65/devices/fffe/cpu"
)

// Device defines all internal doodads for the display.
type Device struct {
	palette      Palette
	pixels       [cpu.FramebufferSize]byte
	shader       uint32
	vao          uint32
	vbo          uint32
	texture      uint32
	paletteDirty bool
	initialized  bool
}

var _ devices.Device = &Device{}

// New creates a new display using the default palette.
func New() *Device {
	return &Device{
		palette: DefaultPalette,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0002)
}

// Palette returns the current color palette.
func (d *Device) Palette() *Palette {
	return &d.palette
}

// SetPalette replaces the color palette.
func (d *Device) SetPalette(p Palette) {
	d.palette = p
	d.paletteDirty = true
}

// Startup initializes GL resources. It requires a current GL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	d.texture = makeTexture()
	uploadTexture(d.texture, gl.R8, cpu.FramebufferWidth, cpu.FramebufferHeight, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])

	d.paletteDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Draw uploads the framebuffer contents and renders them to the
// current viewport.
func (d *Device) Draw(fb cpu.Framebuffer) {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.paletteDirty {
		colors := d.palette.floats()
		palette := gl.GetUniformLocation(d.shader, glStr("palette"))
		gl.Uniform4fv(palette, PaletteSize, &colors[0])
		d.paletteDirty = false
	}

	fb.CopyTo(d.pixels[:])
	uploadTexture(d.texture, gl.R8, cpu.FramebufferWidth, cpu.FramebufferHeight, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
