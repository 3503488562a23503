package fbd

import (
	"image"
	"image/color"

	"github.com/hexaflex/px65/devices/fffe/cpu"
)

// PaletteSize defines the number of colors in the palette.
// Pixel values are reduced to their low 4 bits.
const PaletteSize = 16

// Palette maps framebuffer pixel values to colors.
type Palette [PaletteSize]color.RGBA

// DefaultPalette holds the customary 32x32 display colors:
// black background, white foreground and 14 more.
var DefaultPalette = Palette{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0xff, 0xff, 0xff, 0xff}, // white
	{0x88, 0x00, 0x00, 0xff}, // red
	{0xaa, 0xff, 0xee, 0xff}, // cyan
	{0xcc, 0x44, 0xcc, 0xff}, // purple
	{0x00, 0xcc, 0x55, 0xff}, // green
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0xee, 0xee, 0x77, 0xff}, // yellow
	{0xdd, 0x88, 0x55, 0xff}, // orange
	{0x66, 0x44, 0x00, 0xff}, // brown
	{0xff, 0x77, 0x77, 0xff}, // light red
	{0x33, 0x33, 0x33, 0xff}, // dark grey
	{0x77, 0x77, 0x77, 0xff}, // grey
	{0xaa, 0xff, 0x66, 0xff}, // light green
	{0x00, 0x88, 0xff, 0xff}, // light blue
	{0xbb, 0xbb, 0xbb, 0xff}, // light grey
}

// Color returns the color for the given pixel value.
func (p *Palette) Color(v byte) color.RGBA {
	return p[v%PaletteSize]
}

// floats returns the palette as normalized RGBA components
// in the layout expected by the shader's palette uniform.
func (p *Palette) floats() [PaletteSize * 4]float32 {
	var out [PaletteSize * 4]float32
	for i, c := range p {
		out[i*4+0] = float32(c.R) / 255
		out[i*4+1] = float32(c.G) / 255
		out[i*4+2] = float32(c.B) / 255
		out[i*4+3] = float32(c.A) / 255
	}
	return out
}

// Image converts the framebuffer to a paletted image with one
// image pixel per framebuffer pixel.
func (p *Palette) Image(fb cpu.Framebuffer) *image.Paletted {
	pal := make(color.Palette, PaletteSize)
	for i := range p {
		pal[i] = p[i]
	}

	img := image.NewPaletted(image.Rect(0, 0, cpu.FramebufferWidth, cpu.FramebufferHeight), pal)
	fb.CopyTo(img.Pix)

	for i, v := range img.Pix {
		img.Pix[i] = v % PaletteSize
	}

	return img
}
