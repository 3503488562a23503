package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hexaflex/px65/asm/ar"
	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/devices/fffe/fbd"
)

// writeHex writes p as hex text, 16 bytes per line.
func writeHex(w io.Writer, p []byte) error {
	bw := bufio.NewWriter(w)
	for i, v := range p {
		sep := " "
		if i%16 == 15 || i == len(p)-1 {
			sep = "\n"
		}
		fmt.Fprintf(bw, "%02x%s", v, sep)
	}
	return bw.Flush()
}

// writeListing writes a disassembly of the archive, annotated with
// source positions where debug symbols are available.
func writeListing(w io.Writer, archive *ar.Archive) error {
	bus := cpu.NewBus()
	if err := bus.Load(archive.Origin, archive.Instructions); err != nil {
		return err
	}

	addr := int(archive.Origin)
	end := addr + len(archive.Instructions)

	for addr < end {
		text, size := cpu.Disassemble(bus, uint16(addr))

		var raw []byte
		for i := 0; i < size; i++ {
			raw = append(raw, bus.Read(uint16(addr+i)))
		}

		line := fmt.Sprintf("%04x  % -9x %s", addr, raw, text)
		if dbg := archive.Debug.Find(uint16(addr)); dbg != nil {
			line = fmt.Sprintf("%-34s ; %s:%d", line, archive.Debug.File(dbg), dbg.Line)
			if dbg.Flags&ar.Breakpoint != 0 {
				line += " (break)"
			}
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		addr += size
	}

	return nil
}

// printFramebuffer writes the framebuffer contents. In color mode two
// pixel rows share one line of half blocks, drawn with 24-bit ANSI
// colors. Otherwise every pixel is written as a single hex digit.
func printFramebuffer(w io.Writer, fb [cpu.FramebufferSize]byte, color bool) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if !color {
		for y := 0; y < cpu.FramebufferHeight; y++ {
			for x := 0; x < cpu.FramebufferWidth; x++ {
				fmt.Fprintf(bw, "%x", fb[y*cpu.FramebufferWidth+x]%fbd.PaletteSize)
			}
			bw.WriteByte('\n')
		}
		return
	}

	pal := fbd.DefaultPalette
	for y := 0; y < cpu.FramebufferHeight; y += 2 {
		for x := 0; x < cpu.FramebufferWidth; x++ {
			top := pal.Color(fb[y*cpu.FramebufferWidth+x])
			bottom := pal.Color(fb[(y+1)*cpu.FramebufferWidth+x])
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		bw.WriteString("\x1b[0m\n")
	}
}
