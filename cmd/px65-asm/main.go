package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/hexaflex/px65/asm"
	"github.com/hexaflex/px65/asm/ar"
	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/program"
)

func main() {
	config := parseArgs()

	archive, err := asm.AssembleFile(config.Input, cpu.Origin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch {
	case config.DumpArchive:
		fmt.Println(archive.String())
	case config.Disassemble:
		if err := writeListing(os.Stdout, archive); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case config.RunSteps > 0:
		runProgram(config, archive)
	default:
		buildOutput(config, archive)
	}
}

// runProgram executes the program headless and prints the final state.
func runProgram(c *Config, archive *ar.Archive) {
	state, err := run(archive.Instructions, c.RunSteps, c.Seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	printFramebuffer(os.Stdout, state.Framebuffer, color)
	fmt.Printf("%d steps, %d cycles, %s", state.Steps, state.Cycles, state.Registers)
	if state.Halted {
		fmt.Print(", halted")
	}
	fmt.Println()
}

// buildOutput writes the assembled program to the requested output location.
func buildOutput(c *Config, archive *ar.Archive) {
	w, close := makeWriter(c)
	defer close()

	var err error

	switch {
	case strings.EqualFold(filepath.Ext(c.Output), program.ArchiveExt):
		err = archive.Save(w)
	case program.IsHex(c.Output):
		err = writeHex(w, archive.Instructions)
	default:
		_, err = w.Write(archive.Instructions)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" || c.Output == "-" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if len(dir) > 0 {
		err := os.MkdirAll(dir, 0744)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
