package main

import (
	"io"

	"github.com/hexaflex/px65/devices/fffe/cpu"
	"github.com/hexaflex/px65/devices/fffe/rng"
)

// runState describes the machine after a headless run.
type runState struct {
	Registers   cpu.Registers
	Framebuffer [cpu.FramebufferSize]byte
	Steps       int
	Cycles      uint64
	Halted      bool
}

// run executes the program for at most the given number of steps.
// Decode and bounds errors are returned as-is.
func run(p []byte, steps int, seed int64) (*runState, error) {
	c := cpu.New(nil)
	c.Connect(rng.New(seed))

	if err := c.Startup(); err != nil {
		return nil, err
	}

	defer c.Shutdown()

	if err := c.LoadProgram(p); err != nil {
		return nil, err
	}

	var state runState
	for state.Steps < steps {
		err := c.Step()
		if err == io.EOF {
			state.Halted = true
			break
		}

		if err != nil {
			return nil, err
		}

		state.Steps++
	}

	state.Registers = c.Registers()
	state.Cycles = c.Cycles()
	c.Framebuffer().CopyTo(state.Framebuffer[:])
	return &state, nil
}
