package main

import (
	"io"
	"log"
	"time"

	"github.com/hexaflex/px65/devices"
	"github.com/hexaflex/px65/devices/fffe/cpu"
)

// CPUController controls the execution of a CPU.
type CPUController struct {
	cpu         *cpu.CPU
	start       time.Time
	startCycles uint64
	running     bool
}

// NewCPUController creates a new CPU controller.
func NewCPUController(trace cpu.TraceFunc, devices ...devices.Device) *CPUController {
	cpu := cpu.New(trace)

	for _, dev := range devices {
		cpu.Connect(dev)
	}

	return &CPUController{
		cpu: cpu,
	}
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the current clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cpu.Cycles()-c.startCycles) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Step performs a single exection step. Execution stops when the
// program halts or faults.
func (c *CPUController) Step() error {
	err := c.cpu.Step()
	if err == nil {
		return nil
	}

	c.setRunning(false)
	if err == io.EOF {
		log.Printf("program halted at %04x", c.cpu.PC())
		return nil
	}
	return err
}

// RunFrame performs execution steps until the program has written to the
// framebuffer, the step budget is spent or execution stops.
func (c *CPUController) RunFrame(budget int) error {
	for i := 0; i < budget && c.running; i++ {
		if err := c.Step(); err != nil {
			return err
		}

		if c.cpu.FrameReady() {
			break
		}
	}
	return nil
}

// Load loads the given program and resets the cpu.
func (c *CPUController) Load(p []byte) error {
	if err := c.cpu.LoadProgram(p); err != nil {
		return err
	}
	c.setRunning(c.running)
	return nil
}

// Reset resets the cpu without reloading the program.
func (c *CPUController) Reset() {
	c.cpu.Reset()
	c.setRunning(c.running)
}

// Registers returns the cpu's register file.
func (c *CPUController) Registers() cpu.Registers {
	return c.cpu.Registers()
}

// Framebuffer returns the cpu's framebuffer view.
func (c *CPUController) Framebuffer() cpu.Framebuffer {
	return c.cpu.Framebuffer()
}

// ClearFrameReady acknowledges a rendered frame.
func (c *CPUController) ClearFrameReady() {
	c.cpu.ClearFrameReady()
}

// Startup initializes the cpu and connected peripherals.
func (c *CPUController) Startup() error {
	return c.cpu.Startup()
}

// Shutdown disposes of CPU and peripheral resources.
func (c *CPUController) Shutdown() error {
	return c.cpu.Shutdown()
}

// setRunning determines if the CPU is running or is paused.
// A faulted CPU stays paused until it is reset or reloaded.
func (c *CPUController) setRunning(v bool) {
	if err := c.cpu.Fault(); v && err != nil {
		log.Println("cpu faulted, reset or reload to continue:", err)
		v = false
	}

	c.running = v
	c.start = time.Now()
	c.startCycles = c.cpu.Cycles()
}
