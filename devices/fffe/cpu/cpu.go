// Package cpu implements a MOS 6502 processor and its memory bus.
package cpu

import (
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/px65/arch"
	"github.com/hexaflex/px65/devices"
)

// TraceFunc represents a callback handler for debug trace output.
// It is called for every decoded instruction, before it executes.
type TraceFunc func(*Instruction)

// Execution states.
const (
	stateRunning = iota
	stateHalted
	stateFaulted
)

// CPU implements the runtime. Each CPU owns its bus and registers;
// independent instances share no state.
type CPU struct {
	devices devices.Map // Connected peripherals.
	trace   TraceFunc   // Handler for debug trace output.
	bus     *Bus        // System memory.
	regs    Registers   // Register file.
	instr   Instruction // Decoded instruction data.
	cycles  uint64      // Elapsed cycles since the last reset.
	state   int         // Execution state.
	fault   error       // Error which put the CPU in the faulted state.
	started bool        // Have connected peripherals been started?
}

// New creates a new CPU with zero-filled memory and reset registers.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace: trace,
		bus:   NewBus(),
	}

	c.Reset()
	return c
}

// ID returns the cpu's device ID.
func (c *CPU) ID() devices.ID {
	return devices.NewID(0xfffe, 0x0001)
}

// Connect connects the given hardware peripheral to the system.
// Returns false if the given device type is already connected.
func (c *CPU) Connect(dev devices.Device) bool {
	return c.devices.Connect(dev)
}

// Startup initializes connected peripherals.
func (c *CPU) Startup() error {
	if c.started {
		return errors.New(c.ID().String() + " is already started")
	}

	log.Println(c.ID(), "startup")
	c.started = true
	return c.devices.Startup()
}

// Shutdown cleans up peripheral resources.
func (c *CPU) Shutdown() error {
	if !c.started {
		return nil
	}

	log.Println(c.ID(), "shutdown")
	c.started = false
	return c.devices.Shutdown()
}

// LoadProgram clears memory, copies p to Origin and resets the CPU.
// The reset vector is pointed at Origin unless the program covers it.
//
// Returns an error with cause ErrBounds if the program does not fit
// between Origin and the top of memory. Memory is left untouched then.
func (c *CPU) LoadProgram(p []byte) error {
	if len(p) > AddressSpace-Origin {
		// Let the bus reject it before anything is cleared.
		return c.bus.Load(Origin, p)
	}

	c.bus.Clear()
	if err := c.bus.Load(Origin, p); err != nil {
		return err
	}

	if Origin+len(p) <= ResetVector {
		c.bus.Write16(ResetVector, Origin)
	}

	c.Reset()
	return nil
}

// Reset reinitializes the registers and clears the halted or faulted
// state. PC is loaded from the reset vector; a zero vector means no
// program set it, and PC stays at Origin. Memory is left as it is.
func (c *CPU) Reset() {
	c.regs.Reset()
	if v := c.bus.Read16(ResetVector); v != 0 {
		c.regs.PC = v
	}
	c.cycles = 0
	c.state = stateRunning
	c.fault = nil
}

// Step performs a single execution step.
//
// Returns io.EOF once a BRK instruction has executed, and on every call
// after that until Reset. An undefined opcode, or an instruction running
// past the end of memory, yields an *Error and faults the CPU: every
// further call returns the same error until Reset.
func (c *CPU) Step() error {
	switch c.state {
	case stateHalted:
		return io.EOF
	case stateFaulted:
		return c.fault
	}

	instr := &c.instr
	if err := instr.Decode(c.bus, &c.regs); err != nil {
		c.state = stateFaulted
		c.fault = err
		return err
	}

	c.trace(instr)
	c.execute(instr)
	c.devices.Tick(c.bus)

	if c.state == stateHalted {
		return io.EOF
	}
	return nil
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.regs.PC }

// A returns the accumulator.
func (c *CPU) A() byte { return c.regs.A }

// X returns index register X.
func (c *CPU) X() byte { return c.regs.X }

// Y returns index register Y.
func (c *CPU) Y() byte { return c.regs.Y }

// SP returns the stack pointer.
func (c *CPU) SP() byte { return c.regs.SP }

// Status returns the processor status register.
func (c *CPU) Status() Status { return c.regs.P }

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers { return c.regs }

// Cycles returns the number of cycles elapsed since the last reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted returns true if the CPU has executed a BRK instruction.
func (c *CPU) Halted() bool { return c.state == stateHalted }

// Fault returns the error which stopped execution, if any.
func (c *CPU) Fault() error { return c.fault }

// FrameReady returns true if the framebuffer was written to since
// the last call to ClearFrameReady.
func (c *CPU) FrameReady() bool { return c.bus.FrameReady() }

// ClearFrameReady drops the frame-ready signal. Hosts call this after
// rendering the framebuffer.
func (c *CPU) ClearFrameReady() { c.bus.ClearFrameReady() }

// Framebuffer returns a read-only view over the framebuffer window.
func (c *CPU) Framebuffer() Framebuffer { return c.bus.Framebuffer() }

// Memory returns a read-only view over the whole address space.
func (c *CPU) Memory() View { return c.bus.View() }

// execute applies the semantics of the decoded instruction.
// The program counter already points past the instruction.
func (c *CPU) execute(instr *Instruction) {
	r := &c.regs
	op := &instr.Operand
	c.cycles += uint64(instr.Info.Cycles)

	switch instr.Info.Mnemonic {
	case arch.LDA:
		r.A = c.load(instr)
		r.setZN(r.A)
	case arch.LDX:
		r.X = c.load(instr)
		r.setZN(r.X)
	case arch.LDY:
		r.Y = c.load(instr)
		r.setZN(r.Y)

	case arch.STA:
		c.bus.Write(op.Address, r.A)
	case arch.STX:
		c.bus.Write(op.Address, r.X)
	case arch.STY:
		c.bus.Write(op.Address, r.Y)

	case arch.TAX:
		r.X = r.A
		r.setZN(r.X)
	case arch.TAY:
		r.Y = r.A
		r.setZN(r.Y)
	case arch.TXA:
		r.A = r.X
		r.setZN(r.A)
	case arch.TYA:
		r.A = r.Y
		r.setZN(r.A)
	case arch.TSX:
		r.X = r.SP
		r.setZN(r.X)
	case arch.TXS:
		r.SP = r.X

	case arch.PHA:
		c.push(r.A)
	case arch.PHP:
		c.push(byte(r.P | Break | Unused))
	case arch.PLA:
		r.A = c.pull()
		r.setZN(r.A)
	case arch.PLP:
		r.P = Status(c.pull()) &^ (Break | Unused)

	case arch.AND:
		r.A &= c.load(instr)
		r.setZN(r.A)
	case arch.ORA:
		r.A |= c.load(instr)
		r.setZN(r.A)
	case arch.EOR:
		r.A ^= c.load(instr)
		r.setZN(r.A)
	case arch.BIT:
		v := c.load(instr)
		r.P.Set(Zero, r.A&v == 0)
		r.P.Set(Negative, v&0x80 != 0)
		r.P.Set(Overflow, v&0x40 != 0)

	case arch.ADC:
		c.adc(c.load(instr))
	case arch.SBC:
		c.sbc(c.load(instr))

	case arch.CMP:
		c.compare(r.A, c.load(instr))
	case arch.CPX:
		c.compare(r.X, c.load(instr))
	case arch.CPY:
		c.compare(r.Y, c.load(instr))

	case arch.INC:
		c.modify(instr, func(v byte) byte { return v + 1 })
	case arch.DEC:
		c.modify(instr, func(v byte) byte { return v - 1 })
	case arch.INX:
		r.X++
		r.setZN(r.X)
	case arch.INY:
		r.Y++
		r.setZN(r.Y)
	case arch.DEX:
		r.X--
		r.setZN(r.X)
	case arch.DEY:
		r.Y--
		r.setZN(r.Y)

	case arch.ASL:
		c.modify(instr, func(v byte) byte {
			r.P.Set(Carry, v&0x80 != 0)
			return v << 1
		})
	case arch.LSR:
		c.modify(instr, func(v byte) byte {
			r.P.Set(Carry, v&0x01 != 0)
			return v >> 1
		})
	case arch.ROL:
		c.modify(instr, func(v byte) byte {
			in := byte(r.P & Carry)
			r.P.Set(Carry, v&0x80 != 0)
			return v<<1 | in
		})
	case arch.ROR:
		c.modify(instr, func(v byte) byte {
			in := byte(r.P&Carry) << 7
			r.P.Set(Carry, v&0x01 != 0)
			return v>>1 | in
		})

	case arch.JMP:
		r.PC = op.Address
	case arch.JSR:
		c.push16(r.PC - 1)
		r.PC = op.Address
	case arch.RTS:
		r.PC = c.pull16() + 1
	case arch.RTI:
		r.P = Status(c.pull()) &^ (Break | Unused)
		r.PC = c.pull16()

	case arch.BCC:
		c.branch(instr, !r.P.Has(Carry))
	case arch.BCS:
		c.branch(instr, r.P.Has(Carry))
	case arch.BNE:
		c.branch(instr, !r.P.Has(Zero))
	case arch.BEQ:
		c.branch(instr, r.P.Has(Zero))
	case arch.BPL:
		c.branch(instr, !r.P.Has(Negative))
	case arch.BMI:
		c.branch(instr, r.P.Has(Negative))
	case arch.BVC:
		c.branch(instr, !r.P.Has(Overflow))
	case arch.BVS:
		c.branch(instr, r.P.Has(Overflow))

	case arch.CLC:
		r.P.Set(Carry, false)
	case arch.SEC:
		r.P.Set(Carry, true)
	case arch.CLD:
		r.P.Set(Decimal, false)
	case arch.SED:
		r.P.Set(Decimal, true)
	case arch.CLI:
		r.P.Set(InterruptDisable, false)
	case arch.SEI:
		r.P.Set(InterruptDisable, true)
	case arch.CLV:
		r.P.Set(Overflow, false)

	case arch.NOP:
		/* nop */
	case arch.BRK:
		c.state = stateHalted
	}
}

// load returns the operand value for a read instruction.
func (c *CPU) load(instr *Instruction) byte {
	if instr.Info.Mode == arch.Immediate {
		return instr.Operand.Value
	}

	if instr.Operand.PageCrossed {
		c.cycles++
	}
	return c.bus.Read(instr.Operand.Address)
}

// modify applies f to the accumulator or to the operand in memory,
// stores the result and updates the zero and negative flags.
func (c *CPU) modify(instr *Instruction, f func(byte) byte) {
	if instr.Info.Mode == arch.Accumulator {
		c.regs.A = f(c.regs.A)
		c.regs.setZN(c.regs.A)
		return
	}

	addr := instr.Operand.Address
	v := f(c.bus.Read(addr))
	c.bus.Write(addr, v)
	c.regs.setZN(v)
}

// branch jumps to the operand's target if cond holds.
func (c *CPU) branch(instr *Instruction, cond bool) {
	if !cond {
		return
	}

	c.regs.PC = instr.Operand.Address
	c.cycles++
	if instr.Operand.PageCrossed {
		c.cycles++
	}
}

// compare sets the flags as if v was subtracted from reg.
func (c *CPU) compare(reg, v byte) {
	c.regs.P.Set(Carry, reg >= v)
	c.regs.setZN(reg - v)
}

// push pushes the given value onto the stack and updates SP.
func (c *CPU) push(v byte) {
	c.bus.Write(StackPage|uint16(c.regs.SP), v)
	c.regs.SP--
}

// pull returns the top value from the stack and updates SP.
func (c *CPU) pull() byte {
	c.regs.SP++
	return c.bus.Read(StackPage | uint16(c.regs.SP))
}

// push16 pushes the high byte, then the low byte of v.
func (c *CPU) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

// pull16 pulls a 16-bit value pushed by push16.
func (c *CPU) pull16() uint16 {
	lo := c.pull()
	hi := c.pull()
	return uint16(hi)<<8 | uint16(lo)
}
