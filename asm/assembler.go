// Package asm implements a two-pass 6502 assembler which turns a source
// file into a program archive, ready to be loaded by the cpu.
//
// The accepted syntax follows the customary 6502 conventions:
//
//	define  sysRandom $fe     ; named constant
//	        *=$8000           ; or .org $8000
//	start:  LDA #$01          ; labels end with a colon
//	        STA $0200,X
//	        LDA (ptr),Y
//	        BNE start
//	        .byte 1, 2, "text"
//	        .word start
//	        .break            ; set a breakpoint on the next instruction
//
// Numbers are decimal, $hex, %binary or 'c'. Symbols are case insensitive.
package asm

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/px65/arch"
	"github.com/hexaflex/px65/asm/ar"
)

// assembler holds assembler context. It turns the statements of a single
// source file into a binary archive.
type assembler struct {
	ar      *ar.Archive    // Target archive.
	symbols map[string]int // Labels and constants mapped to their values.
	buf     [0x10000]byte  // Assembled memory image.
	origin  int            // Load address of the program.
	end     int            // Address past the last emitted byte.
	pc      int            // Address of the current statement.
	final   bool           // Second pass? Undefined symbols are errors then.
	flags   ar.DebugFlags  // One-shot flags for the next instruction's debug symbol.
}

// Assemble reads 6502 assembly source from r and assembles it for the
// given load origin. The file name is used for error positions and debug
// symbols.
func Assemble(r io.Reader, file string, origin uint16) (*ar.Archive, error) {
	stmts, err := parse(r, file)
	if err != nil {
		return nil, err
	}

	a := &assembler{
		ar:      ar.New(),
		symbols: make(map[string]int),
		origin:  int(origin),
		end:     int(origin),
	}

	a.ar.Origin = origin
	a.ar.Debug.Files = []string{file}

	if err := a.pass(stmts); err != nil {
		return nil, err
	}

	a.final = true
	if err := a.pass(stmts); err != nil {
		return nil, err
	}

	a.ar.Instructions = append([]byte{}, a.buf[a.origin:a.end]...)
	return a.ar, nil
}

// AssembleFile assembles the given source file.
func AssembleFile(file string, origin uint16) (*ar.Archive, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "assemble %s", file)
	}

	defer fd.Close()
	return Assemble(fd, file, origin)
}

// pass walks all statements once. The first pass defines symbols and
// selects address modes, the second one emits code.
func (a *assembler) pass(stmts []*statement) error {
	a.pc = a.origin
	a.flags = 0

	for _, st := range stmts {
		if len(st.label) > 0 && !a.final {
			if err := a.define(st.label, a.pc, st.labelPos); err != nil {
				return err
			}
		}

		if len(st.op) == 0 {
			continue
		}

		var err error

		switch strings.ToLower(st.op) {
		case "define":
			err = a.constant(st)
		case "*=", ".org", "org":
			err = a.org(st)
		case ".byte", ".db", "dcb":
			err = a.data(st, 1)
		case ".word", ".dw":
			err = a.data(st, 2)
		case ".break":
			a.flags |= ar.Breakpoint
		default:
			err = a.instruction(st)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// define adds a symbol to the symbol table.
func (a *assembler) define(name string, value int, pos Position) error {
	key := strings.ToLower(name)
	if _, ok := a.symbols[key]; ok {
		return newError(pos, "duplicate symbol %q", name)
	}

	if _, ok := arch.Mnemonic(name); ok || key == "a" {
		return newError(pos, "reserved name %q can not be used as a symbol", name)
	}

	a.symbols[key] = value
	return nil
}

// constant handles "define <name> <value>". The value may only refer
// to symbols defined further up.
func (a *assembler) constant(st *statement) error {
	if a.final {
		return nil
	}

	fields := strings.Fields(st.operand)
	if len(fields) < 2 || scanIdent(fields[0], 0) != len(fields[0]) {
		return newError(st.opPos, "invalid define; expected `define <name> <value>`")
	}

	v, known, err := a.eval(strings.Join(fields[1:], ""), st.argPos)
	if err != nil {
		return err
	}

	if !known {
		return newError(st.argPos, "define %q refers to an undefined symbol", fields[0])
	}

	return a.define(fields[0], v, st.argPos)
}

// org moves the assembly address forward.
func (a *assembler) org(st *statement) error {
	v, known, err := a.eval(st.operand, st.argPos)
	if err != nil {
		return err
	}

	if !known {
		return newError(st.argPos, "org address refers to an undefined symbol")
	}

	if v < a.pc || v > 0xffff {
		return newError(st.argPos, "org address %04x is out of range; expected %04x-ffff", v, a.pc)
	}

	a.pc = v
	return nil
}

// data handles .byte and .word directives.
func (a *assembler) data(st *statement, width int) error {
	args, err := splitArgs(st.operand, st.argPos)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return newError(st.opPos, "%s expects at least one value", st.op)
	}

	for _, arg := range args {
		if width == 1 && len(arg) > 0 && arg[0] == '"' {
			if len(arg) < 2 || arg[len(arg)-1] != '"' {
				return newError(st.argPos, "unterminated string %s", arg)
			}
			for i := 1; i < len(arg)-1; i++ {
				if err := a.emit(st.argPos, byte(arg[i])); err != nil {
					return err
				}
			}
			continue
		}

		v := 0
		if a.final {
			if v, _, err = a.eval(arg, st.argPos); err != nil {
				return err
			}
		}

		if width == 1 {
			if v < -128 || v > 0xff {
				return newError(st.argPos, "value %d does not fit in a byte", v)
			}
			err = a.emit(st.argPos, byte(v))
		} else {
			if v < -0x8000 || v > 0xffff {
				return newError(st.argPos, "value %d does not fit in a word", v)
			}
			err = a.emit(st.argPos, byte(v), byte(v>>8))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// instruction assembles a single instruction.
func (a *assembler) instruction(st *statement) error {
	m, ok := arch.Mnemonic(st.op)
	if !ok {
		return newError(st.opPos, "unknown instruction %q", st.op)
	}

	if !a.final {
		mode, err := a.selectMode(m, st)
		if err != nil {
			return err
		}
		st.mode = mode
	}

	opcode, _ := arch.Encode(m, st.mode)
	operand, err := a.encodeOperand(st)
	if err != nil {
		return err
	}

	if a.final {
		a.ar.Debug.Symbols = append(a.ar.Debug.Symbols, ar.DebugData{
			Address: uint16(a.pc),
			Line:    st.opPos.Line,
			Col:     st.opPos.Col,
			Flags:   a.flags,
		})
		a.flags = 0
	}

	return a.emit(st.opPos, append([]byte{opcode}, operand...)...)
}

// selectMode determines the address mode from the operand syntax.
// Zero page modes are chosen when the operand is known and fits in a
// byte; forward references always select the absolute variant.
func (a *assembler) selectMode(m int, st *statement) (arch.AddressMode, error) {
	supports := func(mode arch.AddressMode) bool {
		_, ok := arch.Encode(m, mode)
		return ok
	}

	var mode arch.AddressMode
	kind, expr := splitOperand(st.operand)

	switch kind {
	case operandNone:
		switch {
		case supports(arch.Implied):
			mode = arch.Implied
		case supports(arch.Accumulator):
			mode = arch.Accumulator
		default:
			return 0, newError(st.opPos, "%s requires an operand", strings.ToUpper(st.op))
		}

	case operandAccumulator:
		mode = arch.Accumulator
	case operandImmediate:
		mode = arch.Immediate
	case operandIndirect:
		mode = arch.Indirect
	case operandIndirectX:
		mode = arch.IndirectX
	case operandIndirectY:
		mode = arch.IndirectY

	default:
		if kind == operandDirect && arch.IsBranch(m) {
			mode = arch.Relative
			break
		}

		zp, abs := arch.ZeroPage, arch.Absolute
		switch kind {
		case operandIndexX:
			zp, abs = arch.ZeroPageX, arch.AbsoluteX
		case operandIndexY:
			zp, abs = arch.ZeroPageY, arch.AbsoluteY
		}

		v, known, err := a.eval(expr, st.argPos)
		if err != nil {
			return 0, err
		}

		switch {
		case known && v >= 0 && v <= 0xff && supports(zp):
			mode = zp
		case supports(abs):
			mode = abs
		default:
			mode = zp
		}
	}

	if !supports(mode) {
		var names []string
		for _, mode := range arch.Modes(m) {
			names = append(names, mode.String())
		}
		return 0, newError(st.argPos, "%s does not support %s addressing; use %s",
			strings.ToUpper(st.op), mode, strings.Join(names, ", "))
	}

	return mode, nil
}

// encodeOperand returns the operand bytes for the selected address mode.
// During the first pass only the length of the result matters.
func (a *assembler) encodeOperand(st *statement) ([]byte, error) {
	size := arch.OperandSize(st.mode)
	if size == 0 || !a.final {
		return make([]byte, size), nil
	}

	_, expr := splitOperand(st.operand)
	v, _, err := a.eval(expr, st.argPos)
	if err != nil {
		return nil, err
	}

	switch st.mode {
	case arch.Relative:
		offset := v - (a.pc + 2)
		if offset < -128 || offset > 127 {
			return nil, newError(st.argPos, "branch target %04x is out of range", v)
		}
		return []byte{byte(offset)}, nil

	case arch.Immediate:
		if v < -128 || v > 0xff {
			return nil, newError(st.argPos, "value %d does not fit in a byte", v)
		}
		return []byte{byte(v)}, nil
	}

	if size == 1 {
		if v < 0 || v > 0xff {
			return nil, newError(st.argPos, "address %04x is not in page zero", v)
		}
		return []byte{byte(v)}, nil
	}

	if v < 0 || v > 0xffff {
		return nil, newError(st.argPos, "address %d is out of range", v)
	}
	return []byte{byte(v), byte(v >> 8)}, nil
}

// emit writes p at the current address and advances it.
func (a *assembler) emit(pos Position, p ...byte) error {
	if a.pc+len(p) > len(a.buf) {
		return newError(pos, "program runs past the end of memory")
	}

	if a.final {
		copy(a.buf[a.pc:], p)
	}

	a.pc += len(p)
	if a.pc > a.end {
		a.end = a.pc
	}
	return nil
}
