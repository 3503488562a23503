package cpu

import "testing"

func TestDisassemble(t *testing.T) {
	tests := []struct {
		code []byte
		want string
		size int
	}{
		{[]byte{0xa9, 0x02}, "LDA #$02", 2},
		{[]byte{0x00}, "BRK", 1},
		{[]byte{0x0a}, "ASL A", 1},
		{[]byte{0x85, 0x10}, "STA $10", 2},
		{[]byte{0xb5, 0x10}, "LDA $10,X", 2},
		{[]byte{0xb6, 0x10}, "LDX $10,Y", 2},
		{[]byte{0x8d, 0x00, 0x02}, "STA $0200", 3},
		{[]byte{0x9d, 0x00, 0x02}, "STA $0200,X", 3},
		{[]byte{0x99, 0x00, 0x02}, "STA $0200,Y", 3},
		{[]byte{0x6c, 0xfc, 0xff}, "JMP ($fffc)", 3},
		{[]byte{0x81, 0x20}, "STA ($20,X)", 2},
		{[]byte{0x91, 0x20}, "STA ($20),Y", 2},
		{[]byte{0xd0, 0xfe}, "BNE $8000", 2},
		{[]byte{0xf0, 0x10}, "BEQ $8012", 2},
		{[]byte{0x02}, ".byte $02", 1},
		{[]byte{0xff}, ".byte $ff", 1},
	}

	for _, tt := range tests {
		b := NewBus()
		b.Load(Origin, tt.code)

		have, size := Disassemble(b, Origin)
		if have != tt.want || size != tt.size {
			t.Fatalf("% x:\nwant: %q (%d)\nhave: %q (%d)", tt.code, tt.want, tt.size, have, size)
		}
	}
}

func TestDisassembleTopOfMemory(t *testing.T) {
	b := NewBus()
	b.Write(0xffff, 0xad) // LDA abs without operand bytes.

	have, size := Disassemble(b.View(), 0xffff)
	if have != ".byte $ad" || size != 1 {
		t.Fatalf("want %q; have %q (%d)", ".byte $ad", have, size)
	}
}

func TestInstructionString(t *testing.T) {
	b := NewBus()
	b.Load(0x1000, []byte{0x10, 0x80}) // BPL -128

	var regs Registers
	regs.PC = 0x1000

	var instr Instruction
	if err := instr.Decode(b, &regs); err != nil {
		t.Fatalf("Decode failure: %v", err)
	}

	if have := instr.String(); have != "BPL $0f82" {
		t.Fatalf("want %q; have %q", "BPL $0f82", have)
	}
}
