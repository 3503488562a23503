package arch

import "testing"

func TestTableRoundTrip(t *testing.T) {
	var count int

	for i := 0; i < 256; i++ {
		info, ok := Lookup(byte(i))
		if !ok {
			continue
		}
		count++

		if info.Size != 1+OperandSize(info.Mode) {
			t.Fatalf("opcode %02x: size %d does not match mode %s", i, info.Size, info.Mode)
		}

		opcode, ok := Encode(info.Mnemonic, info.Mode)
		if !ok || opcode != byte(i) {
			t.Fatalf("opcode %02x: Encode yields %02x, %v", i, opcode, ok)
		}
	}

	if count != 151 {
		t.Fatalf("want 151 opcodes; have %d", count)
	}
}

func TestMnemonics(t *testing.T) {
	for m := 0; m < mnemonicCount; m++ {
		name, ok := Name(m)
		if !ok {
			t.Fatalf("mnemonic %d has no name", m)
		}

		have, ok := Mnemonic(name)
		if !ok || have != m {
			t.Fatalf("%s: want %d; have %d", name, m, have)
		}

		if len(Modes(m)) == 0 {
			t.Fatalf("%s has no opcodes", name)
		}
	}

	if m, ok := Mnemonic("lda"); !ok || m != LDA {
		t.Fatalf("mnemonic lookup is not case insensitive")
	}

	if _, ok := Mnemonic("XYZ"); ok {
		t.Fatalf("unknown mnemonic accepted")
	}

	if _, ok := Name(-1); ok {
		t.Fatalf("negative mnemonic accepted")
	}
}

func TestModes(t *testing.T) {
	tests := []struct {
		mnemonic int
		want     int
	}{
		{LDA, 8},
		{STA, 7},
		{LDX, 5},
		{JMP, 2},
		{ASL, 5},
		{BNE, 1},
		{NOP, 1},
	}

	for _, tt := range tests {
		name, _ := Name(tt.mnemonic)
		if have := len(Modes(tt.mnemonic)); have != tt.want {
			t.Fatalf("%s: want %d modes; have %d", name, tt.want, have)
		}
	}

	if !IsBranch(BVS) || IsBranch(JMP) {
		t.Fatalf("IsBranch misclassifies instructions")
	}
}

func TestRegisterNames(t *testing.T) {
	for _, name := range []string{"A", "X", "Y", "SP", "PC", "P"} {
		if have := RegisterName(RegisterIndex(name)); have != name {
			t.Fatalf("want %s; have %s", name, have)
		}
	}

	if RegisterIndex("s") != RegSP || RegisterIndex("q") != -1 {
		t.Fatalf("unexpected register lookup result")
	}
}
