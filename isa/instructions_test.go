package isa

import "testing"

func TestRegisterIndexNumericAndABI(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"x0", 0}, {"zero", 0}, {"x1", 1}, {"ra", 1}, {"x2", 2}, {"sp", 2},
		{"x8", 8}, {"s0", 8}, {"fp", 8}, {"a0", 10}, {"t6", 31}, {"x31", 31},
	}
	for _, c := range cases {
		got, ok := RegisterIndex(c.name)
		if !ok {
			t.Fatalf("RegisterIndex(%q): not found", c.name)
		}
		if got != c.want {
			t.Errorf("RegisterIndex(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRegisterIndexUnknown(t *testing.T) {
	if _, ok := RegisterIndex("x32"); ok {
		t.Error("x32 should not resolve")
	}
	if _, ok := RegisterIndex("banana"); ok {
		t.Error("banana should not resolve")
	}
}

func TestLookupCoversBaseSet(t *testing.T) {
	mnemonics := []string{
		"add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and",
		"addi", "slti", "sltiu", "xori", "ori", "andi", "slli", "srli", "srai",
		"lb", "lh", "lw", "lbu", "lhu",
		"sb", "sh", "sw",
		"beq", "bne", "blt", "bge", "bltu", "bgeu",
		"jal", "jalr",
		"lui", "auipc",
	}
	for _, m := range mnemonics {
		if _, ok := Lookup(m); !ok {
			t.Errorf("Lookup(%q) missing from instruction table", m)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("mul"); ok {
		t.Error("mul is a multiply-extension mnemonic and must not be present")
	}
}

func TestMnemonicForOpcodeDiscriminatesShifts(t *testing.T) {
	name, ok := MnemonicForOpcode(OpcodeIType, 0b101, funct7Base)
	if !ok || name != "srli" {
		t.Errorf("expected srli, got %q ok=%v", name, ok)
	}
	name, ok = MnemonicForOpcode(OpcodeIType, 0b101, funct7Alt)
	if !ok || name != "srai" {
		t.Errorf("expected srai, got %q ok=%v", name, ok)
	}
	name, ok = MnemonicForOpcode(OpcodeRType, 0b000, funct7Alt)
	if !ok || name != "sub" {
		t.Errorf("expected sub, got %q ok=%v", name, ok)
	}
}
