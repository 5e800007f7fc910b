package encoder

import "testing"

func TestEncodeDecodeRType(t *testing.T) {
	cases := []struct {
		name                  string
		funct3, funct7        uint32
		rd, rs1, rs2          uint32
	}{
		{"add", 0b000, 0b0000000, 3, 1, 2},
		{"sub", 0b000, 0b0100000, 4, 1, 2},
		{"sra", 0b101, 0b0100000, 5, 10, 11},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word := EncodeR(0b0110011, c.funct3, c.funct7, c.rd, c.rs1, c.rs2)
			d := Decode(word)
			if d.Opcode != 0b0110011 || d.RD != c.rd || d.Funct3 != c.funct3 ||
				d.RS1 != c.rs1 || d.RS2 != c.rs2 || d.Funct7 != c.funct7 {
				t.Errorf("round-trip mismatch: got %+v", d)
			}
		})
	}
}

func TestEncodeDecodeIType(t *testing.T) {
	cases := []int32{0, 1, -1, 2047, -2048}
	for _, imm := range cases {
		word, err := EncodeI("addi", 0b0010011, 0b000, 5, 1, imm)
		if err != nil {
			t.Fatalf("EncodeI(%d): %v", imm, err)
		}
		d := Decode(word)
		if d.ImmI != imm {
			t.Errorf("ImmI round-trip: got %d want %d", d.ImmI, imm)
		}
	}
}

func TestEncodeIRangeError(t *testing.T) {
	if _, err := EncodeI("addi", 0b0010011, 0, 1, 1, 2048); err == nil {
		t.Error("expected range error for imm=2048")
	}
	if _, err := EncodeI("addi", 0b0010011, 0, 1, 1, -2049); err == nil {
		t.Error("expected range error for imm=-2049")
	}
}

func TestEncodeShiftDiscriminator(t *testing.T) {
	word, err := EncodeShift("srai", OpcodeITypeForTest, 0b101, funct7Alt, 1, 2, 31)
	if err != nil {
		t.Fatal(err)
	}
	d := Decode(word)
	if d.Shamt != 31 || d.Funct7 != funct7Alt {
		t.Errorf("got shamt=%d funct7=%b", d.Shamt, d.Funct7)
	}
}

func TestEncodeShiftOutOfRange(t *testing.T) {
	if _, err := EncodeShift("slli", OpcodeITypeForTest, 0b001, funct7Base, 1, 2, 32); err == nil {
		t.Error("expected error for shamt=32")
	}
}

func TestEncodeDecodeSType(t *testing.T) {
	cases := []int32{0, 1, -1, 2047, -2048}
	for _, imm := range cases {
		word, err := EncodeS("sw", 0b0100011, 0b010, 1, 2, imm)
		if err != nil {
			t.Fatalf("EncodeS(%d): %v", imm, err)
		}
		d := Decode(word)
		if d.ImmS != imm {
			t.Errorf("ImmS round-trip: got %d want %d", d.ImmS, imm)
		}
	}
}

func TestEncodeDecodeBType(t *testing.T) {
	cases := []int32{0, 2, -2, 4094, -4096}
	for _, imm := range cases {
		word, err := EncodeB("beq", 0b1100011, 0b000, 1, 2, imm)
		if err != nil {
			t.Fatalf("EncodeB(%d): %v", imm, err)
		}
		d := Decode(word)
		if d.ImmB != imm {
			t.Errorf("ImmB round-trip: got %d want %d", d.ImmB, imm)
		}
	}
}

func TestEncodeBOddOffsetRejected(t *testing.T) {
	if _, err := EncodeB("beq", 0b1100011, 0, 1, 2, 3); err == nil {
		t.Error("expected error for odd branch offset")
	}
}

func TestEncodeDecodeUType(t *testing.T) {
	word := EncodeU(0b0110111, 5, 0x12345)
	d := Decode(word)
	if d.ImmU != 0x12345000 {
		t.Errorf("ImmU = 0x%x, want 0x12345000", d.ImmU)
	}
	if d.RD != 5 {
		t.Errorf("RD = %d, want 5", d.RD)
	}
}

func TestEncodeDecodeJType(t *testing.T) {
	cases := []int32{0, 2, -2, 1048574, -1048576}
	for _, imm := range cases {
		word, err := EncodeJ("jal", 0b1101111, 1, imm)
		if err != nil {
			t.Fatalf("EncodeJ(%d): %v", imm, err)
		}
		d := Decode(word)
		if d.ImmJ != imm {
			t.Errorf("ImmJ round-trip: got %d want %d", d.ImmJ, imm)
		}
	}
}

func TestEncodeJOddOffsetRejected(t *testing.T) {
	if _, err := EncodeJ("jal", 0b1101111, 0, 5); err == nil {
		t.Error("expected error for odd jump offset")
	}
}

// OpcodeITypeForTest avoids importing the isa package into encoder's tests
// (encoder is the lower-level package); the numeric literal matches
// isa.OpcodeIType.
const OpcodeITypeForTest = 0b0010011

// funct7Base and funct7Alt are the SLLI/SRLI and SRAI discriminators in
// imm[11:5], matching the isa package's unexported constants.
const (
	funct7Base = 0b0000000
	funct7Alt  = 0b0100000
)
