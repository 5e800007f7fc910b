package asm

import (
	"fmt"
	"strings"

	"github.com/rv32core/rv32isim/encoder"
	"github.com/rv32core/rv32isim/isa"
)

// Disassemble renders a word sequence back to mnemonic-level assembly text,
// one instruction per line, labeled with its address. base is the address
// the first word is loaded at (matching load_program's base argument).
// Unlike the reference implementation this was distilled from — which
// falls back to raw `.word 0x...` dumps — this reconstructs real mnemonics
// and operands wherever the opcode/funct3/funct7 combination is
// recognized, and only falls back to a `.word` line for the rest.
func Disassemble(words []uint32, base uint32) string {
	var b strings.Builder
	for i, word := range words {
		addr := base + uint32(i)*4
		fmt.Fprintf(&b, "%08X:\t%s\n", addr, disassembleOne(word))
	}
	return b.String()
}

func disassembleOne(word uint32) string {
	if word == 0 {
		return ".word 0x00000000  # halt"
	}

	d := encoder.Decode(word)
	funct7 := d.Funct7
	if d.Opcode == isa.OpcodeIType && d.Funct3 != 0b001 && d.Funct3 != 0b101 {
		funct7 = 0 // only the shift-immediates carry a meaningful funct7
	}

	funct3 := d.Funct3
	if d.Opcode == isa.OpcodeJAL || d.Opcode == isa.OpcodeLUI || d.Opcode == isa.OpcodeAUIPC {
		funct3 = 0 // U/J words carry immediate bits where funct3 would be
	}

	mnemonic, ok := isa.MnemonicForOpcode(d.Opcode, funct3, funct7)
	if !ok {
		return fmt.Sprintf(".word 0x%08X  # unrecognized opcode 0x%02X", word, d.Opcode)
	}

	rd := isa.RegisterName(int(d.RD))
	rs1 := isa.RegisterName(int(d.RS1))
	rs2 := isa.RegisterName(int(d.RS2))

	switch d.Opcode {
	case isa.OpcodeRType:
		return fmt.Sprintf("%s %s, %s, %s", mnemonic, rd, rs1, rs2)
	case isa.OpcodeIType:
		if mnemonic == "slli" || mnemonic == "srli" || mnemonic == "srai" {
			return fmt.Sprintf("%s %s, %s, %d", mnemonic, rd, rs1, d.Shamt)
		}
		return fmt.Sprintf("%s %s, %s, %d", mnemonic, rd, rs1, d.ImmI)
	case isa.OpcodeLoad:
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic, rd, d.ImmI, rs1)
	case isa.OpcodeStore:
		return fmt.Sprintf("%s %s, %d(%s)", mnemonic, rs2, d.ImmS, rs1)
	case isa.OpcodeBranch:
		return fmt.Sprintf("%s %s, %s, %d", mnemonic, rs1, rs2, d.ImmB)
	case isa.OpcodeJAL:
		return fmt.Sprintf("%s %s, %d", mnemonic, rd, d.ImmJ)
	case isa.OpcodeJALR:
		return fmt.Sprintf("%s %s, %s, %d", mnemonic, rd, rs1, d.ImmI)
	case isa.OpcodeLUI, isa.OpcodeAUIPC:
		return fmt.Sprintf("%s %s, 0x%05X", mnemonic, rd, d.ImmU>>12)
	default:
		return fmt.Sprintf(".word 0x%08X", word)
	}
}
