package asm

import "github.com/rv32core/rv32isim/isa"

// expandReal parses the operands of a real (non-pseudo) RV32I mnemonic
// into a single instr, dispatching on the mnemonic's format.
func expandReal(pos Position, mnemonic string, operands []string, raw string) ([]instr, error) {
	desc, ok := isa.Lookup(mnemonic)
	if !ok {
		return nil, &Error{Pos: pos, Message: "unknown mnemonic " + mnemonic, Context: raw, Kind: ErrUnknownMnemonic}
	}

	switch mnemonic {
	case "slli", "srli", "srai":
		return expectArity(pos, mnemonic, operands, 3, raw, func() ([]instr, error) {
			rd, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			rs1, err := parseRegister(operands[1])
			if err != nil {
				return nil, err
			}
			shamt, ok := parseIntLiteral(operands[2])
			if !ok || shamt < 0 || shamt > 31 {
				return nil, &Error{Pos: pos, Message: "shift amount out of 0..31 range: " + operands[2], Context: raw, Kind: ErrImmediateRange}
			}
			return []instr{{Pos: pos, Mnemonic: mnemonic, RD: rd, RS1: rs1, ImmKind: immLiteral, ImmLiteral: int32(shamt), Raw: raw}}, nil
		})
	}

	switch desc.Format {
	case isa.FormatR:
		return expectArity(pos, mnemonic, operands, 3, raw, func() ([]instr, error) {
			rd, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			rs1, err := parseRegister(operands[1])
			if err != nil {
				return nil, err
			}
			rs2, err := parseRegister(operands[2])
			if err != nil {
				return nil, err
			}
			return []instr{{Pos: pos, Mnemonic: mnemonic, RD: rd, RS1: rs1, RS2: rs2, Raw: raw}}, nil
		})

	case isa.FormatI:
		if mnemonic == "jalr" {
			return expectArity(pos, mnemonic, operands, 3, raw, func() ([]instr, error) {
				rd, err := parseRegister(operands[0])
				if err != nil {
					return nil, err
				}
				rs1, err := parseRegister(operands[1])
				if err != nil {
					return nil, err
				}
				iv, err := parseImmediateOrLabel(operands[2])
				if err != nil {
					return nil, err
				}
				in := instr{Pos: pos, Mnemonic: mnemonic, RD: rd, RS1: rs1, Raw: raw}
				applyImmOrLabel(&in, iv, immLabelAbsoluteLow)
				return []instr{in}, nil
			})
		}
		if isLoad(mnemonic) {
			return expectArity(pos, mnemonic, operands, 2, raw, func() ([]instr, error) {
				rd, err := parseRegister(operands[0])
				if err != nil {
					return nil, err
				}
				off, rs1, err := parseMemoryOperand(operands[1])
				if err != nil {
					return nil, err
				}
				in := instr{Pos: pos, Mnemonic: mnemonic, RD: rd, RS1: rs1, Raw: raw}
				applyImmOrLabel(&in, off, immLabelAbsoluteLow)
				return []instr{in}, nil
			})
		}
		// I-type ALU: addi, slti, sltiu, xori, ori, andi
		return expectArity(pos, mnemonic, operands, 3, raw, func() ([]instr, error) {
			rd, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			rs1, err := parseRegister(operands[1])
			if err != nil {
				return nil, err
			}
			iv, err := parseImmediateOrLabel(operands[2])
			if err != nil {
				return nil, err
			}
			in := instr{Pos: pos, Mnemonic: mnemonic, RD: rd, RS1: rs1, Raw: raw}
			applyImmOrLabel(&in, iv, immLabelAbsoluteLow)
			return []instr{in}, nil
		})

	case isa.FormatS:
		return expectArity(pos, mnemonic, operands, 2, raw, func() ([]instr, error) {
			rs2, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			off, rs1, err := parseMemoryOperand(operands[1])
			if err != nil {
				return nil, err
			}
			in := instr{Pos: pos, Mnemonic: mnemonic, RS1: rs1, RS2: rs2, Raw: raw}
			applyImmOrLabel(&in, off, immLabelAbsoluteLow)
			return []instr{in}, nil
		})

	case isa.FormatB:
		return expectArity(pos, mnemonic, operands, 3, raw, func() ([]instr, error) {
			rs1, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			rs2, err := parseRegister(operands[1])
			if err != nil {
				return nil, err
			}
			target, err := parseImmediateOrLabel(operands[2])
			if err != nil {
				return nil, err
			}
			return []instr{branchInstr(pos, mnemonic, rs1, rs2, target, raw)}, nil
		})

	case isa.FormatJ:
		return expectArity(pos, mnemonic, operands, 2, raw, func() ([]instr, error) {
			rd, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			target, err := parseImmediateOrLabel(operands[1])
			if err != nil {
				return nil, err
			}
			return []instr{jumpInstr(pos, mnemonic, rd, target, raw)}, nil
		})

	case isa.FormatU:
		return expectArity(pos, mnemonic, operands, 2, raw, func() ([]instr, error) {
			rd, err := parseRegister(operands[0])
			if err != nil {
				return nil, err
			}
			iv, err := parseImmediateOrLabel(operands[1])
			if err != nil {
				return nil, err
			}
			in := instr{Pos: pos, Mnemonic: mnemonic, RD: rd, Raw: raw}
			applyImmOrLabel(&in, iv, immLabelAbsoluteHigh)
			return []instr{in}, nil
		})

	default:
		return nil, &Error{Pos: pos, Message: "unsupported format for " + mnemonic, Context: raw, Kind: ErrSyntax}
	}
}

func isLoad(mnemonic string) bool {
	switch mnemonic {
	case "lb", "lh", "lw", "lbu", "lhu":
		return true
	default:
		return false
	}
}

func applyImmOrLabel(in *instr, v operandValue, labelKind immKind) {
	if v.IsLabel {
		in.ImmKind = labelKind
		in.Label = v.Label
	} else {
		in.ImmKind = immLiteral
		in.ImmLiteral = v.Literal
	}
}
