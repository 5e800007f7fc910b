package asm

import (
	"github.com/rv32core/rv32isim/encoder"
	"github.com/rv32core/rv32isim/isa"
)

// Assemble translates RV32I assembly source into a sequence of 32-bit
// machine words. Diagnostics are accumulated across the entire source
// before anything is reported: if errs.HasErrors() is true the returned
// word slice is nil, never a partial translation.
func Assemble(source string) ([]uint32, *ErrorList) {
	errs := &ErrorList{}
	lines := tokenize(source)

	symbols, finalAddr, pass1Errs := assemblePass1(lines)
	errs.Errors = append(errs.Errors, pass1Errs.Errors...)
	errs.Warnings = append(errs.Warnings, pass1Errs.Warnings...)

	buf := make([]byte, finalAddr)
	pass2Errs := assemblePass2(lines, symbols, buf)
	errs.Errors = append(errs.Errors, pass2Errs.Errors...)
	errs.Warnings = append(errs.Warnings, pass2Errs.Warnings...)
	if errs.HasErrors() {
		return nil, errs
	}

	words := make([]uint32, len(buf)/4)
	for i := range words {
		o := i * 4
		words[i] = uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24
	}
	return words, errs
}

// assemblePass1 walks the tokenized lines once, expanding pseudos purely to
// discover how many words they occupy, recording label addresses, and
// advancing the address counter for directives. It never resolves a label
// reference to a value — only expandLI needs a resolved value, and its
// operand is always a literal, never a forward reference.
func assemblePass1(lines []line) (map[string]uint32, uint32, *ErrorList) {
	errs := &ErrorList{}
	symbols := make(map[string]uint32)
	var addr uint32

	for _, l := range lines {
		if l.Label != "" {
			if _, exists := symbols[l.Label]; exists {
				errs.AddError(&Error{Pos: l.Pos, Message: "duplicate label " + l.Label, Context: l.Raw, Kind: ErrDuplicateLabel})
			} else {
				symbols[l.Label] = addr
			}
		}

		if l.IsDirective {
			addr += directiveAddressDelta(l, errs)
			continue
		}

		if l.Mnemonic == "" {
			continue
		}

		expanded, err := expandMnemonic(l.Pos, l.Mnemonic, l.Operands, l.Raw)
		if err != nil {
			errs.AddError(toAssemblyError(l.Pos, l.Raw, err))
			continue
		}
		addr += uint32(len(expanded)) * 4
	}

	return symbols, addr, errs
}

// directiveAddressDelta returns how far the address counter advances for a
// directive line. `.text`/`.data` are advisory; `.space N` reserves N
// bytes; `.word` is accepted but emits nothing and does not advance the
// counter (the data is silently dropped, matching the documented open
// question); any other directive is ignored with a warning.
func directiveAddressDelta(l line, errs *ErrorList) uint32 {
	switch l.DirectiveName {
	case ".text", ".data":
		return 0
	case ".space":
		if len(l.Operands) != 1 {
			errs.AddError(&Error{Pos: l.Pos, Message: ".space requires exactly one operand", Context: l.Raw, Kind: ErrOperand})
			return 0
		}
		n, ok := parseIntLiteral(l.Operands[0])
		if !ok || n < 0 {
			errs.AddError(&Error{Pos: l.Pos, Message: ".space operand must be a non-negative integer", Context: l.Raw, Kind: ErrOperand})
			return 0
		}
		return uint32(n)
	case ".word":
		return 0
	default:
		errs.AddWarning(Warning{Pos: l.Pos, Message: "unrecognized directive " + l.DirectiveName + ", ignored"})
		return 0
	}
}

// assemblePass2 re-walks the lines with the label table now fully known,
// resolving every label reference and encoding each real instruction into
// its word position in buf.
func assemblePass2(lines []line, symbols map[string]uint32, buf []byte) *ErrorList {
	errs := &ErrorList{}
	var addr uint32

	for _, l := range lines {
		if l.IsDirective {
			addr += directiveAddressDelta(l, &ErrorList{}) // already validated in pass 1
			continue
		}
		if l.Mnemonic == "" {
			continue
		}

		expanded, err := expandMnemonic(l.Pos, l.Mnemonic, l.Operands, l.Raw)
		if err != nil {
			continue // already reported by pass 1
		}

		for _, in := range expanded {
			word, err := encodeInstr(in, addr, symbols)
			if err != nil {
				errs.AddError(toAssemblyError(in.Pos, in.Raw, err))
				addr += 4
				continue
			}
			buf[addr] = byte(word)
			buf[addr+1] = byte(word >> 8)
			buf[addr+2] = byte(word >> 16)
			buf[addr+3] = byte(word >> 24)
			addr += 4
		}
	}

	return errs
}

// resolveImm turns an instr's immediate (literal or label reference) into
// the concrete signed value the encoder needs, given the instruction's own
// address (branches/jumps are PC-relative to it).
func resolveImm(in instr, addr uint32, symbols map[string]uint32) (int32, error) {
	switch in.ImmKind {
	case immLiteral:
		return in.ImmLiteral, nil
	case immLabelPCRelative:
		target, ok := symbols[in.Label]
		if !ok {
			return 0, &operandErr{kind: ErrUnresolvedLabel, msg: "unresolved label " + in.Label}
		}
		return int32(target) - int32(addr), nil
	case immLabelAbsoluteHigh:
		target, ok := symbols[in.Label]
		if !ok {
			return 0, &operandErr{kind: ErrUnresolvedLabel, msg: "unresolved label " + in.Label}
		}
		upper, _ := splitUpperLower(int32(target))
		return int32(upper), nil
	case immLabelAbsoluteLow:
		target, ok := symbols[in.Label]
		if !ok {
			return 0, &operandErr{kind: ErrUnresolvedLabel, msg: "unresolved label " + in.Label}
		}
		_, low := splitUpperLower(int32(target))
		return low, nil
	default:
		return in.ImmLiteral, nil
	}
}

// encodeInstr resolves in's immediate and packs it into a machine word
// using the format the instruction's descriptor names.
func encodeInstr(in instr, addr uint32, symbols map[string]uint32) (uint32, error) {
	desc, ok := isa.Lookup(in.Mnemonic)
	if !ok {
		return 0, &operandErr{kind: ErrUnknownMnemonic, msg: "unknown mnemonic " + in.Mnemonic}
	}

	imm, err := resolveImm(in, addr, symbols)
	if err != nil {
		return 0, err
	}

	switch in.Mnemonic {
	case "slli", "srli", "srai":
		return encoder.EncodeShift(in.Mnemonic, desc.Opcode, desc.Funct3, desc.Funct7, in.RD, in.RS1, uint32(imm))
	}

	switch desc.Format {
	case isa.FormatR:
		return encoder.EncodeR(desc.Opcode, desc.Funct3, desc.Funct7, in.RD, in.RS1, in.RS2), nil
	case isa.FormatI:
		return encoder.EncodeI(in.Mnemonic, desc.Opcode, desc.Funct3, in.RD, in.RS1, imm)
	case isa.FormatS:
		return encoder.EncodeS(in.Mnemonic, desc.Opcode, desc.Funct3, in.RS1, in.RS2, imm)
	case isa.FormatB:
		return encoder.EncodeB(in.Mnemonic, desc.Opcode, desc.Funct3, in.RS1, in.RS2, imm)
	case isa.FormatU:
		return encoder.EncodeU(desc.Opcode, in.RD, uint32(imm)), nil
	case isa.FormatJ:
		return encoder.EncodeJ(in.Mnemonic, desc.Opcode, in.RD, imm)
	default:
		return 0, &operandErr{kind: ErrSyntax, msg: "unsupported format for " + in.Mnemonic}
	}
}
