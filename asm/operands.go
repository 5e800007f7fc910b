package asm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rv32core/rv32isim/isa"
)

var memOperandRe = regexp.MustCompile(`^(-?[A-Za-z0-9_]+)\(([A-Za-z0-9_]+)\)$`)

// parseRegister resolves a register operand (numeric or ABI alias) to its
// index.
func parseRegister(tok string) (uint32, error) {
	idx, ok := isa.RegisterIndex(tok)
	if !ok {
		return 0, &operandErr{kind: ErrUnknownRegister, msg: "unknown register " + tok}
	}
	return uint32(idx), nil
}

// parseIntLiteral parses a decimal, 0x-hex, or 0b-binary integer literal,
// with an optional leading '-'.
func parseIntLiteral(tok string) (int64, bool) {
	neg := false
	s := tok
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		v, err = strconv.ParseInt(s[2:], 2, 64)
	default:
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// operandValue is either a resolved literal immediate or a deferred label
// reference, produced while parsing an operand that may name either.
type operandValue struct {
	IsLabel bool
	Literal int32
	Label   string
}

// parseImmediateOrLabel parses a numeric literal or, failing that, accepts
// any identifier as a deferred label reference.
func parseImmediateOrLabel(tok string) (operandValue, error) {
	if v, ok := parseIntLiteral(tok); ok {
		return operandValue{Literal: int32(v)}, nil
	}
	if isIdentifier(tok) {
		return operandValue{IsLabel: true, Label: tok}, nil
	}
	return operandValue{}, &operandErr{kind: ErrSyntax, msg: "cannot parse immediate or label: " + tok}
}

// parseMemoryOperand parses the canonical `offset(register)` form.
func parseMemoryOperand(tok string) (offset operandValue, reg uint32, err error) {
	m := memOperandRe.FindStringSubmatch(tok)
	if m == nil {
		return operandValue{}, 0, &operandErr{kind: ErrSyntax, msg: "malformed memory operand: " + tok}
	}
	offset, err = parseImmediateOrLabel(m[1])
	if err != nil {
		return operandValue{}, 0, err
	}
	reg, err = parseRegister(m[2])
	if err != nil {
		return operandValue{}, 0, err
	}
	return offset, reg, nil
}

// operandErr is a lightweight internal error used by the operand parsers;
// toAssemblyError attaches source position before it is surfaced.
type operandErr struct {
	kind ErrorKind
	msg  string
}

func (e *operandErr) Error() string { return e.msg }

func toAssemblyError(pos Position, raw string, err error) *Error {
	if ae, ok := err.(*Error); ok {
		return ae
	}
	if oe, ok := err.(*operandErr); ok {
		return &Error{Pos: pos, Message: oe.msg, Context: raw, Kind: oe.kind}
	}
	return &Error{Pos: pos, Message: err.Error(), Context: raw, Kind: ErrSyntax}
}
