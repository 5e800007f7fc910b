// Package asm is the two-pass RV32I assembler: tokenization, label
// resolution, pseudo-instruction expansion, and bit-exact encoding into
// machine words via the encoder package.
package asm

import (
	"fmt"
	"strings"
)

// Position locates a diagnostic within the source text.
type Position struct {
	Line   int
	Column int
}

// ErrorKind classifies an assembly diagnostic, per the error taxonomy.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnknownMnemonic
	ErrUnknownRegister
	ErrOperand
	ErrImmediateRange
	ErrUnresolvedLabel
	ErrDuplicateLabel
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnknownMnemonic:
		return "unknown mnemonic"
	case ErrUnknownRegister:
		return "unknown register"
	case ErrOperand:
		return "operand error"
	case ErrImmediateRange:
		return "immediate out of range"
	case ErrUnresolvedLabel:
		return "unresolved label"
	case ErrDuplicateLabel:
		return "duplicate label"
	default:
		return "error"
	}
}

// Error is a single assembly diagnostic tied to a source line.
type Error struct {
	Pos     Position
	Message string
	Context string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Message)
}

// Warning is a non-fatal diagnostic: assembly still succeeds, but the
// caller may want to surface it (unknown directives).
type Warning struct {
	Pos     Position
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Pos.Line, w.Message)
}

// ErrorList accumulates diagnostics across an entire translation. The
// assembler never emits partial machine code: every line is checked before
// any failure is reported, so the caller sees every problem at once.
type ErrorList struct {
	Errors   []*Error
	Warnings []Warning
}

func (l *ErrorList) AddError(e *Error) {
	l.Errors = append(l.Errors, e)
}

func (l *ErrorList) AddWarning(w Warning) {
	l.Warnings = append(l.Warnings, w)
}

func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

// Error renders every accumulated error, one per line, newline-separated.
func (l *ErrorList) Error() string {
	lines := make([]string, len(l.Errors))
	for i, e := range l.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// PrintWarnings renders every accumulated warning the same way.
func (l *ErrorList) PrintWarnings() string {
	lines := make([]string, len(l.Warnings))
	for i, w := range l.Warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
