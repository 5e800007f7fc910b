package asm

import (
	"regexp"
	"strings"
)

var (
	labelRe      = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):\s*(.*)$`)
	identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// line is one tokenized source line: an optional label, an optional
// mnemonic/directive with its operands, and the original text for error
// context.
type line struct {
	Pos           Position
	Label         string
	Mnemonic      string   // real or pseudo mnemonic; empty if directive-only or blank
	Operands      []string
	IsDirective   bool
	DirectiveName string
	Raw           string
}

// tokenize splits raw source text into one line record per input line.
// Comments are stripped; blank lines yield an empty record, and label-only
// lines still carry their label so it gets recorded against the current
// address.
func tokenize(source string) []line {
	var out []line
	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		text := stripComment(raw)
		text = strings.TrimSpace(text)

		l := line{Pos: Position{Line: lineNo}, Raw: strings.TrimRight(raw, "\r")}

		if m := labelRe.FindStringSubmatch(text); m != nil {
			l.Label = m[1]
			text = strings.TrimSpace(m[2])
		}

		if text == "" {
			out = append(out, l)
			continue
		}

		fields := splitOperandFields(text)
		head := fields[0]
		rest := fields[1:]

		if strings.HasPrefix(head, ".") {
			l.IsDirective = true
			l.DirectiveName = strings.ToLower(head)
			l.Operands = rest
		} else {
			l.Mnemonic = strings.ToLower(head)
			l.Operands = rest
		}

		out = append(out, l)
	}
	return out
}

// stripComment removes a trailing `# ...` comment.
func stripComment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// splitOperandFields splits "mnemonic op1, op2, op3" into
// ["mnemonic", "op1", "op2", "op3"], treating commas and whitespace as
// equivalent separators and preserving the offset(register) memory-operand
// form as a single token.
func splitOperandFields(text string) []string {
	replaced := strings.ReplaceAll(text, ",", " ")
	return strings.Fields(replaced)
}

func isIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}
