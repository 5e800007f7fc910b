// Package isa holds the static, read-only catalog shared by the assembler
// and the execution engine: the RV32I mnemonic table and the register alias
// table. Both are constructed once at startup and never mutated.
package isa

import "fmt"

// NumRegisters is the size of the RV32I integer register file.
const NumRegisters = 32

// registerAliases maps every register name to its index. The ABI aliases
// are listed literally; the numeric names x0..x31 are added in init from a
// simple loop rather than spelled out, since that mapping is purely
// mechanical.
var registerAliases = map[string]int{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

func init() {
	for i := 0; i < NumRegisters; i++ {
		registerAliases[fmt.Sprintf("x%d", i)] = i
	}
}

// RegisterIndex resolves a register name (numeric x0..x31 or ABI alias) to
// its index. The second return value is false when the name is not a known
// register.
func RegisterIndex(name string) (int, bool) {
	idx, ok := registerAliases[name]
	return idx, ok
}

// RegisterName returns the canonical xN name for a register index, used by
// the disassembler. Panics are never raised; an out-of-range index returns
// an empty string.
func RegisterName(index int) string {
	if index < 0 || index >= NumRegisters {
		return ""
	}
	return fmt.Sprintf("x%d", index)
}
