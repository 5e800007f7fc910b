// Package loader bridges the assembler and the execution engine: it
// assembles source text and loads the resulting words directly into a VM.
package loader

import (
	"fmt"
	"os"

	"github.com/rv32core/rv32isim/asm"
	"github.com/rv32core/rv32isim/vm"
)

// LoadFile reads the assembly source at path, assembles it, and loads the
// resulting program into machine at the given base address.
func LoadFile(machine *vm.VM, path string, base uint32) error {
	src, err := os.ReadFile(path) // #nosec G304 -- user-specified input file
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return LoadSource(machine, string(src), base)
}

// LoadSource assembles source text and loads the result into machine at the
// given base address. On an assembly failure, the VM is left untouched.
func LoadSource(machine *vm.VM, source string, base uint32) error {
	words, errs := asm.Assemble(source)
	if errs.HasErrors() {
		return fmt.Errorf("assembly failed:\n%s", errs.Error())
	}
	return machine.LoadProgram(words, base)
}
