package loader

import (
	"testing"

	"github.com/rv32core/rv32isim/vm"
)

func TestLoadSourceRunsToHalt(t *testing.T) {
	machine := vm.NewVM(vm.DefaultMemorySize, 1000)
	src := `
	addi x1, x0, 5
	addi x2, x0, 10
	add  x3, x1, x2
`
	if err := LoadSource(machine, src, 0); err != nil {
		t.Fatalf("LoadSource failed: %v", err)
	}
	if err := machine.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := machine.CPU.ReadRegister(3); got != 15 {
		t.Fatalf("x3 = %d, want 15", got)
	}
}

func TestLoadSourcePropagatesAssemblyErrors(t *testing.T) {
	machine := vm.NewVM(vm.DefaultMemorySize, 1000)
	err := LoadSource(machine, `bogus_mnemonic x1, x2, x3`, 0)
	if err == nil {
		t.Fatal("expected an assembly error")
	}
}

func TestLoadFileMissingPath(t *testing.T) {
	machine := vm.NewVM(vm.DefaultMemorySize, 1000)
	if err := LoadFile(machine, "/nonexistent/path/program.s", 0); err == nil {
		t.Fatal("expected a file read error")
	}
}
