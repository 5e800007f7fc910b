// Package vm implements the RV32I architectural state and execution engine:
// a 32-entry register file, program counter, byte-addressable memory, and
// the fetch/decode/execute loop.
package vm

import "github.com/rv32core/rv32isim/isa"

// CPU is the register file and program counter. Register 0 always reads as
// 0 and discards writes; every other write is masked to 32 bits implicitly
// by the uint32 storage.
type CPU struct {
	Registers [isa.NumRegisters]uint32
	PC        uint32
}

// ReadRegister returns the value of register i, enforcing the x0-reads-zero
// invariant. i must already be known to be in range (the RV32I register
// field is always 5 bits, so any value decoded from an instruction word is
// in range by construction).
func (c *CPU) ReadRegister(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return c.Registers[i]
}

// WriteRegister stores v into register i, discarding writes to x0.
func (c *CPU) WriteRegister(i uint32, v uint32) {
	if i == 0 {
		return
	}
	c.Registers[i] = v
}

// GetRegister is the bounds-checked accessor for external callers (loaders,
// statistics, tests) that may pass an untrusted index.
func (c *CPU) GetRegister(i int) (uint32, error) {
	if i < 0 || i >= isa.NumRegisters {
		return 0, &RegisterFault{Index: i}
	}
	if i == 0 {
		return 0, nil
	}
	return c.Registers[i], nil
}

// SetRegister is the bounds-checked mutator for external callers.
func (c *CPU) SetRegister(i int, v uint32) error {
	if i < 0 || i >= isa.NumRegisters {
		return &RegisterFault{Index: i}
	}
	if i == 0 {
		return nil
	}
	c.Registers[i] = v
	return nil
}

// Reset zeroes every register and the program counter.
func (c *CPU) Reset() {
	for i := range c.Registers {
		c.Registers[i] = 0
	}
	c.PC = 0
}
