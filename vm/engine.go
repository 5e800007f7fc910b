package vm

import (
	"fmt"

	"github.com/rv32core/rv32isim/encoder"
	"github.com/rv32core/rv32isim/isa"
)

// VM is the execution engine: architectural state plus the counters the
// statistics report is built from. The instruction-descriptor table it
// consults (isa.Lookup et al.) is read-only and shared across every VM
// instance.
type VM struct {
	CPU    CPU
	Memory *Memory

	MaxCycles uint64
	Cycles    uint64
	Retired   uint64
	Branches  uint64
	Taken     uint64

	Halted   bool
	Warnings []string
}

// NewVM allocates a VM with the given memory size and cycle budget.
func NewVM(memorySize uint32, maxCycles uint64) *VM {
	if memorySize == 0 {
		memorySize = DefaultMemorySize
	}
	return &VM{
		Memory:    NewMemory(memorySize),
		MaxCycles: maxCycles,
	}
}

// Reset clears registers, PC, memory, and every counter.
func (v *VM) Reset() {
	v.CPU.Reset()
	v.Memory.Reset()
	v.Cycles = 0
	v.Retired = 0
	v.Branches = 0
	v.Taken = 0
	v.Halted = false
	v.Warnings = nil
}

// LoadProgram writes each word little-endian starting at base and sets PC
// to base.
func (v *VM) LoadProgram(words []uint32, base uint32) error {
	for i, w := range words {
		addr := base + uint32(i)*4
		if err := v.Memory.WriteWord(addr, w); err != nil {
			return err
		}
	}
	v.CPU.PC = base
	return nil
}

// Run executes instructions until halt, fault, or the cycle limit, per the
// run-loop semantics: fetch, execute, increment retired and cycle counts by
// one per iteration.
func (v *VM) Run() error {
	for !v.Halted && v.Cycles < v.MaxCycles {
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one fetch/decode/execute cycle. It is a no-op,
// returning nil immediately, once the engine has halted.
func (v *VM) Step() error {
	if v.Halted {
		return nil
	}

	pc := v.CPU.PC
	word, err := v.Memory.ReadWord(pc)
	if err != nil {
		return newExecutionFault(pc, "instruction fetch failed", err)
	}

	if word == 0x00000000 {
		v.Halted = true
		return nil
	}

	d := encoder.Decode(word)

	if err := v.execute(d); err != nil {
		return newExecutionFault(pc, "execution failed", err)
	}

	v.Cycles++
	v.Retired++
	return nil
}

func (v *VM) execute(d encoder.Decoded) error {
	switch d.Opcode {
	case isa.OpcodeRType:
		return v.executeRType(d)
	case isa.OpcodeIType:
		return v.executeIType(d)
	case isa.OpcodeLoad:
		return v.executeLoad(d)
	case isa.OpcodeStore:
		return v.executeStore(d)
	case isa.OpcodeBranch:
		return v.executeBranch(d)
	case isa.OpcodeJAL:
		return v.executeJAL(d)
	case isa.OpcodeJALR:
		return v.executeJALR(d)
	case isa.OpcodeLUI:
		return v.executeLUI(d)
	case isa.OpcodeAUIPC:
		return v.executeAUIPC(d)
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized opcode 0x%02X, skipping", v.CPU.PC, d.Opcode))
		v.CPU.PC += 4
		return nil
	}
}

func (v *VM) executeRType(d encoder.Decoded) error {
	rs1 := v.CPU.ReadRegister(d.RS1)
	rs2 := v.CPU.ReadRegister(d.RS2)
	var result uint32

	switch {
	case d.Funct3 == 0b000 && d.Funct7 == 0b0000000: // ADD
		result = rs1 + rs2
	case d.Funct3 == 0b000 && d.Funct7 == 0b0100000: // SUB
		result = rs1 - rs2
	case d.Funct3 == 0b001: // SLL
		result = rs1 << (rs2 & 0x1F)
	case d.Funct3 == 0b010: // SLT
		if int32(rs1) < int32(rs2) {
			result = 1
		}
	case d.Funct3 == 0b011: // SLTU
		if rs1 < rs2 {
			result = 1
		}
	case d.Funct3 == 0b100: // XOR
		result = rs1 ^ rs2
	case d.Funct3 == 0b101 && d.Funct7 == 0b0000000: // SRL
		result = rs1 >> (rs2 & 0x1F)
	case d.Funct3 == 0b101 && d.Funct7 == 0b0100000: // SRA
		result = uint32(int32(rs1) >> (rs2 & 0x1F))
	case d.Funct3 == 0b110: // OR
		result = rs1 | rs2
	case d.Funct3 == 0b111: // AND
		result = rs1 & rs2
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized R-type funct3/funct7 %03b/%07b", v.CPU.PC, d.Funct3, d.Funct7))
	}

	v.CPU.WriteRegister(d.RD, result)
	v.CPU.PC += 4
	return nil
}

func (v *VM) executeIType(d encoder.Decoded) error {
	rs1 := v.CPU.ReadRegister(d.RS1)
	var result uint32

	switch d.Funct3 {
	case 0b000: // ADDI
		result = uint32(int32(rs1) + d.ImmI)
	case 0b010: // SLTI
		if int32(rs1) < d.ImmI {
			result = 1
		}
	case 0b011: // SLTIU
		if rs1 < uint32(d.ImmI) {
			result = 1
		}
	case 0b100: // XORI
		result = rs1 ^ uint32(d.ImmI)
	case 0b110: // ORI
		result = rs1 | uint32(d.ImmI)
	case 0b111: // ANDI
		result = rs1 & uint32(d.ImmI)
	case 0b001: // SLLI
		result = rs1 << d.Shamt
	case 0b101: // SRLI / SRAI
		if d.Funct7 == 0b0100000 {
			result = uint32(int32(rs1) >> d.Shamt)
		} else {
			result = rs1 >> d.Shamt
		}
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized I-type funct3 %03b", v.CPU.PC, d.Funct3))
	}

	v.CPU.WriteRegister(d.RD, result)
	v.CPU.PC += 4
	return nil
}

func (v *VM) executeLoad(d encoder.Decoded) error {
	addr := uint32(int32(v.CPU.ReadRegister(d.RS1)) + d.ImmI)

	var result uint32
	switch d.Funct3 {
	case 0b000: // LB
		b, err := v.Memory.ReadByte(addr)
		if err != nil {
			return err
		}
		result = uint32(int32(int8(b)))
	case 0b001: // LH
		h, err := v.Memory.ReadHalfword(addr)
		if err != nil {
			return err
		}
		result = uint32(int32(int16(h)))
	case 0b010: // LW
		w, err := v.Memory.ReadWord(addr)
		if err != nil {
			return err
		}
		result = w
	case 0b100: // LBU
		b, err := v.Memory.ReadByte(addr)
		if err != nil {
			return err
		}
		result = b
	case 0b101: // LHU
		h, err := v.Memory.ReadHalfword(addr)
		if err != nil {
			return err
		}
		result = h
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized load funct3 %03b", v.CPU.PC, d.Funct3))
	}

	v.CPU.WriteRegister(d.RD, result)
	v.CPU.PC += 4
	return nil
}

func (v *VM) executeStore(d encoder.Decoded) error {
	addr := uint32(int32(v.CPU.ReadRegister(d.RS1)) + d.ImmS)
	value := v.CPU.ReadRegister(d.RS2)

	var err error
	switch d.Funct3 {
	case 0b000: // SB
		err = v.Memory.WriteByte(addr, value)
	case 0b001: // SH
		err = v.Memory.WriteHalfword(addr, value)
	case 0b010: // SW
		err = v.Memory.WriteWord(addr, value)
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized store funct3 %03b", v.CPU.PC, d.Funct3))
	}
	if err != nil {
		return err
	}

	v.CPU.PC += 4
	return nil
}

func (v *VM) executeBranch(d encoder.Decoded) error {
	rs1 := v.CPU.ReadRegister(d.RS1)
	rs2 := v.CPU.ReadRegister(d.RS2)

	var taken bool
	switch d.Funct3 {
	case 0b000: // BEQ
		taken = rs1 == rs2
	case 0b001: // BNE
		taken = rs1 != rs2
	case 0b100: // BLT
		taken = int32(rs1) < int32(rs2)
	case 0b101: // BGE
		taken = int32(rs1) >= int32(rs2)
	case 0b110: // BLTU
		taken = rs1 < rs2
	case 0b111: // BGEU
		taken = rs1 >= rs2
	default:
		v.Warnings = append(v.Warnings, fmt.Sprintf("PC:%08X: unrecognized branch funct3 %03b", v.CPU.PC, d.Funct3))
	}

	v.Branches++
	if taken {
		v.Taken++
		v.CPU.PC = uint32(int32(v.CPU.PC) + d.ImmB)
	} else {
		v.CPU.PC += 4
	}
	return nil
}

func (v *VM) executeJAL(d encoder.Decoded) error {
	v.CPU.WriteRegister(d.RD, v.CPU.PC+4)
	v.CPU.PC = uint32(int32(v.CPU.PC) + d.ImmJ)
	return nil
}

func (v *VM) executeJALR(d encoder.Decoded) error {
	rs1 := v.CPU.ReadRegister(d.RS1)
	target := uint32(int32(rs1)+d.ImmI) &^ 0x1
	v.CPU.WriteRegister(d.RD, v.CPU.PC+4)
	v.CPU.PC = target
	return nil
}

func (v *VM) executeLUI(d encoder.Decoded) error {
	v.CPU.WriteRegister(d.RD, d.ImmU)
	v.CPU.PC += 4
	return nil
}

func (v *VM) executeAUIPC(d encoder.Decoded) error {
	v.CPU.WriteRegister(d.RD, v.CPU.PC+d.ImmU)
	v.CPU.PC += 4
	return nil
}
