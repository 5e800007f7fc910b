package isa

// Format identifies one of the six fixed RV32I instruction encodings.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatU:
		return "U"
	case FormatJ:
		return "J"
	default:
		return "?"
	}
}

// Opcode values, the low 7 bits of every encoded word.
const (
	OpcodeRType  uint32 = 0b0110011
	OpcodeIType  uint32 = 0b0010011
	OpcodeLoad   uint32 = 0b0000011
	OpcodeStore  uint32 = 0b0100011
	OpcodeBranch uint32 = 0b1100011
	OpcodeJAL    uint32 = 0b1101111
	OpcodeJALR   uint32 = 0b1100111
	OpcodeLUI    uint32 = 0b0110111
	OpcodeAUIPC  uint32 = 0b0010111
)

// funct7 discriminator for SUB/SRA within their shared opcode/funct3.
const (
	funct7Base = 0b0000000
	funct7Alt  = 0b0100000
)

// Descriptor is the immutable record describing one mnemonic: its format
// and the fixed bit-field values the encoder packs into the word.
type Descriptor struct {
	Mnemonic string
	Format   Format
	Opcode   uint32
	Funct3   uint32 // meaningless for U, J; ignored by the encoder there
	Funct7   uint32 // meaningful only for R-type and the shift-immediates
}

// instructions is the full RV32I base mnemonic table, covering exactly the
// ten R-type ALU ops, nine I-type ALU ops, five loads, three stores, six
// branches, two jumps, and two upper-immediate forms.
var instructions = map[string]Descriptor{
	// R-type ALU
	"add":  {"add", FormatR, OpcodeRType, 0b000, funct7Base},
	"sub":  {"sub", FormatR, OpcodeRType, 0b000, funct7Alt},
	"sll":  {"sll", FormatR, OpcodeRType, 0b001, funct7Base},
	"slt":  {"slt", FormatR, OpcodeRType, 0b010, funct7Base},
	"sltu": {"sltu", FormatR, OpcodeRType, 0b011, funct7Base},
	"xor":  {"xor", FormatR, OpcodeRType, 0b100, funct7Base},
	"srl":  {"srl", FormatR, OpcodeRType, 0b101, funct7Base},
	"sra":  {"sra", FormatR, OpcodeRType, 0b101, funct7Alt},
	"or":   {"or", FormatR, OpcodeRType, 0b110, funct7Base},
	"and":  {"and", FormatR, OpcodeRType, 0b111, funct7Base},

	// I-type ALU
	"addi":  {"addi", FormatI, OpcodeIType, 0b000, 0},
	"slti":  {"slti", FormatI, OpcodeIType, 0b010, 0},
	"sltiu": {"sltiu", FormatI, OpcodeIType, 0b011, 0},
	"xori":  {"xori", FormatI, OpcodeIType, 0b100, 0},
	"ori":   {"ori", FormatI, OpcodeIType, 0b110, 0},
	"andi":  {"andi", FormatI, OpcodeIType, 0b111, 0},
	"slli":  {"slli", FormatI, OpcodeIType, 0b001, funct7Base},
	"srli":  {"srli", FormatI, OpcodeIType, 0b101, funct7Base},
	"srai":  {"srai", FormatI, OpcodeIType, 0b101, funct7Alt},

	// Loads
	"lb":  {"lb", FormatI, OpcodeLoad, 0b000, 0},
	"lh":  {"lh", FormatI, OpcodeLoad, 0b001, 0},
	"lw":  {"lw", FormatI, OpcodeLoad, 0b010, 0},
	"lbu": {"lbu", FormatI, OpcodeLoad, 0b100, 0},
	"lhu": {"lhu", FormatI, OpcodeLoad, 0b101, 0},

	// Stores
	"sb": {"sb", FormatS, OpcodeStore, 0b000, 0},
	"sh": {"sh", FormatS, OpcodeStore, 0b001, 0},
	"sw": {"sw", FormatS, OpcodeStore, 0b010, 0},

	// Branches
	"beq":  {"beq", FormatB, OpcodeBranch, 0b000, 0},
	"bne":  {"bne", FormatB, OpcodeBranch, 0b001, 0},
	"blt":  {"blt", FormatB, OpcodeBranch, 0b100, 0},
	"bge":  {"bge", FormatB, OpcodeBranch, 0b101, 0},
	"bltu": {"bltu", FormatB, OpcodeBranch, 0b110, 0},
	"bgeu": {"bgeu", FormatB, OpcodeBranch, 0b111, 0},

	// Jumps
	"jal":  {"jal", FormatJ, OpcodeJAL, 0, 0},
	"jalr": {"jalr", FormatI, OpcodeJALR, 0b000, 0},

	// Upper immediate
	"lui":   {"lui", FormatU, OpcodeLUI, 0, 0},
	"auipc": {"auipc", FormatU, OpcodeAUIPC, 0, 0},
}

// Lookup returns the descriptor for a mnemonic (case-sensitive, lower-case
// as conventionally written in RV32I assembly).
func Lookup(mnemonic string) (Descriptor, bool) {
	d, ok := instructions[mnemonic]
	return d, ok
}

// OpcodeClass names the dispatch group an opcode belongs to, mirroring the
// engine's decode table.
func OpcodeClass(opcode uint32) (string, bool) {
	switch opcode {
	case OpcodeRType:
		return "R-ALU", true
	case OpcodeIType:
		return "I-ALU", true
	case OpcodeLoad:
		return "Load", true
	case OpcodeStore:
		return "Store", true
	case OpcodeBranch:
		return "Branch", true
	case OpcodeJAL:
		return "JAL", true
	case OpcodeJALR:
		return "JALR", true
	case OpcodeLUI:
		return "LUI", true
	case OpcodeAUIPC:
		return "AUIPC", true
	default:
		return "", false
	}
}

// MnemonicForOpcode finds a representative mnemonic matching an opcode,
// funct3 and funct7, used by the disassembler. The shift-immediate and
// R-type SUB/SRA funct7 discriminator is honored; all other I-type entries
// ignore funct7.
func MnemonicForOpcode(opcode, funct3, funct7 uint32) (string, bool) {
	for name, d := range instructions {
		if d.Opcode != opcode || d.Funct3 != funct3 {
			continue
		}
		switch opcode {
		case OpcodeRType:
			if d.Funct7 != funct7 {
				continue
			}
		case OpcodeIType:
			if funct3 == 0b001 || funct3 == 0b101 {
				if d.Funct7 != funct7 {
					continue
				}
			}
		}
		return name, true
	}
	return "", false
}
