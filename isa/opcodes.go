package isa

// Opcode identifies one of the sixteen instructions of the machine.
type Opcode int

const (
	Mov Opcode = iota
	Cmp
	Add
	Sub
	Not
	Clr
	Lea
	Inc
	Dec
	Jmp
	Bne
	Red
	Prn
	Jsr
	Rts
	Hlt
	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	Mov: "mov", Cmp: "cmp", Add: "add", Sub: "sub",
	Not: "not", Clr: "clr", Lea: "lea", Inc: "inc",
	Dec: "dec", Jmp: "jmp", Bne: "bne", Red: "red",
	Prn: "prn", Jsr: "jsr", Rts: "rts", Hlt: "hlt",
}

// String returns the opcode's mnemonic, as it appears in source.
func (op Opcode) String() string {
	if op < 0 || op >= opcodeCount {
		return "???"
	}
	return opcodeNames[op]
}

// info describes one opcode's shape: how many operands it takes and
// which addressing modes are legal in each position (spec.md 4.4).
type info struct {
	operands int
	source   ModeSet
	target   ModeSet
}

var opcodeInfo = map[Opcode]info{
	Mov: {2, NewModeSet(Immediate, Direct, FixedIndex, Register), NewModeSet(Direct, FixedIndex, Register)},
	Add: {2, NewModeSet(Immediate, Direct, FixedIndex, Register), NewModeSet(Direct, FixedIndex, Register)},
	Sub: {2, NewModeSet(Immediate, Direct, FixedIndex, Register), NewModeSet(Direct, FixedIndex, Register)},
	Cmp: {2, NewModeSet(Immediate, Direct, FixedIndex, Register), NewModeSet(Immediate, Direct, FixedIndex, Register)},
	Lea: {2, NewModeSet(Direct, FixedIndex), NewModeSet(Direct, FixedIndex, Register)},
	Not: {1, 0, NewModeSet(Direct, FixedIndex, Register)},
	Clr: {1, 0, NewModeSet(Direct, FixedIndex, Register)},
	Inc: {1, 0, NewModeSet(Direct, FixedIndex, Register)},
	Dec: {1, 0, NewModeSet(Direct, FixedIndex, Register)},
	Red: {1, 0, NewModeSet(Direct, FixedIndex, Register)},
	Jmp: {1, 0, NewModeSet(Direct, Register)},
	Bne: {1, 0, NewModeSet(Direct, Register)},
	Jsr: {1, 0, NewModeSet(Direct, Register)},
	Prn: {1, 0, NewModeSet(Immediate, Direct, FixedIndex, Register)},
	Rts: {0, 0, 0},
	Hlt: {0, 0, 0},
}

// OperandCount returns how many operands the opcode takes: 0, 1, or 2.
func (op Opcode) OperandCount() int {
	return opcodeInfo[op].operands
}

// LegalSourceModes returns the set of addressing modes legal for this
// opcode's source operand. Empty for opcodes with fewer than 2 operands.
func (op Opcode) LegalSourceModes() ModeSet {
	return opcodeInfo[op].source
}

// LegalTargetModes returns the set of addressing modes legal for this
// opcode's target (or sole) operand.
func (op Opcode) LegalTargetModes() ModeSet {
	return opcodeInfo[op].target
}

// OpcodeCount is the number of defined opcodes (16).
const OpcodeCount = int(opcodeCount)

// AllOpcodes returns every opcode in numeric order, 0..15.
func AllOpcodes() []Opcode {
	ops := make([]Opcode, opcodeCount)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

// LookupOpcode resolves a mnemonic (already lower-cased) to an Opcode.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	for op, name := range opcodeNames {
		if name == mnemonic {
			return Opcode(op), true
		}
	}
	return 0, false
}

// WordSize computes the number of 14-bit words a command of this opcode
// occupies given the addressing modes of its operands, per the command
// size rule of spec.md section 4.3:
//
//   - base 1 word (the opcode word)
//   - if both operands are Register, they share one extra word (2 total)
//   - otherwise each present operand contributes Immediate/Direct/Register->1,
//     FixedIndex->2
func WordSize(hasSource, hasTarget bool, source, target Mode) int {
	size := 1
	if hasSource && hasTarget && source == Register && target == Register {
		return size + 1
	}
	if hasSource {
		size += operandWordCount(source)
	}
	if hasTarget {
		size += operandWordCount(target)
	}
	return size
}

func operandWordCount(m Mode) int {
	if m == FixedIndex {
		return 2
	}
	return 1
}
