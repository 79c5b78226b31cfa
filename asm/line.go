package asm

import "github.com/rlawton/asm16/isa"

// LineKind classifies a parsed line, per spec.md section 3.
type LineKind int

const (
	Empty LineKind = iota
	Comment
	ConstantDef
	DirectiveData
	DirectiveString
	DirectiveEntry
	DirectiveExtern
	Command
	Invalid
)

// DataValue is one comma-separated value of a .data directive: either
// a literal integer or the name of a previously defined constant.
type DataValue struct {
	Constant string
	Value    int
}

// LineDescriptor is the structured, per-line intermediate
// representation built by the line parser and consumed by both
// assembler passes (spec.md section 3).
type LineDescriptor struct {
	Raw   string
	Line  int
	Label string // "" if the line declares no label

	Kind LineKind

	// ConstantDef
	ConstName  string
	ConstValue int

	// DirectiveData
	DataValues []DataValue

	// DirectiveString
	StringValue string

	// DirectiveEntry / DirectiveExtern
	TargetName string

	// Command
	Opcode isa.Opcode
	Source *Operand
	Target *Operand

	// Invalid
	Err Diagnostic

	// Warning holds a non-fatal diagnostic attached to an otherwise
	// valid line, such as a label discarded on .entry/.extern.
	Warning *Diagnostic
}
