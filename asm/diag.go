package asm

import "fmt"

// Phase identifies which stage of the pipeline raised a Diagnostic,
// for the "tagged with phase, file name, and (where applicable) line
// number" policy of spec.md section 7.
type Phase string

const (
	PhasePreprocess Phase = "preprocess"
	PhaseParse      Phase = "parse"
	PhaseFirstPass  Phase = "first-pass"
	PhaseSecondPass Phase = "second-pass"
)

// Code is one of the named error codes from spec.md section 7's
// taxonomy.
type Code string

const (
	CodeInvalidMacroName     Code = "InvalidMacroName"
	CodeSyntaxError          Code = "SyntaxError"
	CodeReservedWordAsSymbol Code = "ReservedWordAsSymbol"
	CodeSymbolTooLong        Code = "SymbolTooLong"
	CodeIllegalConstantValue Code = "IllegalConstantValue"
	CodeMissingAssignment    Code = "MissingAssignment"
	CodeMissingOperand       Code = "MissingOperand"
	CodeMissingComma         Code = "MissingComma"
	CodeRedundantCharacters  Code = "RedundantCharacters"
	CodeUnterminatedString   Code = "UnterminatedString"
	CodeSymbolRedefinition   Code = "SymbolRedefinition"
	CodeIllegalAddressing    Code = "IllegalAddressing"
	CodeUndefinedEntry       Code = "UndefinedEntry"
	CodeUndefinedSymbol      Code = "UndefinedSymbol"
	CodeEntryIsExternConflict Code = "EntryIsExternConflict"
	CodeDiscardedLabel       Code = "DiscardedLabel"
)

// Pos locates a diagnostic within a source file. Column is 0-based
// internally and rendered 1-based, matching the teacher's fstring
// convention in asm/fstring.go.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column+1)
}

// Diagnostic is one reported fault. Diagnostics accumulate in a
// per-file list rather than aborting the pass that found them, so a
// single run surfaces every fault in a file (spec.md section 7).
// Warning marks a diagnostic that does not by itself fail assembly,
// such as a label discarded on a .entry/.extern line.
type Diagnostic struct {
	Pos     Pos
	Phase   Phase
	Code    Code
	Message string
	Warning bool
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s [%s] %s", d.Pos, d.Phase, d.Code, d.Message)
	if d.Warning {
		s += " (warning)"
	}
	return s
}
