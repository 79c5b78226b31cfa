package asm

import "github.com/rlawton/asm16/isa"

// ExternalUse is one use-site of an externally-resolved symbol
// (spec.md section 3's external reference record).
type ExternalUse struct {
	Name    string
	Address int
}

// Unit is the translation unit of spec.md section 3: the per-file
// aggregate built across both passes and handed to the emitter
// exactly once.
type Unit struct {
	File string

	Symbols *SymbolTable

	CodeImage []isa.Word
	DataImage []isa.Word

	IC int // final instruction counter: number of words in CodeImage
	DC int // final data counter: number of words in DataImage

	Entries   []Symbol
	Externals []ExternalUse

	// Warnings holds non-fatal diagnostics collected by the first
	// pass, such as a label discarded on .entry/.extern.
	Warnings []Diagnostic

	// commands holds the subset of parsed lines that produce code,
	// in source order, retained for the second pass (spec.md section
	// 3's "line-descriptor vector... borrowed read-only by the
	// second pass").
	commands []*LineDescriptor
}
