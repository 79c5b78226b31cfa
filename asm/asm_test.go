package asm

import (
	"strings"
	"testing"

	"github.com/rlawton/asm16/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, src string) *Result {
	t.Helper()
	return Assemble("t.as", strings.NewReader(src))
}

func TestImmediateConstantAndHalt(t *testing.T) {
	src := ".define sz = 2\nMAIN: mov #sz, r1\nhlt\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)

	assert.Equal(t, 4, r.Unit.IC)
	assert.Equal(t, 0, r.Unit.DC)

	sym, ok := r.Unit.Symbols.Lookup("MAIN")
	require.True(t, ok)
	assert.Equal(t, CodeLabel, sym.Kind)
	assert.Equal(t, 100, sym.Address)

	sz, ok := r.Unit.Symbols.Lookup("sz")
	require.True(t, ok)
	assert.Equal(t, DefinedConstant, sz.Kind)
	assert.Equal(t, 2, sz.Address)

	require.Len(t, r.Unit.CodeImage, 4)
	v := isa.DecodeImmediateWord(r.Unit.CodeImage[1])
	assert.Equal(t, 2, v)
	_, are := isa.DecodeAddressWord(r.Unit.CodeImage[1])
	assert.Equal(t, isa.Absolute, are)
}

func TestEntryBeforeDefinition(t *testing.T) {
	src := ".entry HELLO\nHELLO: add #1, r1\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)

	sym, ok := r.Unit.Symbols.Lookup("HELLO")
	require.True(t, ok)
	assert.Equal(t, EntryCodeLabel, sym.Kind)
	assert.Equal(t, 100, sym.Address)

	require.Len(t, r.Unit.Entries, 1)
	assert.Equal(t, "HELLO", r.Unit.Entries[0].Name)
	assert.Equal(t, 100, r.Unit.Entries[0].Address)
}

func TestExternalReference(t *testing.T) {
	src := ".extern EXT\njmp EXT\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)

	require.Len(t, r.Unit.Externals, 1)
	assert.Equal(t, "EXT", r.Unit.Externals[0].Name)
	assert.Equal(t, 101, r.Unit.Externals[0].Address)

	addr, are := isa.DecodeAddressWord(r.Unit.CodeImage[1])
	assert.Equal(t, 0, addr)
	assert.Equal(t, isa.External, are)
}

func TestStringDirectiveDataImage(t *testing.T) {
	src := "STR: .string \"ab\"\ndec STR\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)

	require.Len(t, r.Unit.DataImage, 3)
	assert.Equal(t, isa.Word(97), r.Unit.DataImage[0])
	assert.Equal(t, isa.Word(98), r.Unit.DataImage[1])
	assert.Equal(t, isa.Word(0), r.Unit.DataImage[2])

	sym, ok := r.Unit.Symbols.Lookup("STR")
	require.True(t, ok)
	assert.Equal(t, 100+r.Unit.IC, sym.Address)
}

func TestDataDirectiveOnly(t *testing.T) {
	src := ".data 7, -57, +17, 9\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)

	assert.Equal(t, 0, r.Unit.IC)
	assert.Equal(t, 4, r.Unit.DC)
	require.Len(t, r.Unit.DataImage, 4)
	assert.Empty(t, r.Unit.CodeImage)
}

func TestDuplicateLabelRedefinition(t *testing.T) {
	src := "X: mov r1, r2\nX: add r1, r2\n"
	r := assemble(t, src)
	require.False(t, r.OK())
	require.Len(t, r.Diags, 1)
	assert.Equal(t, CodeSymbolRedefinition, r.Diags[0].Code)
	assert.Equal(t, 2, r.Diags[0].Pos.Line)
	assert.Nil(t, r.Unit)
}

func TestRegisterPairCommandIsTwoWords(t *testing.T) {
	r := assemble(t, "mov r1, r2\n")
	require.True(t, r.OK())
	assert.Len(t, r.Unit.CodeImage, 2)
}

func TestRegisterToLabelCommandIsThreeWords(t *testing.T) {
	r := assemble(t, "X: mov r1, X\n")
	require.True(t, r.OK())
	assert.Len(t, r.Unit.CodeImage, 3)
}

func TestSingleValueDataAccepted(t *testing.T) {
	r := assemble(t, ".data 5\n")
	require.True(t, r.OK())
	assert.Equal(t, 1, r.Unit.DC)
}

func TestEmptyDataRejected(t *testing.T) {
	r := assemble(t, ".data\n")
	require.False(t, r.OK())
}

func TestLabelExactly31CharsAccepted(t *testing.T) {
	name := strings.Repeat("a", 31)
	r := assemble(t, name+": hlt\n")
	require.True(t, r.OK(), "diags: %v", r.Diags)
}

func TestLabelOver31CharsRejected(t *testing.T) {
	name := strings.Repeat("a", 32)
	r := assemble(t, name+": hlt\n")
	require.False(t, r.OK())
	assert.Equal(t, CodeSymbolTooLong, r.Diags[0].Code)
}

func TestIllegalAddressingMode(t *testing.T) {
	r := assemble(t, "jmp #5\n")
	require.False(t, r.OK())
	assert.Equal(t, CodeIllegalAddressing, r.Diags[0].Code)
}

func TestUndefinedSymbolInSecondPass(t *testing.T) {
	r := assemble(t, "mov r1, NOPE\n")
	require.False(t, r.OK())
	assert.Equal(t, CodeUndefinedSymbol, r.Diags[0].Code)
}

func TestEntryExternConflict(t *testing.T) {
	r := assemble(t, ".entry X\n.extern X\nX: hlt\n")
	require.False(t, r.OK())
	assert.Equal(t, CodeEntryIsExternConflict, r.Diags[0].Code)
}

func TestEntryDiscardsLabelWithWarning(t *testing.T) {
	r := assemble(t, "SKIP: .entry HELLO\nHELLO: hlt\n")
	require.True(t, r.OK(), "diags: %v", r.Diags)

	_, ok := r.Unit.Symbols.Lookup("SKIP")
	assert.False(t, ok)

	require.Len(t, r.Unit.Warnings, 1)
	assert.Equal(t, CodeDiscardedLabel, r.Unit.Warnings[0].Code)
	assert.True(t, r.Unit.Warnings[0].Warning)
	assert.Equal(t, 1, r.Unit.Warnings[0].Pos.Line)
}

func TestMacroExpandedBeforeParsing(t *testing.T) {
	src := "mcr GREET\nclr r1\nendmcr\nGREET\nhlt\n"
	r := assemble(t, src)
	require.True(t, r.OK(), "diags: %v", r.Diags)
	assert.Len(t, r.Unit.CodeImage, 3)
}

func TestFixedIndexOperandTwoWords(t *testing.T) {
	r := assemble(t, "TBL: .data 1, 2, 3\nmov TBL[1], r1\n")
	require.True(t, r.OK(), "diags: %v", r.Diags)
	assert.Len(t, r.Unit.CodeImage, 4)
}

func TestOpcodeWordRoundTrip(t *testing.T) {
	r := assemble(t, "cmp #1, r2\n")
	require.True(t, r.OK(), "diags: %v", r.Diags)

	op, source, target, are := isa.DecodeOpcodeWord(r.Unit.CodeImage[0])
	assert.Equal(t, isa.Cmp, op)
	assert.Equal(t, isa.Immediate, source)
	assert.Equal(t, isa.Register, target)
	assert.Equal(t, isa.Absolute, are)
}
