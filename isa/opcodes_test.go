package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupOpcode(t *testing.T) {
	op, ok := LookupOpcode("mov")
	assert.True(t, ok)
	assert.Equal(t, Mov, op)

	_, ok = LookupOpcode("nope")
	assert.False(t, ok)
}

func TestOperandCounts(t *testing.T) {
	assert.Equal(t, 2, Mov.OperandCount())
	assert.Equal(t, 2, Lea.OperandCount())
	assert.Equal(t, 1, Jmp.OperandCount())
	assert.Equal(t, 0, Rts.OperandCount())
	assert.Equal(t, 0, Hlt.OperandCount())
}

func TestLegalModesTable(t *testing.T) {
	assert.True(t, Mov.LegalSourceModes().Allows(Immediate))
	assert.False(t, Mov.LegalTargetModes().Allows(Immediate))
	assert.True(t, Cmp.LegalTargetModes().Allows(Immediate))
	assert.True(t, Lea.LegalSourceModes().Allows(Direct))
	assert.False(t, Lea.LegalSourceModes().Allows(Immediate))
	assert.True(t, Jmp.LegalTargetModes().Allows(Register))
	assert.False(t, Jmp.LegalTargetModes().Allows(Immediate))
	assert.True(t, Rts.LegalTargetModes().IsEmpty())
}

func TestWordSize(t *testing.T) {
	assert.Equal(t, 2, WordSize(true, true, Register, Register), "mov r1, r2")
	assert.Equal(t, 3, WordSize(true, true, Register, Direct), "mov r1, X")
	assert.Equal(t, 2, WordSize(false, true, 0, Immediate), "prn #5")
	assert.Equal(t, 3, WordSize(false, true, 0, FixedIndex), "dec arr[2]")
	assert.Equal(t, 1, WordSize(false, false, 0, 0), "rts")
}

func TestLookupRegister(t *testing.T) {
	n, ok := LookupRegister("r7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = LookupRegister("r8")
	assert.False(t, ok)

	_, ok = LookupRegister("x1")
	assert.False(t, ok)
}
