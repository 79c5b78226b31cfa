package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeWordRoundTrip(t *testing.T) {
	tests := []struct {
		op            Opcode
		source, target Mode
		hasSource, hasTarget bool
	}{
		{Mov, Immediate, Register, true, true},
		{Cmp, Register, Immediate, true, true},
		{Jmp, 0, Direct, false, true},
		{Rts, 0, 0, false, false},
	}
	for _, tt := range tests {
		w := EncodeOpcodeWord(tt.op, tt.source, tt.target, tt.hasSource, tt.hasTarget)
		op, source, target, are := DecodeOpcodeWord(w)
		assert.Equal(t, tt.op, op)
		assert.Equal(t, Absolute, are)
		if tt.hasSource {
			assert.Equal(t, tt.source, source)
		}
		if tt.hasTarget {
			assert.Equal(t, tt.target, target)
		}
	}
}

func TestRegisterPairWordRoundTrip(t *testing.T) {
	w := EncodeRegisterPairWord(3, 5)
	source, target := DecodeRegisterPairWord(w)
	assert.Equal(t, 3, source)
	assert.Equal(t, 5, target)
	_, are := DecodeAddressWord(w)
	assert.Equal(t, Absolute, are)
}

func TestImmediateWordRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, -1, 2047, -2048} {
		w := EncodeImmediateWord(v)
		assert.Equal(t, v, DecodeImmediateWord(w))
	}
}

func TestAddressWordRoundTrip(t *testing.T) {
	w := EncodeAddressWord(257, Relocatable)
	addr, are := DecodeAddressWord(w)
	assert.Equal(t, 257, addr)
	assert.Equal(t, Relocatable, are)

	w = EncodeAddressWord(0, External)
	addr, are = DecodeAddressWord(w)
	assert.Equal(t, 0, addr)
	assert.Equal(t, External, are)
}

func TestWordFitsFourteenBits(t *testing.T) {
	w := EncodeAddressWord(0xFFFF, Relocatable)
	assert.LessOrEqual(t, uint16(w), uint16(WordMask))
}
