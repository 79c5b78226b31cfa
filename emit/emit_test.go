package emit

import (
	"strings"
	"testing"

	"github.com/rlawton/asm16/asm"
	"github.com/rlawton/asm16/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWordWidthAndAlphabet(t *testing.T) {
	s := encodeWord(0)
	assert.Equal(t, "*******", s)

	s = encodeWord(isa.WordMask)
	assert.Equal(t, "!!!!!!!", s)
}

func TestWriteObjectHeaderAndBody(t *testing.T) {
	u := &asm.Unit{
		IC:        3,
		DC:        0,
		CodeImage: []isa.Word{1, 2, 3},
	}
	var out strings.Builder
	require.NoError(t, WriteObject(&out, u))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  3 0", lines[0])
	assert.Equal(t, "0100 "+encodeWord(1), lines[1])
	assert.Equal(t, "0101 "+encodeWord(2), lines[2])
	assert.Equal(t, "0102 "+encodeWord(3), lines[3])
}

func TestWriteEntriesFormat(t *testing.T) {
	u := &asm.Unit{Entries: []asm.Symbol{
		{Name: "HELLO", Address: 100},
	}}
	var out strings.Builder
	require.NoError(t, WriteEntries(&out, u))
	assert.Equal(t, "HELLO\t0100\n", out.String())
}

func TestWriteExternalsSortedByAddress(t *testing.T) {
	u := &asm.Unit{Externals: []asm.ExternalUse{
		{Name: "EXT", Address: 105},
		{Name: "EXT", Address: 101},
	}}
	var out strings.Builder
	require.NoError(t, WriteExternals(&out, u))
	assert.Equal(t, "EXT\t0101\nEXT\t0105\n", out.String())
}
