package preprocess

import (
	"strings"
	"testing"

	"github.com/rlawton/asm16/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expand(t *testing.T, src string) string {
	t.Helper()
	var out strings.Builder
	_, err := Expand(strings.NewReader(src), &out, isa.NewRegistry())
	require.NoError(t, err)
	return out.String()
}

func TestMacroExpansionSingleUse(t *testing.T) {
	src := "mcr CLEAR\nclr r1\nclr r2\nendmcr\nCLEAR\nhlt\n"
	got := expand(t, src)
	assert.Equal(t, "clr r1\nclr r2\nhlt\n", got)
}

func TestMacroExpansionMultipleUse(t *testing.T) {
	src := "mcr M\nadd #1, r1\nendmcr\nM\nM\nhlt\n"
	got := expand(t, src)
	assert.Equal(t, "add #1, r1\nadd #1, r1\nhlt\n", got)
}

func TestMcrEndmcrLinesNeverEmitted(t *testing.T) {
	src := "mcr M\nhlt\nendmcr\n"
	got := expand(t, src)
	assert.Equal(t, "", got)
}

func TestInvalidMacroNameCollidesWithOpcode(t *testing.T) {
	_, err := Expand(strings.NewReader("mcr mov\nhlt\nendmcr\n"), &strings.Builder{}, isa.NewRegistry())
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "InvalidMacroName", perr.Code)
}

func TestInvalidMacroNameCollidesWithRegister(t *testing.T) {
	_, err := Expand(strings.NewReader("mcr r3\nhlt\nendmcr\n"), &strings.Builder{}, isa.NewRegistry())
	require.Error(t, err)
}

func TestDuplicateMacroDefinition(t *testing.T) {
	src := "mcr M\nhlt\nendmcr\nmcr M\nrts\nendmcr\n"
	_, err := Expand(strings.NewReader(src), &strings.Builder{}, isa.NewRegistry())
	require.Error(t, err)
}

func TestIdempotentOnPlainText(t *testing.T) {
	src := "MAIN: mov #1, r1\nhlt\n"
	got := expand(t, src)
	assert.Equal(t, src, got)

	again := expand(t, got)
	assert.Equal(t, got, again)
}
