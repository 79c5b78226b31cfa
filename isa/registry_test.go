package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrySeeded(t *testing.T) {
	r := NewRegistry()

	kind, ok := r.Lookup("mov")
	assert.True(t, ok)
	assert.Equal(t, KindOpcode, kind)

	kind, ok = r.Lookup("r3")
	assert.True(t, ok)
	assert.Equal(t, KindRegister, kind)

	kind, ok = r.Lookup(".entry")
	assert.True(t, ok)
	assert.Equal(t, KindDirective, kind)

	_, ok = r.Lookup("freshname")
	assert.False(t, ok)
}

func TestRegistryLookupRequiresExactMatch(t *testing.T) {
	r := NewRegistry()

	// "su", "le", "in", and "mc" are each a unique prefix of a seeded
	// name ("sub", "lea", "inc", "mcr") but were never themselves
	// registered, so they must not collide.
	for _, name := range []string{"su", "le", "in", "mc"} {
		_, ok := r.Lookup(name)
		assert.False(t, ok, "unique prefix %q falsely reported as registered", name)
	}
}

func TestRegistryDeclareThenLookup(t *testing.T) {
	r := NewRegistry()
	r.Declare("MAIN", KindSymbol)

	kind, ok := r.Lookup("MAIN")
	assert.True(t, ok)
	assert.Equal(t, KindSymbol, kind)

	// Case-sensitive, per spec.md section 3.
	_, ok = r.Lookup("main")
	assert.False(t, ok)
}
