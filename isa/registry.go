package isa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// RegisterCount is the number of general-purpose registers, r0..r7.
const RegisterCount = 8

// LookupRegister parses "r0".."r7" and returns the register number.
func LookupRegister(s string) (int, bool) {
	if len(s) != 2 || s[0] != 'r' {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= RegisterCount {
		return 0, false
	}
	return n, true
}

// NameKind classifies why a name is already taken in the global name
// registry, for collision diagnostics.
type NameKind int

const (
	KindReservedWord NameKind = iota
	KindOpcode
	KindRegister
	KindDirective
	KindMacro
	KindSymbol
	KindConstant
)

func (k NameKind) String() string {
	switch k {
	case KindReservedWord:
		return "reserved word"
	case KindOpcode:
		return "opcode mnemonic"
	case KindRegister:
		return "register name"
	case KindDirective:
		return "directive"
	case KindMacro:
		return "macro name"
	case KindSymbol:
		return "symbol"
	case KindConstant:
		return "constant"
	default:
		return "name"
	}
}

// reservedWords are keywords with no other standing in the grammar
// (currently just the macro delimiters) that nonetheless may never be
// used as a symbol, macro, or constant name.
var reservedWords = []string{"mcr", "endmcr"}

// Directives are the four directive keywords plus ".define", which
// introduce directive and constant-definition lines (spec.md 4.2).
var Directives = []string{".data", ".string", ".entry", ".extern", ".define"}

// Registry is the single source of truth for "is this name already
// taken" across every namespace spec.md section 3 says shares one flat
// space: reserved words, opcodes, registers, directives, macros,
// symbols, and constants. It is backed by the same generic prefix tree
// the teacher uses to resolve abbreviated debugger commands
// (github.com/beevik/prefixtree/v2), repurposed here as an exact-name
// collision table rather than an abbreviation resolver.
type Registry struct {
	tree  *prefixtree.Tree[NameKind]
	names map[string]struct{}
}

// NewRegistry builds a registry pre-seeded with every reserved word,
// opcode mnemonic, register name, and directive keyword.
func NewRegistry() *Registry {
	r := &Registry{tree: prefixtree.New[NameKind](), names: make(map[string]struct{})}
	for _, w := range reservedWords {
		r.add(w, KindReservedWord)
	}
	for op := Opcode(0); op < opcodeCount; op++ {
		r.add(op.String(), KindOpcode)
	}
	for i := 0; i < RegisterCount; i++ {
		r.add(fmt.Sprintf("r%d", i), KindRegister)
	}
	for _, d := range Directives {
		r.add(strings.ToLower(d), KindDirective)
	}
	return r
}

// Lookup reports whether name is already registered and, if so, under
// which kind. The tree resolves a unique prefix as well as an exact
// key, so an abbreviation of a longer registered name (e.g. "su" as a
// unique prefix of "sub") would otherwise be reported as a collision
// even though it was never itself Added. names guards against that: it
// only holds keys that were Added verbatim, so a lookup falls through
// to the tree only once the exact key is confirmed present.
func (r *Registry) Lookup(name string) (NameKind, bool) {
	if _, ok := r.names[name]; !ok {
		return 0, false
	}
	kind, err := r.tree.FindValue(name)
	if err != nil {
		return 0, false
	}
	return kind, true
}

// Declare registers name under kind. It is the caller's responsibility
// to have already checked Lookup; Declare does not itself guard against
// duplicate registration.
func (r *Registry) Declare(name string, kind NameKind) {
	r.add(name, kind)
}

func (r *Registry) add(name string, kind NameKind) {
	r.tree.Add(name, kind)
	r.names[name] = struct{}{}
}
