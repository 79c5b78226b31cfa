package asm

import (
	"sort"

	"github.com/rlawton/asm16/isa"
)

// Kind is one of the seven symbol-table entry kinds of spec.md
// section 3.
type Kind int

const (
	CodeLabel Kind = iota
	DataLabel
	EntryCodeLabel
	EntryDataLabel
	TempEntry
	External
	DefinedConstant
)

func (k Kind) String() string {
	switch k {
	case CodeLabel:
		return "code label"
	case DataLabel:
		return "data label"
	case EntryCodeLabel:
		return "entry code label"
	case EntryDataLabel:
		return "entry data label"
	case TempEntry:
		return "pending entry"
	case External:
		return "external"
	case DefinedConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Symbol is one entry of the symbol table. Address means a code
// offset, a data offset (pre-merge), a resolved address (post-merge),
// or a constant's numeric value, depending on Kind.
type Symbol struct {
	Name    string
	Kind    Kind
	Address int
}

// SymbolTable is the per-file, insertion-indexed symbol table of
// spec.md section 3. It shares its global-name registry with the
// macro preprocessor so that "no name appears more than once across
// {symbol table, constant list, macro table}" holds across both
// stages (spec.md section 8).
type SymbolTable struct {
	registry *isa.Registry
	byName   map[string]*Symbol
	order    []string
}

// NewSymbolTable creates an empty table backed by registry, which must
// already have been used (or will be used) to track macro names, so
// that collisions are caught regardless of which namespace declared
// first.
func NewSymbolTable(registry *isa.Registry) *SymbolTable {
	return &SymbolTable{
		registry: registry,
		byName:   make(map[string]*Symbol),
	}
}

// Lookup returns the named symbol, if any.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// insert adds a brand-new entry, recording it in both the local table
// and the shared name registry.
func (t *SymbolTable) insert(name string, kind Kind, address int) *Symbol {
	s := &Symbol{Name: name, Kind: kind, Address: address}
	t.byName[name] = s
	t.order = append(t.order, name)
	t.registry.Declare(name, isa.KindSymbol)
	return s
}

// DeclareResult reports what Declare did, so the first pass can decide
// whether to report SymbolRedefinition.
type DeclareResult int

const (
	Declared DeclareResult = iota
	Promoted
	Redefined
	ReservedConflict
	EntryExternConflict
)

// Declare implements the label/constant/entry/extern insertion rule of
// spec.md section 4.3 step 3: promote a matching TempEntry, reject a
// collision with any other existing kind, or insert fresh. A name
// already held by a reserved word, opcode, register, directive, or
// macro (checked through the shared registry) is rejected as a
// ReservedConflict before a fresh insertion is attempted.
func (t *SymbolTable) Declare(name string, kind Kind, address int) (*Symbol, DeclareResult) {
	if existing, ok := t.byName[name]; ok {
		if existing.Kind == TempEntry {
			switch kind {
			case CodeLabel:
				existing.Kind = EntryCodeLabel
			case DataLabel:
				existing.Kind = EntryDataLabel
			default:
				existing.Kind = kind
			}
			existing.Address = address
			return existing, Promoted
		}
		return existing, Redefined
	}
	if k, ok := t.registry.Lookup(name); ok && k != isa.KindSymbol {
		return nil, ReservedConflict
	}
	return t.insert(name, kind, address), Declared
}

// DeclareEntry implements the ".entry NAME" forward-declaration rule of
// spec.md section 4.3 step 3: create a pending TempEntry, promote an
// existing code/data label to its entry counterpart in place, or
// report a conflict against a name already declared External.
func (t *SymbolTable) DeclareEntry(name string) (Symbol, DeclareResult) {
	if existing, ok := t.byName[name]; ok {
		switch existing.Kind {
		case CodeLabel:
			existing.Kind = EntryCodeLabel
		case DataLabel:
			existing.Kind = EntryDataLabel
		case External:
			return *existing, EntryExternConflict
		}
		return *existing, Declared
	}
	if k, ok := t.registry.Lookup(name); ok && k != isa.KindSymbol {
		return Symbol{}, ReservedConflict
	}
	s := t.insert(name, TempEntry, 0)
	return *s, Declared
}

// DeclareExtern implements the ".extern NAME" rule of spec.md section
// 4.3 step 3: a name already pending or promoted as an entry is a
// conflict; a repeated .extern of the same name is idempotent.
func (t *SymbolTable) DeclareExtern(name string) (Symbol, DeclareResult) {
	if existing, ok := t.byName[name]; ok {
		switch existing.Kind {
		case TempEntry, EntryCodeLabel, EntryDataLabel:
			return *existing, EntryExternConflict
		case External:
			return *existing, Declared
		}
		return *existing, Redefined
	}
	if k, ok := t.registry.Lookup(name); ok && k != isa.KindSymbol {
		return Symbol{}, ReservedConflict
	}
	s := t.insert(name, External, 0)
	return *s, Declared
}

// Finalize applies the pass-boundary transformation of spec.md
// sections 4.3 and 9 ("Back-patching via in-place symbol mutation"):
// every DataLabel/EntryDataLabel address is shifted by the final IC so
// that code and data share one flat address space, and every
// remaining TempEntry is reported as an UndefinedEntry. It returns the
// sorted entry list described by the emitter interface (spec.md
// section 4.6).
func (t *SymbolTable) Finalize(file string, ic int) (entries []Symbol, diags []Diagnostic) {
	for _, name := range t.order {
		s := t.byName[name]
		switch s.Kind {
		case DataLabel, EntryDataLabel:
			s.Address += ic
		case TempEntry:
			diags = append(diags, Diagnostic{
				Pos:     Pos{File: file},
				Phase:   PhaseFirstPass,
				Code:    CodeUndefinedEntry,
				Message: "entry '" + name + "' is never defined",
			})
		}
	}

	for _, name := range t.order {
		s := t.byName[name]
		if s.Kind == EntryCodeLabel || s.Kind == EntryDataLabel {
			entries = append(entries, *s)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Address < entries[j].Address })
	return entries, diags
}
