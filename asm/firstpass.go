package asm

import (
	"fmt"

	"github.com/rlawton/asm16/isa"
)

const icBase = 100

// FirstPass drives spec.md section 4.3: it walks the parsed lines of
// one file once, building the symbol table, sizing every command,
// accumulating the data image, and deferring entry resolution to the
// table's Finalize step. The returned Unit's command slice is the
// read-only input to SecondPass.
func FirstPass(file string, lines []*LineDescriptor, registry *isa.Registry) (*Unit, []Diagnostic) {
	u := &Unit{File: file, Symbols: NewSymbolTable(registry)}
	var diags []Diagnostic

	icAddr := icBase
	dc := 0
	var dataImage []isa.Word

	report := func(line int, phase Phase, code Code, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Pos:     Pos{File: file, Line: line},
			Phase:   phase,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	declareLabel := func(ld *LineDescriptor, kind Kind, addr int) {
		if ld.Label == "" {
			return
		}
		_, res := u.Symbols.Declare(ld.Label, kind, addr)
		switch res {
		case Redefined:
			report(ld.Line, PhaseFirstPass, CodeSymbolRedefinition, "symbol '%s' is already defined", ld.Label)
		case ReservedConflict:
			report(ld.Line, PhaseFirstPass, CodeReservedWordAsSymbol, "'%s' collides with a reserved name", ld.Label)
		}
	}

	resolveConstant := func(ld *LineDescriptor, name string) (int, bool) {
		sym, ok := u.Symbols.Lookup(name)
		if !ok || sym.Kind != DefinedConstant {
			report(ld.Line, PhaseFirstPass, CodeUndefinedSymbol, "'%s' is not a defined constant", name)
			return 0, false
		}
		return sym.Address, true
	}

	for _, ld := range lines {
		switch ld.Kind {
		case Invalid:
			diags = append(diags, withFile(ld.Err, file))

		case Empty, Comment:
			// nothing to do

		case ConstantDef:
			_, res := u.Symbols.Declare(ld.ConstName, DefinedConstant, ld.ConstValue)
			switch res {
			case Redefined:
				report(ld.Line, PhaseFirstPass, CodeSymbolRedefinition, "constant '%s' is already defined", ld.ConstName)
			case ReservedConflict:
				report(ld.Line, PhaseFirstPass, CodeReservedWordAsSymbol, "'%s' collides with a reserved name", ld.ConstName)
			}

		case DirectiveData:
			declareLabel(ld, DataLabel, dc)
			for _, dv := range ld.DataValues {
				v := dv.Value
				if dv.Constant != "" {
					cv, ok := resolveConstant(ld, dv.Constant)
					if !ok {
						continue
					}
					v = cv
				}
				dataImage = append(dataImage, isa.Word(v)&isa.WordMask)
			}
			dc += len(ld.DataValues)

		case DirectiveString:
			declareLabel(ld, DataLabel, dc)
			for i := 0; i < len(ld.StringValue); i++ {
				dataImage = append(dataImage, isa.Word(ld.StringValue[i]))
			}
			dataImage = append(dataImage, 0)
			dc += len(ld.StringValue) + 1

		case DirectiveEntry:
			if _, res := u.Symbols.DeclareEntry(ld.TargetName); res == EntryExternConflict {
				report(ld.Line, PhaseSecondPass, CodeEntryIsExternConflict,
					"'%s' is declared both .entry and .extern", ld.TargetName)
			}
			if ld.Warning != nil {
				u.Warnings = append(u.Warnings, withFile(*ld.Warning, file))
			}

		case DirectiveExtern:
			_, res := u.Symbols.DeclareExtern(ld.TargetName)
			switch res {
			case EntryExternConflict:
				report(ld.Line, PhaseSecondPass, CodeEntryIsExternConflict,
					"'%s' is declared both .entry and .extern", ld.TargetName)
			case Redefined:
				report(ld.Line, PhaseFirstPass, CodeSymbolRedefinition, "'%s' is already defined", ld.TargetName)
			}
			if ld.Warning != nil {
				u.Warnings = append(u.Warnings, withFile(*ld.Warning, file))
			}

		case Command:
			declareLabel(ld, CodeLabel, icAddr)

			var hasSource, hasTarget bool
			var sourceMode, targetMode isa.Mode
			if ld.Source != nil {
				hasSource, sourceMode = true, ld.Source.Kind
			}
			if ld.Target != nil {
				hasTarget, targetMode = true, ld.Target.Kind
			}
			icAddr += isa.WordSize(hasSource, hasTarget, sourceMode, targetMode)
			u.commands = append(u.commands, ld)
		}
	}

	entries, finDiags := u.Symbols.Finalize(file, icAddr)
	diags = append(diags, finDiags...)

	u.Entries = entries
	u.DataImage = dataImage
	u.IC = icAddr - icBase
	u.DC = dc
	return u, diags
}

func withFile(d Diagnostic, file string) Diagnostic {
	d.Pos.File = file
	return d
}
