package asm

import (
	"fmt"

	"github.com/rlawton/asm16/isa"
)

// SecondPass drives spec.md section 4.5: it walks the commands
// retained by FirstPass in source order, emitting one or more 14-bit
// words per command, resolving symbolic references through the
// already-finalized symbol table, and recording every external
// use-site.
func SecondPass(u *Unit) []Diagnostic {
	var diags []Diagnostic
	icAddr := icBase

	report := func(line int, code Code, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Pos:     Pos{File: u.File, Line: line},
			Phase:   PhaseSecondPass,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	emit := func(w isa.Word) {
		u.CodeImage = append(u.CodeImage, w)
		icAddr++
	}

	resolveValue := func(ld *LineDescriptor, literal int, constant string) (int, bool) {
		if constant == "" {
			return literal, true
		}
		sym, ok := u.Symbols.Lookup(constant)
		if !ok || sym.Kind != DefinedConstant {
			report(ld.Line, CodeUndefinedSymbol, "'%s' is not a defined constant", constant)
			return 0, false
		}
		return sym.Address, true
	}

	emitLabelWord := func(ld *LineDescriptor, label string) {
		sym, ok := u.Symbols.Lookup(label)
		switch {
		case !ok:
			report(ld.Line, CodeUndefinedSymbol, "'%s' is undefined", label)
			emit(isa.EncodeAddressWord(0, isa.Absolute))
		case sym.Kind == External:
			u.Externals = append(u.Externals, ExternalUse{Name: label, Address: icAddr})
			emit(isa.EncodeAddressWord(0, isa.External))
		default:
			emit(isa.EncodeAddressWord(sym.Address, isa.Relocatable))
		}
	}

	emitOperandWords := func(ld *LineDescriptor, op *Operand, isSource bool) {
		switch op.Kind {
		case isa.Immediate:
			v, ok := resolveValue(ld, op.ImmediateValue, op.ImmediateConstant)
			if !ok {
				v = 0
			}
			emit(isa.EncodeImmediateWord(v))

		case isa.Register:
			emit(isa.EncodeRegisterWord(op.Register, isSource))

		case isa.Direct:
			emitLabelWord(ld, op.Label)

		case isa.FixedIndex:
			emitLabelWord(ld, op.Label)
			v, ok := resolveValue(ld, op.IndexValue, op.IndexConstant)
			if !ok {
				v = 0
			}
			emit(isa.EncodeImmediateWord(v))
		}
	}

	for _, ld := range u.commands {
		var hasSource, hasTarget bool
		var sourceMode, targetMode isa.Mode
		if ld.Source != nil {
			hasSource, sourceMode = true, ld.Source.Kind
		}
		if ld.Target != nil {
			hasTarget, targetMode = true, ld.Target.Kind
		}

		emit(isa.EncodeOpcodeWord(ld.Opcode, sourceMode, targetMode, hasSource, hasTarget))

		switch {
		case hasSource && hasTarget && sourceMode == isa.Register && targetMode == isa.Register:
			emit(isa.EncodeRegisterPairWord(ld.Source.Register, ld.Target.Register))
		default:
			if hasSource {
				emitOperandWords(ld, ld.Source, true)
			}
			if hasTarget {
				emitOperandWords(ld, ld.Target, false)
			}
		}
	}

	return diags
}
