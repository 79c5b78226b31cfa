package asm

import "github.com/rlawton/asm16/isa"

// Operand is the tagged variant of spec.md section 3: exactly one of
// its value groups is meaningful, selected by Kind.
type Operand struct {
	Kind isa.Mode

	// Immediate
	ImmediateConstant string // set if the literal was a constant name
	ImmediateValue    int    // the literal value; unused if ImmediateConstant != "" (SecondPass looks the constant up)

	// Direct / FixedIndex
	Label string

	// FixedIndex only
	IndexConstant string
	IndexValue    int

	// Register
	Register int
}

// validateSymbolSyntax checks the name rule of spec.md section 3: 1-31
// characters, first alphabetic, rest alphanumeric.
func validateSymbolSyntax(name string) (Code, bool) {
	if len(name) == 0 {
		return CodeSyntaxError, false
	}
	if len(name) > 31 {
		return CodeSymbolTooLong, false
	}
	if !symbolStartChar(name[0]) {
		return CodeSyntaxError, false
	}
	for i := 1; i < len(name); i++ {
		if !symbolChar(name[i]) {
			return CodeSyntaxError, false
		}
	}
	return "", true
}

// classifyOperand parses one comma-separated operand token per spec.md
// section 4.2's operand grammar.
func classifyOperand(tok string) (Operand, Code, string, bool) {
	switch {
	case tok == "":
		return Operand{}, CodeMissingOperand, "missing operand", false

	case tok[0] == '#':
		payload := tok[1:]
		if payload == "" {
			return Operand{}, CodeIllegalConstantValue, "missing immediate value", false
		}
		if v, ok := parseSignedInt(payload); ok {
			return Operand{Kind: isa.Immediate, ImmediateValue: v}, "", "", true
		}
		if _, ok := validateSymbolSyntax(payload); ok {
			return Operand{Kind: isa.Immediate, ImmediateConstant: payload}, "", "", true
		}
		return Operand{}, CodeIllegalConstantValue, "invalid immediate value '" + tok + "'", false

	case isRegisterToken(tok):
		n, _ := isa.LookupRegister(tok)
		return Operand{Kind: isa.Register, Register: n}, "", "", true

	case hasFixedIndexShape(tok):
		return parseFixedIndex(tok)

	default:
		code, ok := validateSymbolSyntax(tok)
		if ok {
			return Operand{Kind: isa.Direct, Label: tok}, "", "", true
		}
		return Operand{}, code, "invalid label '" + tok + "'", false
	}
}

func isRegisterToken(tok string) bool {
	_, ok := isa.LookupRegister(tok)
	return ok
}

func hasFixedIndexShape(tok string) bool {
	return len(tok) > 0 && tok[len(tok)-1] == ']' && indexOf(tok, '[') >= 0
}

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func parseFixedIndex(tok string) (Operand, Code, string, bool) {
	open := indexOf(tok, '[')
	label := tok[:open]
	index := tok[open+1 : len(tok)-1]

	if code, ok := validateSymbolSyntax(label); !ok {
		return Operand{}, code, "invalid label '" + label + "'", false
	}

	op := Operand{Kind: isa.FixedIndex, Label: label}
	if v, ok := parseSignedInt(index); ok {
		op.IndexValue = v
		return op, "", "", true
	}
	if _, ok := validateSymbolSyntax(index); ok {
		op.IndexConstant = index
		return op, "", "", true
	}
	return Operand{}, CodeSyntaxError, "invalid index '" + index + "' in '" + tok + "'", false
}
