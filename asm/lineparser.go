package asm

import (
	"fmt"
	"strings"

	"github.com/beevik/cmd"
	"github.com/rlawton/asm16/isa"
)

// verbKind distinguishes the six families of first-token verbs this
// grammar recognizes: the five directives and "it's an opcode".
type verbKind int

const (
	verbDefine verbKind = iota
	verbData
	verbString
	verbEntry
	verbExtern
	verbOpcode
)

type verbInfo struct {
	kind   verbKind
	opcode isa.Opcode
}

// verbs dispatches a line's leading keyword to its verb, the same way
// the teacher's debugger dispatches a typed command line to its
// handler (debugger/debugger.go, host/cmds.go). Here the "subcommands"
// are the four directives, ".define", and the sixteen opcode
// mnemonics of spec.md section 4.2 steps 2-5.
var verbs = newVerbTree()

func newVerbTree() *cmd.Tree {
	t := cmd.NewTree("verb")
	t.AddCommand(cmd.Command{Name: ".define", Data: verbInfo{kind: verbDefine}})
	t.AddCommand(cmd.Command{Name: ".data", Data: verbInfo{kind: verbData}})
	t.AddCommand(cmd.Command{Name: ".string", Data: verbInfo{kind: verbString}})
	t.AddCommand(cmd.Command{Name: ".entry", Data: verbInfo{kind: verbEntry}})
	t.AddCommand(cmd.Command{Name: ".extern", Data: verbInfo{kind: verbExtern}})
	for _, op := range isa.AllOpcodes() {
		t.AddCommand(cmd.Command{Name: op.String(), Data: verbInfo{kind: verbOpcode, opcode: op}})
	}
	return t
}

// lookupVerb resolves word to a verb only on an exact match: spec.md's
// grammar has no notion of abbreviating a directive or opcode mnemonic,
// so a cmd.Tree abbreviation match that isn't also an exact match is
// treated as "no verb found" here.
func lookupVerb(word string) (verbInfo, bool) {
	sel, err := verbs.Lookup(word)
	if err != nil || sel.Command == nil || sel.Command.Name != word {
		return verbInfo{}, false
	}
	return sel.Command.Data.(verbInfo), true
}

// parseLine turns one line of macro-expanded source into a
// LineDescriptor (spec.md section 4.2).
func parseLine(row int, raw string) *LineDescriptor {
	ld := &LineDescriptor{Raw: raw, Line: row}

	c := newCursor(row, raw).consumeWhitespace()
	if c.isEmpty() {
		ld.Kind = Empty
		return ld
	}
	if c.startsWithChar(';') {
		ld.Kind = Comment
		return ld
	}

	word, rest := c.consumeWhile(wordChar)

	if v, ok := lookupVerb(word.str); ok && v.kind == verbDefine {
		return parseConstantDef(ld, rest)
	}

	label := ""
	if looksLikeLabel(word.str) {
		label = word.str[:len(word.str)-1]
		if code, ok := validateSymbolSyntax(label); !ok {
			return invalid(ld, row, word.column, code, "invalid label '%s'", label)
		}
		rest = rest.consumeWhitespace()
		word, rest = rest.consumeWhile(wordChar)
	}
	ld.Label = label

	if word.isEmpty() {
		return invalid(ld, row, word.column, CodeSyntaxError, "expected a directive or instruction")
	}

	v, ok := lookupVerb(word.str)
	if !ok {
		return invalid(ld, row, word.column, CodeSyntaxError, "unknown mnemonic '%s'", word.str)
	}

	switch v.kind {
	case verbData:
		return parseDataDirective(ld, rest)
	case verbString:
		return parseStringDirective(ld, rest)
	case verbEntry:
		return parseEntryLikeDirective(ld, rest, DirectiveEntry)
	case verbExtern:
		return parseEntryLikeDirective(ld, rest, DirectiveExtern)
	case verbOpcode:
		return parseCommand(ld, rest, v.opcode)
	default:
		return invalid(ld, row, word.column, CodeSyntaxError, "unexpected '%s'", word.str)
	}
}

func looksLikeLabel(word string) bool {
	return len(word) > 0 && word[len(word)-1] == ':'
}

func invalid(ld *LineDescriptor, line, col int, code Code, format string, args ...interface{}) *LineDescriptor {
	phase := PhaseParse
	if code == CodeIllegalAddressing {
		// Detected while classifying operands, but spec.md section 7
		// attributes addressing-mode legality to the first pass.
		phase = PhaseFirstPass
	}
	ld.Kind = Invalid
	ld.Err = Diagnostic{
		Pos:     Pos{Line: line, Column: col},
		Phase:   phase,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
	return ld
}

// parseConstantDef handles ".define NAME = INT" (spec.md section 4.2).
func parseConstantDef(ld *LineDescriptor, rest cursor) *LineDescriptor {
	rest = rest.consumeWhitespace()
	nameTok, rest2 := rest.consumeWhile(symbolChar)
	if nameTok.isEmpty() {
		return invalid(ld, ld.Line, rest.column, CodeSyntaxError, "expected a name after .define")
	}
	if code, ok := validateSymbolSyntax(nameTok.str); !ok {
		return invalid(ld, ld.Line, nameTok.column, code, "invalid constant name '%s'", nameTok.str)
	}

	rest2 = rest2.consumeWhitespace()
	if !rest2.startsWithChar('=') {
		return invalid(ld, ld.Line, rest2.column, CodeMissingAssignment, "expected '=' after constant name")
	}
	rest2 = rest2.consume(1).consumeWhitespace()

	valTok, rest3 := rest2.consumeWhile(func(b byte) bool { return decimal(b) || b == '+' || b == '-' })
	v, ok := parseSignedInt(valTok.str)
	if !ok {
		return invalid(ld, ld.Line, rest2.column, CodeIllegalConstantValue, "invalid integer literal '%s'", valTok.str)
	}

	rest3 = rest3.consumeWhitespace()
	if !rest3.isEmpty() {
		return invalid(ld, ld.Line, rest3.column, CodeRedundantCharacters, "unexpected characters after .define value")
	}

	ld.Kind = ConstantDef
	ld.ConstName = nameTok.str
	ld.ConstValue = v
	return ld
}

// parseDataDirective handles ".data" (spec.md section 4.2).
func parseDataDirective(ld *LineDescriptor, rest cursor) *LineDescriptor {
	rest = rest.consumeWhitespace()
	if rest.isEmpty() {
		return invalid(ld, ld.Line, rest.column, CodeMissingOperand, ".data requires at least one value")
	}

	tokens, diag := splitOperands(ld.Line, rest)
	if diag != nil {
		ld.Kind = Invalid
		ld.Err = *diag
		return ld
	}

	values := make([]DataValue, 0, len(tokens))
	for _, tok := range tokens {
		s := strings.TrimSpace(tok)
		if s == "" {
			return invalid(ld, ld.Line, rest.column, CodeSyntaxError, "empty value in .data list")
		}
		if v, ok := parseSignedInt(s); ok {
			values = append(values, DataValue{Value: v})
			continue
		}
		if code, ok := validateSymbolSyntax(s); ok {
			values = append(values, DataValue{Constant: s})
			continue
		} else {
			return invalid(ld, ld.Line, rest.column, code, "invalid .data value '%s'", s)
		}
	}

	ld.Kind = DirectiveData
	ld.DataValues = values
	return ld
}

// parseStringDirective handles ".string" (spec.md section 4.2).
func parseStringDirective(ld *LineDescriptor, rest cursor) *LineDescriptor {
	rest = rest.consumeWhitespace()
	if !rest.startsWithChar('"') {
		return invalid(ld, ld.Line, rest.column, CodeSyntaxError, "expected a quoted string")
	}
	body := rest.consume(1)
	closeIdx := body.scanUntilChar('"')
	if closeIdx >= len(body.str) {
		return invalid(ld, ld.Line, rest.column, CodeUnterminatedString, "unterminated string literal")
	}
	content, after := body.trunc(closeIdx), body.consume(closeIdx+1)
	after = after.consumeWhitespace()
	if !after.isEmpty() {
		return invalid(ld, ld.Line, after.column, CodeRedundantCharacters, "unexpected characters after string literal")
	}

	ld.Kind = DirectiveString
	ld.StringValue = content.str
	return ld
}

// parseEntryLikeDirective handles ".entry" and ".extern", which share
// one shape: exactly one label name (spec.md section 4.2).
func parseEntryLikeDirective(ld *LineDescriptor, rest cursor, kind LineKind) *LineDescriptor {
	rest = rest.consumeWhitespace()
	nameTok, after := rest.consumeWhile(symbolChar)
	if nameTok.isEmpty() {
		return invalid(ld, ld.Line, rest.column, CodeMissingOperand, "expected a label name")
	}
	if code, ok := validateSymbolSyntax(nameTok.str); !ok {
		return invalid(ld, ld.Line, nameTok.column, code, "invalid label '%s'", nameTok.str)
	}
	after = after.consumeWhitespace()
	if !after.isEmpty() {
		return invalid(ld, ld.Line, after.column, CodeRedundantCharacters, "unexpected characters after label name")
	}

	if ld.Label != "" {
		ld.Warning = &Diagnostic{
			Pos:     Pos{Line: ld.Line},
			Phase:   PhaseParse,
			Code:    CodeDiscardedLabel,
			Message: fmt.Sprintf("label '%s' is meaningless here and was discarded", ld.Label),
			Warning: true,
		}
	}

	ld.Kind = kind
	ld.TargetName = nameTok.str
	ld.Label = "" // a preceding label on .entry/.extern is meaningless and discarded
	return ld
}

// parseCommand handles an opcode mnemonic and its 0, 1, or 2 operands
// (spec.md section 4.2 and section 4.4).
func parseCommand(ld *LineDescriptor, rest cursor, op isa.Opcode) *LineDescriptor {
	rest = rest.consumeWhitespace()
	want := op.OperandCount()

	if want == 0 {
		if !rest.isEmpty() {
			return invalid(ld, ld.Line, rest.column, CodeRedundantCharacters, "%s takes no operands", op)
		}
		ld.Kind = Command
		ld.Opcode = op
		return ld
	}

	tokens, diag := splitOperands(ld.Line, rest)
	if diag != nil {
		ld.Kind = Invalid
		ld.Err = *diag
		return ld
	}
	if len(tokens) != want {
		return invalid(ld, ld.Line, rest.column, CodeMissingOperand,
			"%s requires %d operand(s), got %d", op, want, len(tokens))
	}

	operands := make([]Operand, want)
	for i, tok := range tokens {
		o, code, msg, ok := classifyOperand(strings.TrimSpace(tok))
		if !ok {
			return invalid(ld, ld.Line, rest.column, code, "%s", msg)
		}
		operands[i] = o
	}

	ld.Kind = Command
	ld.Opcode = op
	if want == 1 {
		t := operands[0]
		if !op.LegalTargetModes().Allows(t.Kind) {
			return invalid(ld, ld.Line, rest.column, CodeIllegalAddressing,
				"illegal addressing mode %s for %s", t.Kind, op)
		}
		ld.Target = &t
		return ld
	}

	s, t := operands[0], operands[1]
	if !op.LegalSourceModes().Allows(s.Kind) {
		return invalid(ld, ld.Line, rest.column, CodeIllegalAddressing,
			"illegal source addressing mode %s for %s", s.Kind, op)
	}
	if !op.LegalTargetModes().Allows(t.Kind) {
		return invalid(ld, ld.Line, rest.column, CodeIllegalAddressing,
			"illegal target addressing mode %s for %s", t.Kind, op)
	}
	ld.Source = &s
	ld.Target = &t
	return ld
}

// splitOperands splits a comma-separated operand list, rejecting
// leading/trailing/doubled commas (spec.md section 4.2).
func splitOperands(line int, rest cursor) ([]string, *Diagnostic) {
	text := strings.TrimRight(rest.str, " \t")
	if text == "" {
		return nil, &Diagnostic{Pos: Pos{Line: line}, Phase: PhaseParse, Code: CodeMissingOperand, Message: "missing operand"}
	}
	if text[0] == ',' {
		return nil, &Diagnostic{Pos: Pos{Line: line}, Phase: PhaseParse, Code: CodeMissingOperand, Message: "unexpected leading comma"}
	}
	if text[len(text)-1] == ',' {
		return nil, &Diagnostic{Pos: Pos{Line: line}, Phase: PhaseParse, Code: CodeMissingComma, Message: "trailing comma"}
	}

	parts := strings.Split(text, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			return nil, &Diagnostic{Pos: Pos{Line: line}, Phase: PhaseParse, Code: CodeMissingComma, Message: "empty operand between commas"}
		}
		if strings.ContainsAny(t, " \t") {
			return nil, &Diagnostic{Pos: Pos{Line: line}, Phase: PhaseParse, Code: CodeMissingComma, Message: "missing comma between operands"}
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
