// Package preprocess implements the macro preprocessor: a single-pass
// textual expander that folds named line groups (mcr ... endmcr) into
// their use sites before the two-pass assembler ever sees the source
// (spec.md section 4.1).
package preprocess

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rlawton/asm16/isa"
)

// Macro is a named block of verbatim source text.
type Macro struct {
	Name string
	Body []string
}

// Error is returned when the preprocessor rejects a source file. It
// carries the 1-based line number so the driver can attribute it the
// way every other phase attributes diagnostics (spec.md section 7).
type Error struct {
	Line int
	Code string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func newError(line int, code, format string, args ...interface{}) *Error {
	return &Error{Line: line, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Table owns every macro defined in one file. It lives only for the
// duration of preprocessing that file (spec.md section 5).
type Table struct {
	macros   map[string]*Macro
	registry *isa.Registry
}

// NewTable creates an empty macro table backed by the given name
// registry, so that macro names are checked against reserved words,
// opcodes, and register names as they are declared.
func NewTable(registry *isa.Registry) *Table {
	return &Table{
		macros:   make(map[string]*Macro),
		registry: registry,
	}
}

// Lookup returns the named macro, if one has been defined.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

func isValidMacroName(name string) bool {
	if name == "" {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlphaNumeric(name[i]) {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isAlphaNumeric(b byte) bool {
	return isAlpha(b) || b >= '0' && b <= '9'
}

// define starts collection of a new macro body. It fails with
// InvalidMacroName if the name is malformed, already a macro, or
// collides with a reserved word, opcode, or register name (spec.md
// section 4.1 and section 9's note on macros sharing a namespace with
// only themselves: prior use as a label or constant is intentionally
// not checked here, since that information belongs to a later phase).
func (t *Table) define(line int, name string) (*Macro, error) {
	if !isValidMacroName(name) {
		return nil, newError(line, "InvalidMacroName", "invalid macro name %q", name)
	}
	if _, exists := t.macros[name]; exists {
		return nil, newError(line, "InvalidMacroName", "macro %q already defined", name)
	}
	if kind, ok := t.registry.Lookup(name); ok {
		return nil, newError(line, "InvalidMacroName", "macro name %q collides with %s", name, kind)
	}
	m := &Macro{Name: name}
	t.macros[name] = m
	t.registry.Declare(name, isa.KindMacro)
	return m, nil
}

// firstToken splits off the first whitespace-delimited token of a line
// and returns it together with the rest of the line, unchanged.
func firstToken(line string) (token, rest string) {
	trimmed := strings.TrimLeft(line, " \t")
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return "", line
	}
	token = fields[0]
	rest = trimmed[len(token):]
	return token, rest
}

// Expand reads raw source from r and writes the macro-expanded text
// stream to w: the "after-macro" text later stages consume (spec.md
// section 4.1 and section 6, the .am intermediate).
//
// State is kept to a single flag (are we collecting a macro body) and
// an optional current macro, exactly as spec.md section 4.1 describes.
func Expand(r io.Reader, w io.Writer, registry *isa.Registry) (*Table, error) {
	table := NewTable(registry)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 4096)

	var collecting bool
	var current *Macro

	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		token, rest := firstToken(line)

		switch {
		case token == "mcr":
			name := strings.TrimSpace(rest)
			m, err := table.define(row, name)
			if err != nil {
				return nil, err
			}
			current = m
			collecting = true

		case token == "endmcr":
			if !collecting {
				return nil, newError(row, "InvalidMacroName", "endmcr without matching mcr")
			}
			collecting = false
			current = nil

		case collecting:
			current.Body = append(current.Body, line)

		default:
			if m, ok := table.Lookup(token); ok {
				for _, bodyLine := range m.Body {
					fmt.Fprintln(w, bodyLine)
				}
				continue
			}
			fmt.Fprintln(w, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
