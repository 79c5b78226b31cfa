// Package asm implements the two-pass assembler core: the line
// parser, the symbol table, and the first- and second-pass drivers
// that together turn macro-expanded source into a finished
// translation unit.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rlawton/asm16/isa"
	"github.com/rlawton/asm16/preprocess"
)

// maxLineLength is the longest source line this grammar accepts,
// spec.md section 3.
const maxLineLength = 80

// Result is everything one call to Assemble produced: either a
// complete Unit ready for the emitter, or a non-empty diagnostic list
// and no Unit (spec.md section 7: a failed input produces no output
// artifacts).
type Result struct {
	File  string
	Unit  *Unit
	Diags []Diagnostic
}

// OK reports whether the file assembled cleanly.
func (r *Result) OK() bool { return len(r.Diags) == 0 }

// Assemble runs the full pipeline over the raw source read from r:
// macro expansion, line parsing, first pass, second pass. It mirrors
// the teacher's multi-stage assembler entry point, generalized to the
// four stages of spec.md section 2's table.
func Assemble(file string, r io.Reader) *Result {
	registry := isa.NewRegistry()

	var expanded strings.Builder
	if _, err := preprocess.Expand(r, &expanded, registry); err != nil {
		if pe, ok := err.(*preprocess.Error); ok {
			return &Result{File: file, Diags: []Diagnostic{{
				Pos:     Pos{File: file, Line: pe.Line},
				Phase:   PhasePreprocess,
				Code:    Code(pe.Code),
				Message: pe.Msg,
			}}}
		}
		return &Result{File: file, Diags: []Diagnostic{{
			Pos: Pos{File: file}, Phase: PhasePreprocess, Code: CodeSyntaxError, Message: err.Error(),
		}}}
	}

	lines, lengthDiags := parseLines(file, expanded.String())

	u, diags := FirstPass(file, lines, registry)
	diags = append(lengthDiags, diags...)

	if len(diags) > 0 {
		return &Result{File: file, Diags: diags}
	}

	if secondDiags := SecondPass(u); len(secondDiags) > 0 {
		return &Result{File: file, Diags: secondDiags}
	}

	return &Result{File: file, Unit: u}
}

// parseLines splits the macro-expanded text into LineDescriptors,
// reporting any line over maxLineLength before parsing it (spec.md
// section 3's line-length invariant).
func parseLines(file, text string) ([]*LineDescriptor, []Diagnostic) {
	var diags []Diagnostic
	var lines []*LineDescriptor

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 256), 4096)

	row := 0
	for scanner.Scan() {
		row++
		raw := scanner.Text()
		if len(raw) > maxLineLength {
			diags = append(diags, Diagnostic{
				Pos:     Pos{File: file, Line: row},
				Phase:   PhaseParse,
				Code:    CodeSyntaxError,
				Message: fmt.Sprintf("line exceeds %d characters", maxLineLength),
			})
			continue
		}
		ld := parseLine(row, raw)
		if ld.Kind == Invalid {
			ld.Err.Pos.File = file
		}
		lines = append(lines, ld)
	}
	return lines, diags
}
