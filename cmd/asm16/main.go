// Command asm16 is the batch driver for the two-pass assembler: it
// takes one or more source file names, without extension, and
// assembles each independently.
package main

import (
	"fmt"
	"os"

	"github.com/rlawton/asm16/asm"
	"github.com/rlawton/asm16/emit"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: asm16 file ...")
		os.Exit(1)
	}

	failed := false
	for _, name := range args {
		if !assembleOne(name) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// assembleOne processes one source file end to end, reporting every
// diagnostic to stderr and writing output artifacts only on success
// (spec.md section 7: a failed input produces no output artifacts).
func assembleOne(name string) bool {
	srcName := name + ".as"
	f, err := os.Open(srcName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", srcName, err)
		return false
	}
	defer f.Close()

	result := asm.Assemble(srcName, f)
	if !result.OK() {
		for _, d := range result.Diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
		return false
	}

	for _, w := range result.Unit.Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	if err := emit.WriteAll(name, result.Unit); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return false
	}
	return true
}
