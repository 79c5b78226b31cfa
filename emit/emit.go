// Package emit writes a finished translation unit to the three output
// artifacts of spec.md section 6: the object file, the entries file,
// and the externals file.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rlawton/asm16/asm"
	"github.com/rlawton/asm16/isa"
)

// base4Digits is the encoded-base-4 alphabet of spec.md section 6:
// '*'=0, '#'=1, '%'=2, '!'=3. Grounded on the teacher's disasm.hexString,
// which builds a fixed-width digit string from a byte slice the same
// way, one alphabet entry per nibble.
const base4Digits = "*#%!"

// encodeWord renders a 14-bit word as 7 encoded-base-4 digits, most
// significant digit first.
func encodeWord(w isa.Word) string {
	const digits = 7
	buf := make([]byte, digits)
	v := uint(w)
	for i := digits - 1; i >= 0; i-- {
		buf[i] = base4Digits[v&0x3]
		v >>= 2
	}
	return string(buf)
}

// WriteObject writes the ".ob" file: header line, then IC code lines
// followed by DC data lines, addresses starting at 100.
func WriteObject(w io.Writer, u *asm.Unit) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "  %d %d\n", u.IC, u.DC); err != nil {
		return err
	}
	addr := 100
	for _, word := range u.CodeImage {
		if _, err := fmt.Fprintf(bw, "%04d %s\n", addr, encodeWord(word)); err != nil {
			return err
		}
		addr++
	}
	for _, word := range u.DataImage {
		if _, err := fmt.Fprintf(bw, "%04d %s\n", addr, encodeWord(word)); err != nil {
			return err
		}
		addr++
	}
	return bw.Flush()
}

// WriteEntries writes the ".ent" file. The caller should skip creating
// the file at all when u.Entries is empty (spec.md section 6).
func WriteEntries(w io.Writer, u *asm.Unit) error {
	return writeNameAddrList(w, entriesAsPairs(u.Entries))
}

// WriteExternals writes the ".ext" file. The caller should skip
// creating the file at all when u.Externals is empty.
func WriteExternals(w io.Writer, u *asm.Unit) error {
	return writeNameAddrList(w, externalsAsPairs(u.Externals))
}

type nameAddr struct {
	Name string
	Addr int
}

func entriesAsPairs(entries []asm.Symbol) []nameAddr {
	pairs := make([]nameAddr, len(entries))
	for i, e := range entries {
		pairs[i] = nameAddr{Name: e.Name, Addr: e.Address}
	}
	return pairs
}

func externalsAsPairs(uses []asm.ExternalUse) []nameAddr {
	pairs := make([]nameAddr, len(uses))
	for i, u := range uses {
		pairs[i] = nameAddr{Name: u.Name, Addr: u.Address}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Addr < pairs[j].Addr })
	return pairs
}

func writeNameAddrList(w io.Writer, pairs []nameAddr) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(bw, "%s\t%04d\n", p.Name, p.Addr); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteAll writes every artifact for unit u under baseName, adding the
// standard extensions: baseName+".ob" always, baseName+".ent" only if
// there are entries, baseName+".ext" only if there are external uses
// (spec.md section 6's "omitted if none" rule for the latter two).
func WriteAll(baseName string, u *asm.Unit) error {
	if err := writeFile(baseName+".ob", func(w io.Writer) error { return WriteObject(w, u) }); err != nil {
		return err
	}
	if len(u.Entries) > 0 {
		if err := writeFile(baseName+".ent", func(w io.Writer) error { return WriteEntries(w, u) }); err != nil {
			return err
		}
	}
	if len(u.Externals) > 0 {
		if err := writeFile(baseName+".ext", func(w io.Writer) error { return WriteExternals(w, u) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, fn func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
