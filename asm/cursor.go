package asm

// A cursor is a string that keeps track of its position within the
// line it was read from, so that diagnostics can point at an exact
// row/column (spec.md section 7). It is the same scan-and-consume idiom
// the teacher uses in asm/fstring.go, retuned to this grammar's token
// classes (symbol/label names, directive keywords, decimal literals)
// instead of 6502 operand syntax.
type cursor struct {
	row    int    // 1-based line number
	column int    // 0-based column of the start of str within full
	str    string // the remaining substring of interest
	full   string // the full line as originally read
}

func newCursor(row int, str string) cursor {
	return cursor{row: row, column: 0, str: str, full: str}
}

func (c cursor) String() string { return c.str }

func (c cursor) consume(n int) cursor {
	return cursor{row: c.row, column: c.column + n, str: c.str[n:], full: c.full}
}

func (c cursor) trunc(n int) cursor {
	return cursor{row: c.row, column: c.column, str: c.str[:n], full: c.full}
}

func (c cursor) isEmpty() bool { return len(c.str) == 0 }

func (c cursor) startsWithChar(b byte) bool {
	return len(c.str) > 0 && c.str[0] == b
}

func (c cursor) consumeWhitespace() cursor {
	return c.consume(c.scanWhile(whitespace))
}

func (c cursor) scanWhile(fn func(b byte) bool) int {
	i := 0
	for ; i < len(c.str) && fn(c.str[i]); i++ {
	}
	return i
}

func (c cursor) scanUntilChar(b byte) int {
	i := 0
	for ; i < len(c.str) && c.str[i] != b; i++ {
	}
	return i
}

func (c cursor) consumeWhile(fn func(b byte) bool) (consumed, remain cursor) {
	i := c.scanWhile(fn)
	return c.trunc(i), c.consume(i)
}

//
// character classes
//

func whitespace(b byte) bool { return b == ' ' || b == '\t' }

func wordChar(b byte) bool { return !whitespace(b) }

func alpha(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

func decimal(b byte) bool { return b >= '0' && b <= '9' }

func alphaNumeric(b byte) bool { return alpha(b) || decimal(b) }

// symbolStartChar/symbolChar implement spec.md section 3's name rule:
// "first alphabetic, rest alphanumeric".
func symbolStartChar(b byte) bool { return alpha(b) }

func symbolChar(b byte) bool { return alphaNumeric(b) }
