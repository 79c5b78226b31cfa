package asm

import "strconv"

// parseSignedInt validates and parses a signed decimal integer literal
// per spec.md section 4.2: an optional leading '+' or '-', then digits,
// with no leading zero unless the value is exactly "0".
//
// spec.md section 9 flags the source's extract_valid_number as
// rejecting any literal beginning with '0', which also rejects the
// literal "0" itself. This implementation takes the spec's
// recommendation and treats "0" as legal; see DESIGN.md for the
// decision record.
func parseSignedInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		rest = rest[1:]
	}
	if rest == "" {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if !decimal(rest[i]) {
			return 0, false
		}
	}
	if rest != "0" && rest[0] == '0' {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
