package starfield

import (
	"strconv"
	"strings"
)

// DefaultSeed is used when no seed is given or the given one is not a number.
const DefaultSeed int64 = 0

// ParseSeed reads a seed the way the browser explorer read its ?seed=
// parameter: surrounding space is ignored, an optional sign and a leading
// run of digits are parsed and trailing text is dropped ("12abc" is 12).
// A "0x" prefix selects hexadecimal. Anything else yields DefaultSeed.
func ParseSeed(s string) int64 {
	v, _ := LookupSeed(s)
	return v
}

// LookupSeed is ParseSeed that also reports whether s held a usable number.
func LookupSeed(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSeed, false
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return DefaultSeed, false
	}

	digits := s[:end]
	if neg {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return DefaultSeed, false
	}
	return v, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
