package engine

import "strings"

// stripExtended removes the whitespace and '#' comments that
// PCRE_EXTENDED ignores outside character classes. An escaped whitespace
// character stays as a literal. offsets[i] is the position in pattern of
// byte i of the result, plus one trailing entry for the end of the result.
func stripExtended(pattern string) (string, []int) {
	var b strings.Builder
	b.Grow(len(pattern))
	offsets := make([]int, 0, len(pattern)+1)
	emit := func(from, to int) {
		b.WriteString(pattern[from:to])
		for i := from; i < to; i++ {
			offsets = append(offsets, i)
		}
	}

	inClass := false
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			next := pattern[i+1]
			switch {
			case next == 'Q':
				end := strings.Index(pattern[i+2:], `\E`)
				if end < 0 {
					emit(i, len(pattern))
					i = len(pattern)
					continue
				}
				emit(i, i+2+end+2)
				i += 2 + end + 2
			case !inClass && isExtendedSpace(next):
				emit(i+1, i+2)
				i += 2
			default:
				emit(i, i+2)
				i += 2
			}
		case inClass:
			if c == '[' && strings.HasPrefix(pattern[i:], "[:") {
				if end := strings.Index(pattern[i+2:], ":]"); end >= 0 {
					emit(i, i+2+end+2)
					i += 2 + end + 2
					continue
				}
			}
			if c == ']' {
				inClass = false
			}
			emit(i, i+1)
			i++
		case isExtendedSpace(c):
			i++
		case c == '#':
			if nl := strings.IndexByte(pattern[i:], '\n'); nl >= 0 {
				i += nl + 1
			} else {
				i = len(pattern)
			}
		case c == '[':
			inClass = true
			start := i
			i++
			// A ']' right after '[' or '[^' is a literal.
			if i < len(pattern) && pattern[i] == '^' {
				i++
			}
			if i < len(pattern) && pattern[i] == ']' {
				i++
			}
			emit(start, i)
		default:
			emit(i, i+1)
			i++
		}
	}
	offsets = append(offsets, len(pattern))
	return b.String(), offsets
}

func isExtendedSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// originalOffset maps an offset in a stripped pattern back to the caller's
// text. A nil table means the pattern was not rewritten.
func originalOffset(offsets []int, off int) int {
	if offsets == nil || off < 0 {
		return off
	}
	if off >= len(offsets) {
		return offsets[len(offsets)-1]
	}
	return offsets[off]
}

// namedGroup is the opening of a (?P<name>...) or (?<name>...) group.
type namedGroup struct {
	name   string
	offset int
}

// namedGroups lists the named groups of pattern in order of their opening
// parenthesis, skipping escapes, character classes and \Q...\E quoting.
func namedGroups(pattern string) []namedGroup {
	var groups []namedGroup
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			if pattern[i+1] == 'Q' {
				end := strings.Index(pattern[i+2:], `\E`)
				if end < 0 {
					return groups
				}
				i += 2 + end + 1
				continue
			}
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == '(':
			rest := pattern[i:]
			var start int
			switch {
			case strings.HasPrefix(rest, "(?P<"):
				start = 4
			case strings.HasPrefix(rest, "(?<"):
				start = 3
			default:
				continue
			}
			if end := strings.IndexByte(rest[start:], '>'); end >= 0 {
				groups = append(groups, namedGroup{name: rest[start : start+end], offset: i})
			}
		}
	}
	return groups
}

// duplicateName returns the offset of the first named group whose name
// was already used, or -1.
func duplicateName(pattern string) int {
	seen := make(map[string]bool)
	for _, g := range namedGroups(pattern) {
		if seen[g.name] {
			return g.offset
		}
		seen[g.name] = true
	}
	return -1
}
