package engine

import (
	"errors"
	"regexp/syntax"
	"strings"
	"unicode/utf8"
)

// compileErrorFrom converts a parser error into a CompileError whose offset
// points into pattern.
func compileErrorFrom(pattern string, err error) *CompileError {
	var se *syntax.Error
	if !errors.As(err, &se) {
		return &CompileError{Message: err.Error(), Offset: 0}
	}
	msg := se.Code.String()
	if se.Expr != "" && se.Expr != pattern {
		msg += ": `" + se.Expr + "`"
	}
	return &CompileError{Message: msg, Offset: errorOffset(pattern, se)}
}

// errorOffset locates a parser error in pattern. Unterminated constructs
// are reported at the end of the pattern.
func errorOffset(pattern string, se *syntax.Error) int {
	switch se.Code {
	case syntax.ErrMissingParen, syntax.ErrMissingBracket, syntax.ErrTrailingBackslash:
		return len(pattern)
	case syntax.ErrUnexpectedParen:
		if i := unbalancedParen(pattern); i >= 0 {
			return i
		}
	}
	if se.Expr != "" {
		if i := strings.Index(pattern, se.Expr); i >= 0 {
			return i
		}
	}
	return 0
}

// unbalancedParen returns the index of the first ')' with no matching '(',
// ignoring escapes, character classes and \Q...\E quoting, or -1.
func unbalancedParen(pattern string) int {
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			if pattern[i+1] == 'Q' {
				end := strings.Index(pattern[i+2:], `\E`)
				if end < 0 {
					return -1
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
			// A ']' right after '[' or '[^' is a literal.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// invalidUTF8Offset returns the index of the first byte that is not part of
// a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
