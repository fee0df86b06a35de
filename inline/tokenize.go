package inline

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits s into the units that are compared at granularity g. Concatenating the tokens
// yields s again, the empty string yields no tokens.
//
// At Char granularity every code point is a token. At Word granularity a token is a maximal run
// of whitespace, a maximal run of ASCII letters, digits and underscores, or any other single code
// point. Invalid UTF-8 is treated like any other character, one byte at a time.
func Tokenize(s string, g Granularity) []string {
	if s == "" {
		return nil
	}
	if g == Char {
		tokens := make([]string, 0, utf8.RuneCountInString(s))
		for len(s) > 0 {
			_, w := utf8.DecodeRuneInString(s)
			tokens = append(tokens, s[:w])
			s = s[w:]
		}
		return tokens
	}

	var tokens []string
	for len(s) > 0 {
		r, w := utf8.DecodeRuneInString(s)
		n := w
		switch c := classOf(r); c {
		case classSpace, classWord:
			for n < len(s) {
				r, w := utf8.DecodeRuneInString(s[n:])
				if classOf(r) != c {
					break
				}
				n += w
			}
		}
		tokens = append(tokens, s[:n])
		s = s[n:]
	}
	return tokens
}

type class int

const (
	classOther class = iota
	classSpace
	classWord
)

func classOf(r rune) class {
	switch {
	case r == '_' || '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		return classWord
	case isSpaceRune(r):
		return classSpace
	default:
		return classOther
	}
}

// isSpace reports whether s is non-empty and consists of whitespace only.
func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isSpaceRune(r) {
			return false
		}
	}
	return true
}

// isSpaceRune reports whether r is whitespace. That's the Unicode White_Space property without
// U+0085 (NEL) but with U+FEFF (BOM, or zero width no-break space).
func isSpaceRune(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}
