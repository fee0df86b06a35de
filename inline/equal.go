package inline

import "golang.org/x/text/cases"

// Equal reports whether tokens a and b are equal under opts.
//
// If either token consists of whitespace only, IgnoreWhitespace makes any two whitespace tokens
// equal; without it they have to match exactly. IgnoreCase never applies to whitespace. All other
// tokens are compared case folded if IgnoreCase is set and exactly otherwise.
func Equal(a, b string, opts Options) bool {
	m := newMatcher(opts)
	return m.equal(m.token(a), m.token(b))
}

// token is a token prepared for repeated comparisons.
type token struct {
	text  string // original text
	key   string // text to compare, case folded if required
	space bool
}

type matcher struct {
	opts Options
	fold cases.Caser
}

func newMatcher(opts Options) *matcher {
	m := &matcher{opts: opts}
	if opts.IgnoreCase {
		m.fold = cases.Fold()
	}
	return m
}

func (m *matcher) token(s string) token {
	t := token{text: s, key: s, space: isSpace(s)}
	if m.opts.IgnoreCase && !t.space {
		t.key = m.fold.String(s)
	}
	return t
}

func (m *matcher) tokens(s string) []token {
	words := Tokenize(s, m.opts.Granularity)
	ret := make([]token, 0, len(words))
	for _, w := range words {
		ret = append(ret, m.token(w))
	}
	return ret
}

func (m *matcher) equal(a, b token) bool {
	if a.space || b.space {
		if m.opts.IgnoreWhitespace {
			return a.space && b.space
		}
		return a.text == b.text
	}
	return a.key == b.key
}
