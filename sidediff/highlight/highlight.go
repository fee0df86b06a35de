// Package highlight renders the segments of a line as syntax highlighted HTML.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"sidediff.znkr.io/inline"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericPrompt:     "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

type Option func(*Highlighter)

// Lang selects the lexer by name or alias, e.g. "go".
func Lang(lang string) Option {
	return func(o *Highlighter) {
		o.lexer = lexers.Get(lang)
	}
}

// LangFromFilename selects the lexer from a file name.
func LangFromFilename(filename string) Option {
	return func(o *Highlighter) {
		o.lexer = lexers.Match(filename)
	}
}

// Highlighter renders lines of one language. Without a matching lexer, text is only escaped.
type Highlighter struct {
	lexer chroma.Lexer
}

func New(opts ...Option) *Highlighter {
	hl := &Highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

// Name returns the name of the lexer in use.
func (hl *Highlighter) Name() string { return hl.lexer.Config().Name }

// Segments renders the segments of one side of a row. The line is lexed as a whole, tokens are
// split at segment boundaries. Insert and delete segments are wrapped in a span with the classes
// "segment ins" and "segment del", a blank segment becomes a non-breaking space.
func (hl *Highlighter) Segments(segs []inline.Segment) (template.HTML, error) {
	if len(segs) == 1 && segs[0].Op == inline.SegmentBlank {
		return "&nbsp;", nil
	}

	var line strings.Builder
	for _, seg := range segs {
		line.WriteString(seg.Text)
	}
	tokens, err := hl.tokens(line.String())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segs {
		var wrap string
		switch seg.Op {
		case inline.SegmentInsert:
			wrap = "ins"
		case inline.SegmentDelete:
			wrap = "del"
		case inline.SegmentBlank:
			sb.WriteString("&nbsp;")
			continue
		}
		if wrap != "" {
			fmt.Fprintf(&sb, "<span class=\"segment %s\">", wrap)
		}
		var part []chroma.Token
		part, tokens = split(tokens, len(seg.Text))
		sb.WriteString(hl.highlight(part))
		if wrap != "" {
			sb.WriteString("</span>")
		}
	}
	return template.HTML(sb.String()), nil
}

// split returns tokens covering the first n bytes and the remaining tokens. A token crossing
// the boundary is cut in two.
func split(tokens []chroma.Token, n int) (head, tail []chroma.Token) {
	for i, tok := range tokens {
		if n == 0 {
			return head, tokens[i:]
		}
		if len(tok.Value) > n {
			head = append(head, chroma.Token{Type: tok.Type, Value: tok.Value[:n]})
			rest := append([]chroma.Token{{Type: tok.Type, Value: tok.Value[n:]}}, tokens[i+1:]...)
			return head, rest
		}
		head = append(head, tok)
		n -= len(tok.Value)
	}
	return head, nil
}

func (hl *Highlighter) highlight(line []chroma.Token) string {
	var sb strings.Builder
	for _, token := range line {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(token.Value))
		if class != "" {
			fmt.Fprintf(&sb, "</span>")
		}
	}
	return sb.String()
}

// tokens lexes a single line. The tokens cover exactly the line, even if the lexer appends a
// newline or returns something that doesn't add up to the input.
func (hl *Highlighter) tokens(line string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, line)
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	tokens, _ := split(it.Tokens(), len(line))

	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Value)
	}
	if sb.String() != line {
		return []chroma.Token{{Type: chroma.Text, Value: line}}, nil
	}
	return tokens, nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
