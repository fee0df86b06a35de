// Package directives finds directives in markdown documents.
//
// A directive is an HTML comment that starts with "<!--#" followed by a name and a list of
// attributes:
//
//	<!--#sidediff a="old.go" b="new.go" ignore-case -->
//
// Attribute values are enclosed in double quotes and end at the line. Tri-quoted values
// ("""...""") can span multiple lines, leading whitespace of each continuation line is dropped.
// An attribute without a value is a flag.
package directives

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof = -1

type Directive struct {
	Pos, End int // Byte offsets of the comment in the input
	Name     string
	Attrs    map[string]string
}

// HasAttr reports whether the directive has an attribute name, with or without a value.
func (d *Directive) HasAttr(name string) bool {
	_, ok := d.Attrs[name]
	return ok
}

// Bool interprets attribute name as a boolean. A missing attribute is false, a flag is true and
// a value must be accepted by [strconv.ParseBool].
func (d *Directive) Bool(name string) (bool, error) {
	v, ok := d.Attrs[name]
	switch {
	case !ok:
		return false, nil
	case v == "":
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", name, v)
	}
	return b, nil
}

type SyntaxError struct {
	Msg       string
	Pos       int
	Line, Col int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s [%d:%d]", err.Msg, err.Line, err.Col)
}

// Parse returns all directives in in, in document order.
func Parse(in []byte) (_ []Directive, err error) {
	defer func() {
		if e := recover(); e != nil {
			if e, ok := e.(*SyntaxError); ok {
				err = e
				return
			}
			panic(e)
		}
	}()

	p := parser{
		in:   in,
		line: 1,
		col:  1,
	}
	p.decode()

	var dirs []Directive
	for {
		dir, ok := p.parseNextDirective()
		if !ok {
			break
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

type parser struct {
	in []byte

	ch  rune
	chw int

	pos       int
	line, col int
}

func (p *parser) parseNextDirective() (Directive, bool) {
	for p.ch != eof {
		if !p.isnext("<!--#") {
			p.next()
			continue
		}

		d := Directive{Pos: p.pos}
		p.consume("<!--#")
		d.Name = p.parseIdent()

		d.Attrs = make(map[string]string)
		for {
			p.consumeSpaces()
			if !unicode.IsLetter(p.ch) {
				break
			}
			attr := p.parseIdent()
			if d.HasAttr(attr) {
				p.errorf("duplicate attribute %q", attr)
			}
			var value string
			if p.consume("=") {
				value = p.parseValue()
			} else if p.ch != eof && !unicode.IsSpace(p.ch) && p.ch != '-' {
				p.errorf("unexpected %s, expected '=' or space", p.describe())
			}
			d.Attrs[attr] = value
		}

		if !p.consume("-->") {
			p.errorf("unexpected %s, expected '-->'", p.describe())
		}
		d.End = p.pos
		return d, true
	}

	return Directive{}, false
}

func (p *parser) errorf(format string, args ...any) {
	panic(&SyntaxError{
		Msg:  fmt.Sprintf(format, args...),
		Pos:  p.pos,
		Line: p.line,
		Col:  p.col,
	})
}

func (p *parser) describe() string {
	if p.ch == eof {
		return "end of input"
	}
	return strconv.QuoteRune(p.ch)
}

func (p *parser) decode() {
	if p.pos >= len(p.in) {
		p.ch = eof
		p.chw = 0
		return
	}
	p.ch, p.chw = utf8.DecodeRune(p.in[p.pos:])
	if p.ch == utf8.RuneError && p.chw == 1 {
		p.errorf("invalid UTF-8")
	}
}

func (p *parser) next() {
	if p.ch == eof {
		return
	}
	if p.ch == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos += p.chw
	p.decode()
}

func (p *parser) consumeSpaces() {
	for unicode.IsSpace(p.ch) {
		p.next()
	}
}

func (p *parser) consume(s string) bool {
	if !p.isnext(s) {
		return false
	}
	for range s {
		p.next()
	}
	return true
}

func (p *parser) isnext(s string) bool {
	return bytes.HasPrefix(p.in[p.pos:], []byte(s))
}

func (p *parser) parseIdent() string {
	if !unicode.IsLetter(p.ch) {
		p.errorf("unexpected %s, expected identifier", p.describe())
	}
	pos := p.pos
	for unicode.IsLetter(p.ch) || unicode.IsDigit(p.ch) || p.ch == '-' || p.ch == '_' {
		// A trailing '-' belongs to the end of the comment.
		if p.isnext("-->") {
			break
		}
		p.next()
	}
	return string(p.in[pos:p.pos])
}

func (p *parser) parseValue() string {
	if p.ch != '"' {
		p.errorf("unexpected %s, expected '\"'", p.describe())
	}

	if p.consume(`"""`) {
		var sb strings.Builder
		for !p.isnext(`"""`) {
			switch p.ch {
			case eof:
				p.errorf("unterminated tri-quoted string")
			case '\n':
				sb.WriteRune('\n')
				p.consumeSpaces()
			default:
				sb.WriteRune(p.ch)
				p.next()
			}
		}
		p.consume(`"""`)
		return sb.String()
	}

	p.next()
	pos := p.pos
	for p.ch != '"' {
		if p.ch == eof || p.ch == '\n' {
			p.errorf("unterminated string")
		}
		p.next()
	}
	v := string(p.in[pos:p.pos])
	p.next()
	return v
}
