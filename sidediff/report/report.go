// Package report renders markdown documents with embedded side-by-side comparisons.
//
// A comparison is placed into the document with a directive naming the two files, relative to
// the directory of the document:
//
//	<!--#sidediff a="old.go" b="new.go" -->
//
// The directive accepts the attributes lang, granularity, ignore-case and ignore-whitespace to
// override the defaults of the document. Directives in code blocks are left alone.
package report

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidebyside"
	"sidediff.znkr.io/sidediff/directives"
	"sidediff.znkr.io/sidediff/highlight"
	"sidediff.znkr.io/sidediff/input"
	"sidediff.znkr.io/sidediff/page"
	"sidediff.znkr.io/sidediff/report/admonitions"
)

const defaultTitle = "Report"

var attrs = map[string]bool{
	"a":                 true,
	"b":                 true,
	"lang":              true,
	"granularity":       true,
	"ignore-case":       true,
	"ignore-whitespace": true,
}

// Render converts the markdown document src to a standalone HTML page. Files in directives are
// read relative to dir.
func Render(src []byte, dir string, defaults inline.Options) ([]byte, error) {
	meta, body, err := parseMetadata(src, defaults)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata: %v", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Footnote,
			extension.Table,
			admonitions.New(slices.Concat(admonitions.Defaults, meta.Admonitions)...),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	root := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("rendering markdown: %v", err)
	}

	tree, err := toc.Inspect(root, body)
	if err != nil {
		return nil, fmt.Errorf("building table of contents: %v", err)
	}
	var tocBuf bytes.Buffer
	if len(tree.Items) > 0 {
		if list := toc.RenderList(tree); list != nil {
			if err := md.Renderer().Render(&tocBuf, body, list); err != nil {
				return nil, fmt.Errorf("rendering table of contents: %v", err)
			}
		}
	}

	e := &expander{dir: dir, defaults: meta.Options}
	out, err := directives.Expand(buf.Bytes(), e.expand)
	if err != nil {
		return nil, err
	}

	var ret bytes.Buffer
	err = page.Report(&ret, page.ReportData{
		Title: cmp.Or(meta.Title, defaultTitle),
		TOC:   template.HTML(tocBuf.String()),
		Body:  template.HTML(out),
	})
	if err != nil {
		return nil, err
	}
	return ret.Bytes(), nil
}

type expander struct {
	dir      string
	defaults inline.Options
}

func (e *expander) expand(d *directives.Directive) ([]byte, error) {
	if d.Name != "sidediff" {
		return nil, fmt.Errorf("unknown directive: %s", d.Name)
	}
	for name := range d.Attrs {
		if !attrs[name] {
			return nil, fmt.Errorf("unknown attribute: %s", name)
		}
	}

	a, b := d.Attrs["a"], d.Attrs["b"]
	if a == "" || b == "" {
		return nil, errors.New("missing or empty a or b attribute")
	}
	left, err := e.read(a)
	if err != nil {
		return nil, err
	}
	right, err := e.read(b)
	if err != nil {
		return nil, err
	}

	opts, err := options(d, e.defaults)
	if err != nil {
		return nil, err
	}

	lang := highlight.LangFromFilename(a)
	if !left.IsFile() {
		lang = highlight.LangFromFilename(b)
	}
	if l, ok := d.Attrs["lang"]; ok {
		lang = highlight.Lang(l)
	}

	frag, err := page.Fragment(page.Data{
		LeftName:  a,
		RightName: b,
		Rows:      sidebyside.Compare(left.Text, right.Text, opts),
		Options:   opts,
		Lang:      lang,
	})
	if err != nil {
		return nil, err
	}
	return []byte(frag), nil
}

func (e *expander) read(name string) (input.Source, error) {
	if name == input.Stdin {
		return input.Source{}, errors.New("reports can't read from standard input")
	}
	path := name
	if name != input.DevNull && !filepath.IsAbs(name) {
		path = filepath.Join(e.dir, name)
	}
	src, err := input.Read(path)
	if err != nil {
		return input.Source{}, err
	}
	src.Name = name
	return src, nil
}

func options(d *directives.Directive, defaults inline.Options) (inline.Options, error) {
	opts := defaults
	if v, ok := d.Attrs["granularity"]; ok {
		g, err := inline.ParseGranularity(v)
		if err != nil {
			return inline.Options{}, err
		}
		opts.Granularity = g
	}
	for name, dst := range map[string]*bool{
		"ignore-case":       &opts.IgnoreCase,
		"ignore-whitespace": &opts.IgnoreWhitespace,
	} {
		if !d.HasAttr(name) {
			continue
		}
		v, err := d.Bool(name)
		if err != nil {
			return inline.Options{}, err
		}
		*dst = v
	}
	return opts, nil
}
