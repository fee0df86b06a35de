// Package admonitions is a goldmark extension for paragraphs that start with a label like
// "NOTE: " or "WARNING: ". They are rendered as a box with a title.
package admonitions

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Label is a word that turns a paragraph into an admonition.
type Label struct {
	Name  string // Upper case ASCII letters, e.g. "NOTE"
	Title string // Rendered as the title of the box
}

// Defaults are the labels that are recognized without configuration.
var Defaults = []Label{
	{"NOTE", "Note"},
	{"TIP", "Tip"},
	{"WARNING", "Warning"},
}

// ParseLabels parses a comma separated list of NAME=Title pairs.
func ParseLabels(s string) ([]Label, error) {
	var ret []Label
	for field := range strings.SplitSeq(s, ",") {
		name, title, ok := strings.Cut(field, "=")
		name, title = strings.TrimSpace(name), strings.TrimSpace(title)
		switch {
		case !ok || title == "":
			return nil, fmt.Errorf("invalid label %q, expected NAME=Title", strings.TrimSpace(field))
		case !validName(name):
			return nil, fmt.Errorf("invalid label name %q, expected upper case letters", name)
		}
		ret = append(ret, Label{name, title})
	}
	return ret, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := range len(name) {
		if name[i] < 'A' || name[i] > 'Z' {
			return false
		}
	}
	return true
}

// New returns an extension recognizing labels. A later label replaces an earlier one with the
// same name.
func New(labels ...Label) goldmark.Extender {
	titles := make(map[string]string, len(labels))
	for _, l := range labels {
		titles[l.Name] = l.Title
	}
	return &extension{titles: titles}
}

// Node is a paragraph block started by a label. Its children are the paragraph's content.
type Node struct {
	ast.BaseBlock
	Label string
	Title string
}

var Kind = ast.NewNodeKind("Admonition")

func (n *Node) Kind() ast.NodeKind { return Kind }

func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Label": n.Label, "Title": n.Title}, nil)
}

type extension struct {
	titles map[string]string
}

func (e *extension) Extend(m goldmark.Markdown) {
	var trigger []byte
	for name := range e.titles {
		trigger = append(trigger, name[0])
	}
	slices.Sort(trigger)
	trigger = slices.Compact(trigger)

	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&blockParser{titles: e.titles, trigger: trigger}, 999),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&nodeRenderer{}, 500),
		),
	)
}

type blockParser struct {
	titles  map[string]string
	trigger []byte
}

var _ parser.BlockParser = (*blockParser)(nil)

func (p *blockParser) Trigger() []byte { return p.trigger }

func (p *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}

	rest := line[pos:]
	end := bytes.Index(rest, []byte(": "))
	if end <= 0 {
		return nil, parser.NoChildren
	}
	name := string(rest[:end])
	title, ok := p.titles[name]
	if !ok {
		return nil, parser.NoChildren
	}
	reader.Advance(pos + end + len(": "))

	return &Node{Label: name, Title: title}, parser.HasChildren
}

func (p *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}
	reader.Advance(reader.LineOffset())
	return parser.Continue | parser.HasChildren
}

func (p *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *blockParser) CanInterruptParagraph() bool { return false }

func (p *blockParser) CanAcceptIndentedLine() bool { return false }

type nodeRenderer struct{}

var _ renderer.NodeRenderer = (*nodeRenderer)(nil)

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(Kind, r.render)
}

func (r *nodeRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Node)
	if !entering {
		w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}
	fmt.Fprintf(w, `<div class="admonition %s"><p class="admonition-title">`, strings.ToLower(n.Label))
	w.Write(util.EscapeHTML([]byte(n.Title)))
	w.WriteString("</p>")
	return ast.WalkContinue, nil
}
