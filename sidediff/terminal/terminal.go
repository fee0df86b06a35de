// Package terminal renders side-by-side comparisons for terminals.
//
// Each row is printed as two columns of equal width with line numbers. The columns are separated
// by a marker like sdiff(1) does: "|" for replaced lines, "<" for deleted lines, ">" for inserted
// lines and nothing for equal lines. With colors enabled, changed lines and the changes within
// them are highlighted with background colors.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidebyside"
)

const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	pinkLine  = "\x1b[48;5;224m" // deleted lines
	pinkSpan  = "\x1b[48;5;217m" // deleted text within a line
	greenLine = "\x1b[48;5;194m" // inserted lines
	greenSpan = "\x1b[48;5;114m" // inserted text within a line
	cyanBold  = "\x1b[1;36m"
)

const (
	DefaultWidth = 80
	minColumn    = 8
	tabWidth     = 4
	ellipsis     = "…"
)

type Options struct {
	Width               int  // Total width, DefaultWidth if not positive
	Color               bool // Use ANSI colors
	Context             int  // Unchanged lines to keep around changes; negative keeps all
	LeftName, RightName string
}

// Render writes rows to w.
func Render(w io.Writer, rows []sidebyside.Row, opts Options) error {
	r := newRenderer(rows, opts)
	bw := bufio.NewWriter(w)
	if opts.LeftName != "" || opts.RightName != "" {
		r.header(bw)
	}
	for _, it := range collapse(rows, opts.Context) {
		if it.skipped > 0 {
			r.marker(bw, it.skipped)
			continue
		}
		r.row(bw, it.row)
	}
	return bw.Flush()
}

// DetectWidth returns the width of the terminal f is connected to, or DefaultWidth.
func DetectWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// UseColor decides whether to use colors for mode "auto", "always" or "never". In auto mode,
// colors are used if f is a terminal and NO_COLOR isn't set.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd()))
	}
}

type item struct {
	row     *sidebyside.Row
	skipped int
}

// collapse replaces runs of equal rows with a marker item. Only context rows next to a change
// are kept; a run is left alone if it's not longer than the rows it would keep anyway.
func collapse(rows []sidebyside.Row, context int) []item {
	items := make([]item, 0, len(rows))
	for i := 0; i < len(rows); {
		if context < 0 || rows[i].Op != sidebyside.RowEqual {
			items = append(items, item{row: &rows[i]})
			i++
			continue
		}
		j := i
		for j < len(rows) && rows[j].Op == sidebyside.RowEqual {
			j++
		}
		lead, trail := context, context
		if i == 0 {
			lead = 0
		}
		if j == len(rows) {
			trail = 0
		}
		if n := j - i; n > lead+trail {
			for k := i; k < i+lead; k++ {
				items = append(items, item{row: &rows[k]})
			}
			items = append(items, item{skipped: n - lead - trail})
			for k := j - trail; k < j; k++ {
				items = append(items, item{row: &rows[k]})
			}
		} else {
			for k := i; k < j; k++ {
				items = append(items, item{row: &rows[k]})
			}
		}
		i = j
	}
	return items
}

type renderer struct {
	opts     Options
	cond     *runewidth.Condition
	numWidth int
	colWidth int
}

func newRenderer(rows []sidebyside.Row, opts Options) *renderer {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	maxNo := 0
	for _, row := range rows {
		maxNo = max(maxNo, row.Left.LineNo, row.Right.LineNo)
	}
	numWidth := len(strconv.Itoa(maxNo))

	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	return &renderer{
		opts:     opts,
		cond:     cond,
		numWidth: numWidth,
		colWidth: max((width-2*(numWidth+1)-3)/2, minColumn),
	}
}

func (r *renderer) header(w *bufio.Writer) {
	var sb strings.Builder
	if r.opts.Color {
		sb.WriteString(cyanBold)
	}
	blank := strings.Repeat(" ", r.numWidth+1)
	sb.WriteString(blank)
	r.cell(&sb, []inline.Segment{{Op: inline.SegmentEqual, Text: r.opts.LeftName}}, "", "", true)
	sb.WriteString("   ")
	sb.WriteString(blank)
	r.cell(&sb, []inline.Segment{{Op: inline.SegmentEqual, Text: r.opts.RightName}}, "", "", false)
	if r.opts.Color {
		sb.WriteString(reset)
	}
	r.writeLine(w, sb.String())
}

func (r *renderer) marker(w *bufio.Writer, n int) {
	s := fmt.Sprintf("⋯ %d unchanged lines", n)
	if n == 1 {
		s = "⋯ 1 unchanged line"
	}
	if r.opts.Color {
		s = cyanBold + s + reset
	}
	r.writeLine(w, s)
}

func (r *renderer) row(w *bufio.Writer, row *sidebyside.Row) {
	var leftBase, leftSpan, rightBase, rightSpan, sep string
	switch row.Op {
	case sidebyside.RowEqual:
		sep = "   "
	case sidebyside.RowReplace:
		sep = " | "
		leftBase, leftSpan = pinkLine, pinkSpan
		rightBase, rightSpan = greenLine, greenSpan
	case sidebyside.RowDelete:
		sep = " < "
		leftBase, leftSpan = pinkLine, pinkSpan
	case sidebyside.RowInsert:
		sep = " > "
		rightBase, rightSpan = greenLine, greenSpan
	}
	if !r.opts.Color {
		leftBase, leftSpan, rightBase, rightSpan = "", "", "", ""
	}

	var sb strings.Builder
	r.lineNo(&sb, row.Left)
	r.cell(&sb, segments(row.Left), leftBase, leftSpan, true)
	sb.WriteString(sep)
	r.lineNo(&sb, row.Right)
	r.cell(&sb, segments(row.Right), rightBase, rightSpan, false)
	r.writeLine(w, sb.String())
}

func (r *renderer) writeLine(w *bufio.Writer, line string) {
	if !r.opts.Color {
		line = strings.TrimRight(line, " ")
	}
	w.WriteString(line)
	w.WriteByte('\n')
}

func segments(s sidebyside.Side) []inline.Segment {
	if !s.Present {
		return nil
	}
	if len(s.Segments) == 0 {
		return []inline.Segment{{Op: inline.SegmentEqual, Text: s.Text}}
	}
	return s.Segments
}

func (r *renderer) lineNo(sb *strings.Builder, s sidebyside.Side) {
	if s.Present {
		fmt.Fprintf(sb, "%*d ", r.numWidth, s.LineNo)
	} else {
		sb.WriteString(strings.Repeat(" ", r.numWidth+1))
	}
}

// cell writes the segments of a side into a column. Tabs are expanded, control characters are
// replaced and text wider than the column is cut off with an ellipsis. base and span are the
// background colors of the line and of the changes within it; the cell is padded to the
// column width if pad is set or a background color is used.
func (r *renderer) cell(sb *strings.Builder, segs []inline.Segment, base, span string, pad bool) {
	limit := r.colWidth
	if r.width(segs) > limit {
		limit--
	}

	if base != "" {
		sb.WriteString(blackFG)
		sb.WriteString(base)
	}
	width := 0
	truncated := false
loop:
	for _, seg := range segs {
		changed := span != "" && (seg.Op == inline.SegmentInsert || seg.Op == inline.SegmentDelete)
		if changed {
			sb.WriteString(span)
		}
		for g := graphemes.FromString(seg.Text); g.Next(); {
			text, w := r.glyph(g.Value(), width)
			if width+w > limit {
				truncated = true
				if changed {
					sb.WriteString(base)
				}
				break loop
			}
			sb.WriteString(text)
			width += w
		}
		if changed {
			sb.WriteString(base)
		}
	}
	if truncated {
		sb.WriteString(ellipsis)
		width++
	}
	if pad || base != "" {
		sb.WriteString(strings.Repeat(" ", max(r.colWidth-width, 0)))
	}
	if base != "" {
		sb.WriteString(reset)
	}
}

// width returns the display width of the segments.
func (r *renderer) width(segs []inline.Segment) int {
	width := 0
	for _, seg := range segs {
		for g := graphemes.FromString(seg.Text); g.Next(); {
			_, w := r.glyph(g.Value(), width)
			width += w
		}
	}
	return width
}

// glyph returns what to print for the grapheme cluster g at column col and its width.
func (r *renderer) glyph(g string, col int) (string, int) {
	c, size := utf8.DecodeRuneInString(g)
	switch {
	case g == "\t":
		n := tabWidth - col%tabWidth
		return strings.Repeat(" ", n), n
	case size == len(g) && unicode.IsControl(c):
		return "�", 1
	default:
		return g, r.cond.StringWidth(g)
	}
}
