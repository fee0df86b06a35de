// Package page renders side-by-side comparisons as HTML.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidebyside"
	"sidediff.znkr.io/sidediff/highlight"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Data is a comparison to render.
type Data struct {
	Title               string
	LeftName, RightName string
	Rows                []sidebyside.Row
	Options             inline.Options   // Only displayed, the rows are already compared
	Lang                highlight.Option // Lexer for syntax highlighting, may be nil
	Live                bool             // Reload the page when rows.json changes
}

type side struct {
	Class   string
	Present bool
	LineNo  int
	HTML    template.HTML
}

type row struct {
	Op          sidebyside.RowOp
	Left, Right side
}

type view struct {
	Title               string
	LeftName, RightName string
	Options             inline.Options
	Stats               sidebyside.Stats
	Rows                []row
	Live                bool
}

func newView(data Data) (*view, error) {
	hl := highlight.New(data.Lang)
	v := &view{
		Title:     data.Title,
		LeftName:  data.LeftName,
		RightName: data.RightName,
		Options:   data.Options,
		Stats:     sidebyside.Summarize(data.Rows),
		Rows:      make([]row, 0, len(data.Rows)),
		Live:      data.Live,
	}
	render := func(class string, s sidebyside.Side) (side, error) {
		ret := side{Class: class, Present: s.Present, LineNo: s.LineNo}
		if !s.Present {
			return ret, nil
		}
		var err error
		if ret.HTML, err = hl.Segments(s.Segments); err != nil {
			return side{}, fmt.Errorf("highlighting line %d: %v", s.LineNo, err)
		}
		return ret, nil
	}
	for _, r := range data.Rows {
		left, err := render("left", r.Left)
		if err != nil {
			return nil, err
		}
		right, err := render("right", r.Right)
		if err != nil {
			return nil, err
		}
		v.Rows = append(v.Rows, row{r.Op, left, right})
	}
	return v, nil
}

// Render writes a standalone HTML page for data.
func Render(w io.Writer, data Data) error {
	v, err := newView(data)
	if err != nil {
		return err
	}
	if err := templates.ExecuteTemplate(w, "page", v); err != nil {
		return fmt.Errorf("rendering page: %v", err)
	}
	return nil
}

// Fragment renders only the table of rows. It relies on the stylesheet of a page created by
// [Render] or [Report].
func Fragment(data Data) (template.HTML, error) {
	v, err := newView(data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "fragment", v); err != nil {
		return "", fmt.Errorf("rendering fragment: %v", err)
	}
	return template.HTML(buf.String()), nil
}

// ReportData is a rendered markdown document.
type ReportData struct {
	Title string
	TOC   template.HTML // Table of contents, may be empty
	Body  template.HTML
}

// Report writes a standalone HTML page for a report, using the same stylesheet as [Render].
func Report(w io.Writer, data ReportData) error {
	if err := templates.ExecuteTemplate(w, "report", data); err != nil {
		return fmt.Errorf("rendering report: %v", err)
	}
	return nil
}
