package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidebyside"
	"sidediff.znkr.io/sidediff/config"
	"sidediff.znkr.io/sidediff/highlight"
	"sidediff.znkr.io/sidediff/input"
	"sidediff.znkr.io/sidediff/page"
	"sidediff.znkr.io/sidediff/server"
	"sidediff.znkr.io/sidediff/terminal"
)

// comparison is the result of comparing two inputs.
type comparison struct {
	left, right input.Source
	opts        inline.Options
	rows        []sidebyside.Row
}

// compare reads both inputs and compares them. Standard input is read from stdin.
func compare(stdin io.Reader, leftPath, rightPath string, opts inline.Options, force bool) (*comparison, error) {
	if leftPath == input.Stdin && rightPath == input.Stdin {
		return nil, errors.New("standard input can only be used for one side")
	}

	read := func(path string) (input.Source, error) {
		if path == input.Stdin {
			return input.ReadFrom(path, stdin)
		}
		return input.Read(path)
	}
	left, err := read(leftPath)
	if err != nil {
		return nil, err
	}
	right, err := read(rightPath)
	if err != nil {
		return nil, err
	}
	if !force {
		if err := input.CheckCompatible(left, right); err != nil {
			return nil, fmt.Errorf("%w (use --force to compare anyway)", err)
		}
	}

	return &comparison{
		left:  left,
		right: right,
		opts:  opts,
		rows:  sidebyside.Compare(left.Text, right.Text, opts),
	}, nil
}

func displayName(s input.Source) string {
	if s.Name == input.Stdin {
		return "(stdin)"
	}
	return s.Name
}

func (c *comparison) stats() sidebyside.Stats { return sidebyside.Summarize(c.rows) }

func (c *comparison) pageData(live bool) page.Data {
	lang := highlight.LangFromFilename(c.left.Name)
	if !c.left.IsFile() {
		lang = highlight.LangFromFilename(c.right.Name)
	}
	return page.Data{
		Title:     fmt.Sprintf("%s ↔ %s", displayName(c.left), displayName(c.right)),
		LeftName:  displayName(c.left),
		RightName: displayName(c.right),
		Rows:      c.rows,
		Options:   c.opts,
		Lang:      lang,
		Live:      live,
	}
}

func (c *comparison) html(live bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Render(&buf, c.pageData(live)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jsonResult struct {
	Left             string             `json:"left"`
	Right            string             `json:"right"`
	Granularity      inline.Granularity `json:"granularity"`
	IgnoreCase       bool               `json:"ignore_case"`
	IgnoreWhitespace bool               `json:"ignore_whitespace"`
	Stats            sidebyside.Stats   `json:"stats"`
	Rows             []sidebyside.Row   `json:"rows"`
}

func (c *comparison) json() ([]byte, error) {
	rows := c.rows
	if rows == nil {
		rows = []sidebyside.Row{}
	}
	b, err := json.MarshalIndent(jsonResult{
		Left:             displayName(c.left),
		Right:            displayName(c.right),
		Granularity:      c.opts.Granularity,
		IgnoreCase:       c.opts.IgnoreCase,
		IgnoreWhitespace: c.opts.IgnoreWhitespace,
		Stats:            c.stats(),
		Rows:             rows,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding rows: %v", err)
	}
	return append(b, '\n'), nil
}

// serverPage renders the live page and the rows it polls for.
func (c *comparison) serverPage() (*server.Page, error) {
	html, err := c.html(true)
	if err != nil {
		return nil, err
	}
	js, err := c.json()
	if err != nil {
		return nil, err
	}
	return &server.Page{HTML: html, JSON: js}, nil
}

func (c *comparison) text(w io.Writer, cfg config.Text) error {
	opts := terminal.Options{
		Width:     cfg.Width,
		Context:   cfg.Context,
		LeftName:  displayName(c.left),
		RightName: displayName(c.right),
	}
	if f, ok := w.(*os.File); ok {
		if opts.Width == 0 {
			opts.Width = terminal.DetectWidth(f)
		}
		opts.Color = terminal.UseColor(cfg.Color, f)
	} else {
		opts.Color = cfg.Color == "always"
	}
	return terminal.Render(w, c.rows, opts)
}

func runCompare(cmd *cobra.Command, opts *options, leftPath, rightPath string) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	c, err := compare(cmd.InOrStdin(), leftPath, rightPath, cfg.Compare.Options(), opts.force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		b, err := c.json()
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
	case "html":
		b, err := c.html(false)
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
	default:
		if err := c.text(out, cfg.Text); err != nil {
			return err
		}
	}

	if c.stats().Changed() {
		return errDifferences
	}
	return nil
}
