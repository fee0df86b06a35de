package sidebyside

import (
	"fmt"

	"sidediff.znkr.io/diff"
	"sidediff.znkr.io/inline"
)

// Compare compares the texts a and b and returns the rows of a side-by-side view with segments
// on every present side.
//
// Lines are always compared exactly, opts only affect the comparison within equal and replace
// rows. The lines of delete and insert rows become a single segment or, if empty, [inline.Blank].
func Compare(a, b string, opts inline.Options) []Row {
	rows := Align(diff.Edits(SplitLines(a), SplitLines(b)))
	for i := range rows {
		row := &rows[i]
		switch row.Op {
		case RowEqual, RowReplace:
			row.Left.Segments, row.Right.Segments = inline.Diff(row.Left.Text, row.Right.Text, opts)
		case RowDelete:
			row.Left.Segments = whole(inline.SegmentDelete, row.Left.Text)
		case RowInsert:
			row.Right.Segments = whole(inline.SegmentInsert, row.Right.Text)
		}
	}
	return rows
}

func whole(op inline.SegmentOp, line string) []inline.Segment {
	if line == "" {
		return inline.Blank()
	}
	return []inline.Segment{{Op: op, Text: line}}
}

// Stats counts rows by kind.
type Stats struct {
	Equal    int `json:"equal"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
	Replaced int `json:"replaced"`
}

// Summarize counts the rows by kind.
func Summarize(rows []Row) Stats {
	var s Stats
	for _, row := range rows {
		switch row.Op {
		case RowEqual:
			s.Equal++
		case RowInsert:
			s.Inserted++
		case RowDelete:
			s.Deleted++
		case RowReplace:
			s.Replaced++
		}
	}
	return s
}

// Changed reports whether there is at least one row that isn't equal.
func (s Stats) Changed() bool { return s.Inserted+s.Deleted+s.Replaced > 0 }

func (s Stats) String() string {
	return fmt.Sprintf("%d replaced, %d inserted, %d deleted, %d unchanged", s.Replaced, s.Inserted, s.Deleted, s.Equal)
}
