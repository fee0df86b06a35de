// Package inline compares two lines token by token and collapses the result into highlighted
// segments for each side.
package inline

import (
	"fmt"

	"sidediff.znkr.io/diff"
)

// SegmentOp describes a segment of one side of an inline diff.
type SegmentOp int

const (
	SegmentEqual  SegmentOp = iota // Text present on both sides
	SegmentInsert                  // Text only present on the right side
	SegmentDelete                  // Text only present on the left side
	SegmentBlank                   // Placeholder for a side without any text
)

func (op SegmentOp) String() string {
	switch op {
	case SegmentEqual:
		return "equal"
	case SegmentInsert:
		return "insert"
	case SegmentDelete:
		return "delete"
	case SegmentBlank:
		return "blank"
	default:
		return fmt.Sprintf("SegmentOp(%d)", int(op))
	}
}

func (op SegmentOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// Segment is a piece of one line. Text is a substring of that line, unmodified by any option.
// Blank segments have no text.
type Segment struct {
	Op   SegmentOp `json:"op"`
	Text string    `json:"text"`
}

// Blank is the segment list returned for a side that has no text to show at all. It's distinct
// from an equal segment with empty text, which is what an empty line compared to itself yields.
func Blank() []Segment { return []Segment{{Op: SegmentBlank}} }

// Diff compares the lines a and b and returns the segments for the left (a) and the right (b)
// side. The left side consists of equal and delete segments, the right side of equal and insert
// segments. Adjacent segments of the same kind are merged and concatenating the text of all
// segments of a side yields the original line. A side that ends up without any segment gets
// [Blank].
//
// Identical lines are not tokenized at all and yield a single equal segment per side.
func Diff(a, b string, opts Options) (left, right []Segment) {
	if a == b {
		return []Segment{{SegmentEqual, a}}, []Segment{{SegmentEqual, b}}
	}

	m := newMatcher(opts)
	edits := diff.Diff(m.tokens(a), m.tokens(b), m.equal)

	// Tokens of a side are adjacent substrings of their line, so segments are tracked as byte
	// ranges and only sliced out at the end.
	var ls, rs segmenter
	for _, e := range edits {
		switch e.Op {
		case diff.Match:
			ls.add(SegmentEqual, len(e.X.text))
			rs.add(SegmentEqual, len(e.Y.text))
		case diff.Delete:
			ls.add(SegmentDelete, len(e.X.text))
		case diff.Insert:
			rs.add(SegmentInsert, len(e.Y.text))
		}
	}
	return ls.segments(a), rs.segments(b)
}

type span struct {
	op         SegmentOp
	start, end int
}

type segmenter struct {
	spans []span
	pos   int
}

func (s *segmenter) add(op SegmentOp, n int) {
	if k := len(s.spans); k > 0 && s.spans[k-1].op == op {
		s.spans[k-1].end += n
	} else {
		s.spans = append(s.spans, span{op, s.pos, s.pos + n})
	}
	s.pos += n
}

func (s *segmenter) segments(line string) []Segment {
	if len(s.spans) == 0 {
		return Blank()
	}
	segs := make([]Segment, 0, len(s.spans))
	for _, sp := range s.spans {
		segs = append(segs, Segment{sp.op, line[sp.start:sp.end]})
	}
	return segs
}
