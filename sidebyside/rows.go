// Package sidebyside turns two texts into rows for a side-by-side view.
//
// Lines are compared exactly. Deleted and inserted lines are then paired by their position
// within a change block and every row with text on both sides is compared again, token by
// token, to highlight what changed within the line.
package sidebyside

import (
	"fmt"

	"sidediff.znkr.io/diff"
	"sidediff.znkr.io/inline"
)

// RowOp is the kind of a row.
type RowOp int

const (
	RowEqual   RowOp = iota // Same line on both sides
	RowInsert               // Line only on the right side
	RowDelete               // Line only on the left side
	RowReplace              // Different lines on both sides
)

func (op RowOp) String() string {
	switch op {
	case RowEqual:
		return "equal"
	case RowInsert:
		return "insert"
	case RowDelete:
		return "delete"
	case RowReplace:
		return "replace"
	default:
		return fmt.Sprintf("RowOp(%d)", int(op))
	}
}

func (op RowOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// Side is one side of a row.
type Side struct {
	Present  bool             `json:"present"`
	LineNo   int              `json:"line,omitempty"` // 1-based, 0 if not present
	Text     string           `json:"text"`
	Segments []inline.Segment `json:"segments,omitempty"`
}

// Row is a line of the side-by-side view.
type Row struct {
	Op    RowOp `json:"op"`
	Left  Side  `json:"left"`
	Right Side  `json:"right"`
}

// Align groups a line edit script into rows.
//
// Every match becomes an equal row. Within a block of consecutive deletions and insertions, the
// i-th deleted line is paired with the i-th inserted line; whatever is left over becomes a delete
// or insert row. The rows don't have any segments.
func Align(edits []diff.Edit[string]) []Row {
	rows := make([]Row, 0, len(edits))
	var xline, yline int
	var dels, ins []string
	for i := 0; i < len(edits); {
		if edits[i].Op == diff.Match {
			xline++
			yline++
			rows = append(rows, Row{
				Op:    RowEqual,
				Left:  Side{Present: true, LineNo: xline, Text: edits[i].X},
				Right: Side{Present: true, LineNo: yline, Text: edits[i].Y},
			})
			i++
			continue
		}

		dels, ins = dels[:0], ins[:0]
		for ; i < len(edits) && edits[i].Op != diff.Match; i++ {
			switch edits[i].Op {
			case diff.Delete:
				dels = append(dels, edits[i].X)
			case diff.Insert:
				ins = append(ins, edits[i].Y)
			}
		}
		for k := range max(len(dels), len(ins)) {
			var row Row
			if k < len(dels) {
				xline++
				row.Left = Side{Present: true, LineNo: xline, Text: dels[k]}
			}
			if k < len(ins) {
				yline++
				row.Right = Side{Present: true, LineNo: yline, Text: ins[k]}
			}
			switch {
			case row.Left.Present && row.Right.Present:
				row.Op = RowReplace
			case row.Left.Present:
				row.Op = RowDelete
			default:
				row.Op = RowInsert
			}
			rows = append(rows, row)
		}
	}
	return rows
}
