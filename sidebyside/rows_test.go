package sidebyside

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"sidediff.znkr.io/diff"
)

func present(lineNo int, text string) Side { return Side{Present: true, LineNo: lineNo, Text: text} }

func TestAlign(t *testing.T) {
	m := func(x, y string) diff.Edit[string] { return diff.Edit[string]{Op: diff.Match, X: x, Y: y} }
	d := func(x string) diff.Edit[string] { return diff.Edit[string]{Op: diff.Delete, X: x} }
	i := func(y string) diff.Edit[string] { return diff.Edit[string]{Op: diff.Insert, Y: y} }

	tests := []struct {
		name  string
		edits []diff.Edit[string]
		want  []Row
	}{
		{
			name:  "empty",
			edits: nil,
			want:  []Row{},
		},
		{
			name:  "replace_then_insert",
			edits: []diff.Edit[string]{m("a", "a"), d("b"), i("x"), i("y"), m("c", "c")},
			want: []Row{
				{RowEqual, present(1, "a"), present(1, "a")},
				{RowReplace, present(2, "b"), present(2, "x")},
				{RowInsert, Side{}, present(3, "y")},
				{RowEqual, present(3, "c"), present(4, "c")},
			},
		},
		{
			name:  "interleaved_block",
			edits: []diff.Edit[string]{i("q"), d("p"), i("s"), d("r"), d("t")},
			want: []Row{
				{RowReplace, present(1, "p"), present(1, "q")},
				{RowReplace, present(2, "r"), present(2, "s")},
				{RowDelete, present(3, "t"), Side{}},
			},
		},
		{
			name:  "separate_blocks",
			edits: []diff.Edit[string]{d("a"), m("b", "B"), i("c")},
			want: []Row{
				{RowDelete, present(1, "a"), Side{}},
				{RowEqual, present(2, "b"), present(1, "B")},
				{RowInsert, Side{}, present(2, "c")},
			},
		},
		{
			name:  "only_inserts",
			edits: []diff.Edit[string]{i("a"), i("b")},
			want: []Row{
				{RowInsert, Side{}, present(1, "a")},
				{RowInsert, Side{}, present(2, "b")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.edits)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Align(...) result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestAlign_Engine(t *testing.T) {
	edits := diff.Edits([]string{"a", "b", "c"}, []string{"a", "x", "y", "c"})
	want := []Row{
		{RowEqual, present(1, "a"), present(1, "a")},
		{RowReplace, present(2, "b"), present(2, "x")},
		{RowInsert, Side{}, present(3, "y")},
		{RowEqual, present(3, "c"), present(4, "c")},
	}
	got := Align(edits)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Align(...) result is different (-want, +got):\n%s", diff)
	}

	if diff := cmp.Diff(got, Align(edits)); diff != "" {
		t.Errorf("second Align(...) is different from the first (-first, +second):\n%s", diff)
	}
}

func TestRowOpString(t *testing.T) {
	for op, want := range map[RowOp]string{
		RowEqual:   "equal",
		RowInsert:  "insert",
		RowDelete:  "delete",
		RowReplace: "replace",
		RowOp(-1):  "RowOp(-1)",
	} {
		if got := op.String(); got != want {
			t.Errorf("RowOp(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}
