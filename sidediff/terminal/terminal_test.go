package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidebyside"
)

func eq(s string) []inline.Segment { return []inline.Segment{{Op: inline.SegmentEqual, Text: s}} }

func side(lineNo int, segs ...inline.Segment) sidebyside.Side {
	var text strings.Builder
	for _, seg := range segs {
		text.WriteString(seg.Text)
	}
	return sidebyside.Side{Present: true, LineNo: lineNo, Text: text.String(), Segments: segs}
}

func render(t *testing.T, rows []sidebyside.Row, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, rows, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRender(t *testing.T) {
	rows := sidebyside.Compare("a\nfoo bar\n", "a\nfoo baz\nnew\n", inline.Options{})

	// Four line numbers with a width of one and " " after each leave 30-4-3 = 23 columns, 11 per
	// side.
	sp := func(n int) string { return strings.Repeat(" ", n) }
	want := strings.Join([]string{
		"1 a" + sp(10) + sp(3) + "1 a",
		"2 foo bar" + sp(4) + " | 2 foo baz",
		sp(2) + sp(11) + " > 3 new",
		"3" + sp(1+11+3) + "4",
		"",
	}, "\n")

	got := render(t, rows, Options{Width: 30, Context: -1})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(...) is different (-want, +got):\n%s", diff)
	}
}

func TestRender_Truncate(t *testing.T) {
	rows := []sidebyside.Row{
		{
			Op:    sidebyside.RowReplace,
			Left:  side(1, inline.Segment{Op: inline.SegmentDelete, Text: "abcdefghij"}),
			Right: side(1, eq("\tx")...),
		},
		{
			Op:    sidebyside.RowEqual,
			Left:  side(2, eq("日本語テキスト")...),
			Right: side(2, eq("日本語テキスト")...),
		},
		{
			Op:    sidebyside.RowDelete,
			Left:  side(3, eq("a\x1bb")...),
			Right: sidebyside.Side{},
		},
	}

	// Width 21 leaves (21-4-3)/2 = 7 columns per side.
	want := strings.Join([]string{
		"1 abcdef… | 1     x",
		"2 日本語…   2 日本語…",
		"3 a�b     <",
		"",
	}, "\n")

	got := render(t, rows, Options{Width: 21, Context: -1})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(...) is different (-want, +got):\n%s", diff)
	}
}

func TestRender_Graphemes(t *testing.T) {
	text := strings.Repeat("e\u0301", 9)
	rows := []sidebyside.Row{{Op: sidebyside.RowEqual, Left: side(1, eq(text)...), Right: side(1, eq(text)...)}}

	cut := strings.Repeat("e\u0301", 6) + "…"
	want := "1 " + cut + "   1 " + cut + "\n"
	got := render(t, rows, Options{Width: 21, Context: -1})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(...) is different (-want, +got):\n%s", diff)
	}
}

func TestRender_Color(t *testing.T) {
	rows := sidebyside.Compare("foo bar\n", "foo baz\n", inline.Options{})
	got := render(t, rows, Options{Width: 40, Color: true, Context: -1, LeftName: "old", RightName: "new"})

	for _, want := range []string{
		cyanBold + "  old",
		blackFG + pinkLine + "foo " + pinkSpan + "bar" + pinkLine,
		blackFG + greenLine + "foo " + greenSpan + "baz" + greenLine,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render(...) = %q, want it to contain %q", got, want)
		}
	}
	if n, m := strings.Count(got, "\x1b[48"), strings.Count(got, reset); m < 2 || n == 0 {
		t.Errorf("Render(...) = %q doesn't reset colors", got)
	}
}

func TestRender_Header(t *testing.T) {
	rows := sidebyside.Compare("x", "y", inline.Options{})
	got := render(t, rows, Options{Width: 21, LeftName: "left.txt", RightName: "right.txt"})
	sp := func(n int) string { return strings.Repeat(" ", n) }
	want := sp(2) + "left.t…" + sp(3) + sp(2) + "right.…\n" +
		"1 x" + sp(6) + " | 1 y\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(...) is different (-want, +got):\n%s", diff)
	}
}

func TestCollapse(t *testing.T) {
	var rows []sidebyside.Row
	for range 10 {
		rows = append(rows, sidebyside.Row{Op: sidebyside.RowEqual})
	}
	rows = append(rows, sidebyside.Row{Op: sidebyside.RowReplace})
	for range 10 {
		rows = append(rows, sidebyside.Row{Op: sidebyside.RowEqual})
	}
	rows = append(rows, sidebyside.Row{Op: sidebyside.RowInsert})
	for range 4 {
		rows = append(rows, sidebyside.Row{Op: sidebyside.RowEqual})
	}
	rows = append(rows, sidebyside.Row{Op: sidebyside.RowDelete})

	summary := func(items []item) []string {
		var ret []string
		for _, it := range items {
			if it.skipped > 0 {
				ret = append(ret, "…"+strings.Repeat("-", it.skipped))
			} else {
				ret = append(ret, it.row.Op.String())
			}
		}
		return ret
	}

	tests := []struct {
		context int
		want    []string
	}{
		{
			context: 2,
			want: []string{
				"…--------", "equal", "equal", "replace",
				"equal", "equal", "…------", "equal", "equal", "insert",
				"equal", "equal", "equal", "equal", "delete",
			},
		},
		{
			context: 0,
			want: []string{
				"…----------", "replace", "…----------", "insert", "…----", "delete",
			},
		},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, summary(collapse(rows, tt.context))); diff != "" {
			t.Errorf("collapse(rows, %d) is different (-want, +got):\n%s", tt.context, diff)
		}
	}

	if got := collapse(rows, -1); len(got) != len(rows) {
		t.Errorf("collapse(rows, -1) has %d items, want %d", len(got), len(rows))
	}
}

func TestRender_Context(t *testing.T) {
	rows := sidebyside.Compare("1\n2\n3\n4\n5\nx\n", "1\n2\n3\n4\n5\ny\n", inline.Options{})
	got := render(t, rows, Options{Width: 30, Context: 1})
	sp := func(n int) string { return strings.Repeat(" ", n) }
	want := strings.Join([]string{
		"⋯ 4 unchanged lines",
		"5 5" + sp(10) + sp(3) + "5 5",
		"6 x" + sp(10) + " | 6 y",
		"7" + sp(1+11+3) + "7",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(...) is different (-want, +got):\n%s", diff)
	}
}
