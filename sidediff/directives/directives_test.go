package directives

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Directive
	}{
		{
			name: "no_directives",
			in:   "there\nare\nno\ndirectives\nhere",
			want: nil,
		},
		{
			name: "empty_input",
			in:   "",
			want: nil,
		},
		{
			name: "regular_comment",
			in:   "<!-- this is a regular comment -->",
			want: nil,
		},
		{
			name: "multiple_directives",
			in:   "first <!--#sidediff a=\"a.go\" b=\"b.go\" -->\nsecond <!--#sidediff a=\"c.go\" b=\"d.go\" -->",
			want: []Directive{
				{Pos: 6, End: 41, Name: "sidediff", Attrs: map[string]string{"a": "a.go", "b": "b.go"}},
				{Pos: 49, End: 84, Name: "sidediff", Attrs: map[string]string{"a": "c.go", "b": "d.go"}},
			},
		},
		{
			name: "multiple_attrs",
			in:   `<!--#sidediff a="old.go" b="new.go" lang="go" granularity="char" -->`,
			want: []Directive{
				{
					Pos:  0,
					End:  68,
					Name: "sidediff",
					Attrs: map[string]string{
						"a":           "old.go",
						"b":           "new.go",
						"lang":        "go",
						"granularity": "char",
					},
				},
			},
		},
		{
			name: "flags",
			in:   `<!--#sidediff a="x" ignore-case ignore-whitespace-->`,
			want: []Directive{
				{
					Pos:  0,
					End:  52,
					Name: "sidediff",
					Attrs: map[string]string{
						"a":                 "x",
						"ignore-case":       "",
						"ignore-whitespace": "",
					},
				},
			},
		},
		{
			name: "adjacent",
			in:   `<!--#one --><!--#two -->`,
			want: []Directive{
				{Pos: 0, End: 12, Name: "one", Attrs: map[string]string{}},
				{Pos: 12, End: 24, Name: "two", Attrs: map[string]string{}},
			},
		},
		{
			name: "empty_attr_value",
			in:   `<!--#test attr="" -->`,
			want: []Directive{
				{Pos: 0, End: 21, Name: "test", Attrs: map[string]string{"attr": ""}},
			},
		},
		{
			name: "multibyte_prefix",
			in:   `größe <!--#x -->`,
			want: []Directive{
				{Pos: 8, End: 18, Name: "x", Attrs: map[string]string{}},
			},
		},
		{
			name: "tri_quoted",
			in:   "# Title\n<!--#meta\n\tsummary=\"\"\"\n\t\tmultiple\n\t\tlines\n\t\t\"\"\"\n-->\n",
			want: []Directive{
				{
					Pos:   8,
					End:   59,
					Name:  "meta",
					Attrs: map[string]string{"summary": "\nmultiple\nlines\n"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(...) is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{
			name:    "unterminated_string",
			in:      `<!--#test attr="unterminated -->`,
			wantErr: "unterminated string [1:33]",
		},
		{
			name:    "unterminated_string_newline",
			in:      "<!--#test\n  attr=\"x\n\" -->",
			wantErr: "unterminated string [2:10]",
		},
		{
			name:    "unterminated_tri_quoted_string",
			in:      `<!--#test attr="""unterminated`,
			wantErr: "unterminated tri-quoted string",
		},
		{
			name:    "value_without_equals",
			in:      `<!--#test attr "value" -->`,
			wantErr: `unexpected '"', expected '-->'`,
		},
		{
			name:    "missing_value_quote",
			in:      `<!--#test attr=value -->`,
			wantErr: `expected '"'`,
		},
		{
			name:    "missing_closing_tag",
			in:      `<!--#test attr="value"`,
			wantErr: "unexpected end of input, expected '-->'",
		},
		{
			name:    "duplicate_attr",
			in:      `<!--#test a="1" a="2" -->`,
			wantErr: `duplicate attribute "a"`,
		},
		{
			name:    "missing_name",
			in:      `<!--# -->`,
			wantErr: "expected identifier",
		},
		{
			name:    "invalid_utf8",
			in:      "abc\xff",
			wantErr: "invalid UTF-8 [1:4]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestBool(t *testing.T) {
	d := Directive{
		Attrs: map[string]string{
			"flag":  "",
			"yes":   "true",
			"no":    "false",
			"bogus": "maybe",
		},
	}

	tests := []struct {
		attr    string
		want    bool
		wantErr bool
	}{
		{attr: "flag", want: true},
		{attr: "yes", want: true},
		{attr: "no", want: false},
		{attr: "missing", want: false},
		{attr: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := d.Bool(tt.attr)
		if (err != nil) != tt.wantErr {
			t.Errorf("Bool(%q) returned error %v, want error: %t", tt.attr, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Bool(%q) = %t, want %t", tt.attr, got, tt.want)
		}
	}
}

func TestSyntaxError_Error(t *testing.T) {
	err := &SyntaxError{
		Msg:  "test error",
		Pos:  42,
		Line: 3,
		Col:  10,
	}
	want := "test error [3:10]"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestExpand(t *testing.T) {
	in := "a <!--#upper text=\"b\" --> c <!--#upper text=\"d\" -->"
	got, err := Expand([]byte(in), func(d *Directive) ([]byte, error) {
		return []byte(strings.ToUpper(d.Attrs["text"])), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("a B c D", string(got)); diff != "" {
		t.Errorf("Expand(...) is different (-want, +got):\n%s", diff)
	}

	plain := "no directives"
	got, err = Expand([]byte(plain), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != plain {
		t.Errorf("Expand(%q) = %q, want input unchanged", plain, got)
	}

	wantErr := errors.New("boom")
	_, err = Expand([]byte("<!--#x -->"), func(*Directive) ([]byte, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("Expand(...) returned %v, want %v", err, wantErr)
	}
}
