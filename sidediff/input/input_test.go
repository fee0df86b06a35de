package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("héllo\nworld\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read(%q): %v", path, err)
	}
	want := Source{Name: path, Text: "héllo\nworld\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read(%q) is different (-want, +got):\n%s", path, diff)
	}

	got, err = Read("/dev/null")
	if err != nil {
		t.Fatalf("Read(/dev/null): %v", err)
	}
	if diff := cmp.Diff(Source{Name: "/dev/null"}, got); diff != "" {
		t.Errorf("Read(/dev/null) is different (-want, +got):\n%s", diff)
	}

	if _, err := Read(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Read of a missing file succeeded, want error")
	}
}

func TestReadFrom_Binary(t *testing.T) {
	for _, in := range []string{"\xff\xfe", "abc\x00def"} {
		_, err := ReadFrom("bin", strings.NewReader(in))
		if !errors.Is(err, ErrBinary) {
			t.Errorf("ReadFrom(%q) = %v, want ErrBinary", in, err)
		}
	}

	got, err := ReadFrom(Stdin, strings.NewReader("typed text"))
	if err != nil {
		t.Fatal(err)
	}
	if got.IsFile() {
		t.Error("stdin source reports to be a file")
	}
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		a, b    string
		wantErr bool
	}{
		{"old.go", "new.go", false},
		{"old.GO", "new.go", false},
		{"old.go", "new.py", true},
		{"Makefile", "new.py", false},
		{"old.go", Stdin, false},
		{"/dev/null", "new.go", false},
		{"dir.d/file", "other.txt", false},
		{"archive.tar.gz", "archive.tgz", true},
	}

	for _, tt := range tests {
		err := CheckCompatible(Source{Name: tt.a}, Source{Name: tt.b})
		if got := errors.Is(err, ErrMismatchedTypes); got != tt.wantErr {
			t.Errorf("CheckCompatible(%q, %q) = %v, want mismatch %v", tt.a, tt.b, err, tt.wantErr)
		}
	}

	err := CheckCompatible(Source{Name: "a.go"}, Source{Name: "b.rs"})
	if want := "cannot compare files of different types: left is .go, right is .rs"; err == nil || err.Error() != want {
		t.Errorf("CheckCompatible error = %v, want %q", err, want)
	}
}
