package inline

import "fmt"

// Granularity selects the unit size for inline diffs.
type Granularity int

const (
	Word Granularity = iota // Runs of whitespace, runs of [A-Za-z0-9_] and single other characters
	Char                    // Single code points
)

func (g Granularity) String() string {
	switch g {
	case Word:
		return "word"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// ParseGranularity parses "word" or "char".
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "word":
		return Word, nil
	case "char":
		return Char, nil
	default:
		return 0, fmt.Errorf("unknown granularity %q, want \"word\" or \"char\"", s)
	}
}

func (g Granularity) MarshalText() ([]byte, error) {
	switch g {
	case Word, Char:
		return []byte(g.String()), nil
	default:
		return nil, fmt.Errorf("invalid granularity %d", int(g))
	}
}

func (g *Granularity) UnmarshalText(text []byte) error {
	v, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Options configure how two lines are compared. The zero value compares words exactly.
//
// Options only influence which tokens are considered equal, the text in the resulting segments is
// always the original text.
type Options struct {
	IgnoreWhitespace bool        // Any two whitespace tokens are equal
	IgnoreCase       bool        // Non-whitespace tokens are compared case folded
	Granularity      Granularity // Unit size
}
