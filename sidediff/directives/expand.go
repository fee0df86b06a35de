package directives

import (
	"bytes"
	"fmt"
)

// Expand replaces every directive in data with the output of fn for it. The input is returned
// unchanged if it has no directives.
func Expand(data []byte, fn func(d *Directive) ([]byte, error)) ([]byte, error) {
	dirs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directives: %w", err)
	}

	if len(dirs) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	pos := 0
	for i := range dirs {
		dir := &dirs[i]
		buf.Write(data[pos:dir.Pos])
		b, err := fn(dir)
		if err != nil {
			return nil, fmt.Errorf("%s [%d]: %w", dir.Name, i+1, err)
		}
		buf.Write(b)
		pos = dir.End
	}
	buf.Write(data[pos:])
	return buf.Bytes(), nil
}
