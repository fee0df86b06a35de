package report

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidediff/report/admonitions"
)

type metadata struct {
	Title       string
	Options     inline.Options       // Defaults for all comparisons in the document
	Admonitions []admonitions.Label // Added to or replacing the default labels
}

// parseMetadata extracts the metadata header from in, if any. The metadata header has the
// following format
//
//	# <title>
//	:<key>: <value>
//	:<key>: <value>
//
// Lines ending in a backslash continue on the next line. Recognized keys are ignore-case,
// ignore-whitespace and granularity, they override the options in defaults. The key admonitions
// takes a list of NAME=Title pairs. It returns the parsed metadata and everything after the
// header.
func parseMetadata(in []byte, defaults inline.Options) (*metadata, []byte, error) {
	meta := &metadata{Options: defaults}

	if len(in) > 2 && in[0] == '#' && in[1] == ' ' {
		eol := slices.Index(in, '\n')
		if eol < 0 {
			eol = len(in)
		}
		meta.Title = strings.TrimSpace(string(in[1:eol]))
		in = in[min(eol+1, len(in)):]
	}

	fields := make(map[string]string)
	for len(in) > 0 && in[0] == ':' {
		pos := 1
		end := pos + slices.Index(in[pos:], ':')
		if end < pos {
			break
		}

		key := string(in[pos:end])

		var val strings.Builder
		for {
			pos = end + 1
			if pos >= len(in) {
				break
			}
			if eol := slices.Index(in[pos:], '\n'); eol < 0 {
				end = len(in)
			} else {
				end = pos + eol
			}
			if end > pos && in[end-1] == '\\' {
				val.Write(in[pos : end-1])
				val.WriteByte('\n')
			} else {
				val.Write(in[pos:end])
				break
			}
		}
		if end < len(in) {
			in = in[end+1:]
		} else {
			in = nil
		}

		fields[key] = strings.TrimSpace(val.String())
	}

	for len(in) > 0 && in[0] == '\n' {
		in = in[1:]
	}

	parseBool := func(key string, dst *bool) error {
		v, ok := fields[key]
		if !ok {
			return nil
		}
		delete(fields, key)
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: invalid boolean %q", key, v)
		}
		*dst = b
		return nil
	}
	if err := parseBool("ignore-case", &meta.Options.IgnoreCase); err != nil {
		return nil, nil, err
	}
	if err := parseBool("ignore-whitespace", &meta.Options.IgnoreWhitespace); err != nil {
		return nil, nil, err
	}
	if v, ok := fields["granularity"]; ok {
		delete(fields, "granularity")
		g, err := inline.ParseGranularity(v)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing granularity: %v", err)
		}
		meta.Options.Granularity = g
	}
	if v, ok := fields["admonitions"]; ok {
		delete(fields, "admonitions")
		labels, err := admonitions.ParseLabels(v)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing admonitions: %v", err)
		}
		meta.Admonitions = labels
	}

	if len(fields) > 0 {
		keys := slices.Sorted(maps.Keys(fields))
		return nil, nil, fmt.Errorf("unknown metadata keys: %s", strings.Join(keys, ", "))
	}
	return meta, in, nil
}
