// Package config loads the persisted preferences of sidediff from a TOML file.
//
// The file is looked up at $SIDEDIFF_CONFIG or, if that isn't set, at sidediff/config.toml in
// the user's configuration directory:
//
//	[compare]
//	ignore_whitespace = false
//	ignore_case = false
//	granularity = "word"
//
//	[text]
//	color = "auto"
//	width = 0
//	context = -1
//
//	[serve]
//	addr = "localhost:8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"sidediff.znkr.io/inline"
)

// EnvVar names the environment variable that overrides the default config path.
const EnvVar = "SIDEDIFF_CONFIG"

type Config struct {
	Compare Compare `toml:"compare"`
	Text    Text    `toml:"text"`
	Serve   Serve   `toml:"serve"`
}

// Compare holds the comparison preferences.
type Compare struct {
	IgnoreWhitespace bool               `toml:"ignore_whitespace"`
	IgnoreCase       bool               `toml:"ignore_case"`
	Granularity      inline.Granularity `toml:"granularity"`
}

// Options returns the preferences as options for an inline diff.
func (c Compare) Options() inline.Options {
	return inline.Options{
		IgnoreWhitespace: c.IgnoreWhitespace,
		IgnoreCase:       c.IgnoreCase,
		Granularity:      c.Granularity,
	}
}

// Text configures terminal output.
type Text struct {
	Color   string `toml:"color"`   // auto, always or never
	Width   int    `toml:"width"`   // 0 detects the terminal width
	Context int    `toml:"context"` // unchanged lines around changes, negative shows all
}

// Serve configures the live view.
type Serve struct {
	Addr string `toml:"addr"`
}

var colorModes = []string{"auto", "always", "never"}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	return &Config{
		Compare: Compare{Granularity: inline.Word},
		Text:    Text{Color: "auto", Width: 0, Context: -1},
		Serve:   Serve{Addr: "localhost:8080"},
	}
}

// DefaultPath returns the path of the config file to use if none is given explicitly. It returns
// an empty string if there is no such path.
func DefaultPath() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sidediff", "config.toml")
}

// Load reads the config file at path on top of the defaults. If path is empty, [DefaultPath] is
// used and a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := false
	if path == "" {
		path = DefaultPath()
		optional = os.Getenv(EnvVar) == ""
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case optional && errors.Is(err, fs.ErrNotExist):
		return Default(), nil
	case err != nil:
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, fmt.Errorf("loading config %s: unknown keys %s", path, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return cfg, nil
}

// Validate checks that all values are within range.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(colorModes, c.Text.Color) {
		errs = append(errs, fmt.Errorf("text.color: unknown mode %q, want one of %s", c.Text.Color, strings.Join(colorModes, ", ")))
	}
	if c.Text.Width < 0 {
		errs = append(errs, fmt.Errorf("text.width: must not be negative, got %d", c.Text.Width))
	}
	if _, err := c.Compare.Granularity.MarshalText(); err != nil {
		errs = append(errs, fmt.Errorf("compare.granularity: %v", err))
	}
	if c.Serve.Addr == "" {
		errs = append(errs, errors.New("serve.addr: must not be empty"))
	}
	return errors.Join(errs...)
}

// Save writes the configuration to path, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %v", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening config file: %v", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %v", err)
	}
	return f.Close()
}
