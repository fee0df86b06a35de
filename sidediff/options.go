package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sidediff.znkr.io/inline"
	"sidediff.znkr.io/sidediff/config"
)

var formats = []string{"text", "json", "html"}

// options holds the command line flags. Flags that are set override the config file.
type options struct {
	configPath       string
	ignoreWhitespace bool
	ignoreCase       bool
	granularity      string
	force            bool

	format  string
	color   string
	width   int
	context int

	addr string
}

func (o *options) register(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default $"+config.EnvVar+" or the user config directory)")
	pf.BoolVarP(&o.ignoreWhitespace, "ignore-whitespace", "w", false, "treat all whitespace as equal")
	pf.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "compare case insensitively")
	pf.StringVar(&o.granularity, "granularity", "word", "unit of changes within lines: word or char")
	pf.BoolVar(&o.force, "force", false, "compare files of different types")
	pf.StringVar(&o.color, "color", "auto", "use colors: auto, always or never")
	pf.IntVar(&o.width, "width", 0, "output width, 0 detects the terminal width")
	pf.IntVarP(&o.context, "context", "C", -1, "unchanged lines to show around changes, negative shows all")

	rootCmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format: text, json or html")
}

func (o *options) registerServe(fs *pflag.FlagSet) {
	fs.StringVar(&o.addr, "addr", "", "address to listen on (default from config, localhost:8080)")
}

// config loads the config file and applies the flags that were set on cmd.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := o.apply(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overrides cfg with the flags that were set on cmd and validates the result.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("ignore-whitespace") {
		cfg.Compare.IgnoreWhitespace = o.ignoreWhitespace
	}
	if flags.Changed("ignore-case") {
		cfg.Compare.IgnoreCase = o.ignoreCase
	}
	if flags.Changed("granularity") {
		g, err := inline.ParseGranularity(o.granularity)
		if err != nil {
			return fmt.Errorf("--granularity: %v", err)
		}
		cfg.Compare.Granularity = g
	}
	if flags.Changed("color") {
		cfg.Text.Color = o.color
	}
	if flags.Changed("width") {
		cfg.Text.Width = o.width
	}
	if flags.Changed("context") {
		cfg.Text.Context = o.context
	}
	if flags.Changed("addr") {
		cfg.Serve.Addr = o.addr
	}

	return cfg.Validate()
}

func (o *options) checkFormat() error {
	if !slices.Contains(formats, o.format) {
		return fmt.Errorf("--format: unknown format %q, want one of text, json or html", o.format)
	}
	return nil
}
