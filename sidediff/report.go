package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sidediff.znkr.io/sidediff/export"
	"sidediff.znkr.io/sidediff/report"
)

func newReportCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report [flags] DOC.md",
		Short: "Render a markdown document with embedded comparisons to HTML",
		Long: `Render a markdown document with embedded comparisons to HTML.

Comparisons are placed into the document with directives like

    <!--#sidediff a="old.go" b="new.go" -->

File names are relative to the directory of the document. The attributes lang, granularity,
ignore-case and ignore-whitespace override the defaults for a single comparison.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading report: %v", err)
			}
			b, err := report.Render(src, filepath.Dir(args[0]), cfg.Compare.Options())
			if err != nil {
				return fmt.Errorf("rendering %s: %w", args[0], err)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if err := export.Write(output, b); err != nil {
				return fmt.Errorf("writing report: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, minified (default standard output)")
	return cmd
}
