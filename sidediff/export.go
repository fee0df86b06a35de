package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sidediff.znkr.io/sidediff/export"
)

func newExportCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [flags] LEFT RIGHT",
		Short: "Write the side-by-side view to a standalone HTML page or a .tar archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			c, err := compare(cmd.InOrStdin(), args[0], args[1], cfg.Compare.Options(), opts.force)
			if err != nil {
				return err
			}
			page, err := c.html(false)
			if err != nil {
				return err
			}

			if strings.HasSuffix(output, ".tar") {
				rows, err := c.json()
				if err != nil {
					return err
				}
				err = export.Pack(output, []export.File{
					{Name: "index.html", MimeType: "text/html; charset=utf-8", Data: page},
					{Name: "rows.json", MimeType: "application/json", Data: rows},
				})
				if err != nil {
					return fmt.Errorf("exporting: %v", err)
				}
				return nil
			}
			if err := export.Write(output, page); err != nil {
				return fmt.Errorf("exporting: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, a name ending in .tar writes an archive")
	cmd.MarkFlagRequired("output")
	return cmd
}
