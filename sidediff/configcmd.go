package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"sidediff.znkr.io/sidediff/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config [flags]",
		Short: "Print the effective configuration, or save it with --save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if save && errors.Is(err, fs.ErrNotExist) {
				cfg, err = config.Default(), nil
			}
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			if !save {
				if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
					return fmt.Errorf("encoding config: %v", err)
				}
				return nil
			}

			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return fmt.Errorf("no config path, use --config or $%s", config.EnvVar)
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the configuration including all set flags")
	opts.registerServe(cmd.Flags())
	return cmd
}
