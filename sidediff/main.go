// Command sidediff compares two text files line by line and shows them side by side, with the
// changes within lines highlighted.
//
// The exit status follows diff(1): 0 if the inputs are the same, 1 if they differ and 2 if
// there was trouble.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// errDifferences is returned by commands that found differences between the inputs.
var errDifferences = errors.New("inputs differ")

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	switch err := rootCmd.Execute(); {
	case err == nil:
		return 0
	case errors.Is(err, errDifferences):
		return 1
	default:
		fmt.Fprintf(stderr, "sidediff: %v\n", err)
		return 2
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sidediff [flags] LEFT RIGHT",
		Short:         "Side-by-side comparison of two text files",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts, args[0], args[1])
		},
	}
	opts.register(rootCmd)

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}
