// Package cli wires the hyper-bindgen command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	LogFile  string
	LogLevel string
}

// NewRootCommand creates the root command for the hyper-bindgen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hyper-bindgen",
		Short: "WIT and stub generator for hyperware process components",
		Long: "hyper-bindgen scans annotated Go components, emits WIT interface and world\n" +
			"definitions, and regenerates the caller-utils module from the emitted WIT.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "log file path (default from hyper-bindgen.toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewGenCommand(opts))

	return cmd
}
