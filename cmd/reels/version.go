package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reels %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", BuildDate)
		},
	}
}
