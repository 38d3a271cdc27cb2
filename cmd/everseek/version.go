package main

import (
	"github.com/spf13/cobra"

	"github.com/everseek/everseek/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("everseek %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
