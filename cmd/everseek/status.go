package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dependency health and usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			report := a.health.Check(cmd.Context())
			cmd.Printf("status: %s\n", report.Status)
			for name, check := range report.Checks {
				if check.Error != "" {
					cmd.Printf("  %s: %s (%s)\n", name, check.Status, check.Error)
				} else {
					cmd.Printf("  %s: %s\n", name, check.Status)
				}
			}

			stats, err := a.stats.Report(cmd.Context())
			if err != nil {
				return err
			}
			if stats.StoreEnabled {
				cmd.Printf("launches: %d\n", stats.Launches)
				cmd.Printf("tracked files: %d\n", stats.TrackedFiles)
			} else {
				cmd.Println("run counts: disabled (no store configured)")
			}
			return nil
		},
	}
}
