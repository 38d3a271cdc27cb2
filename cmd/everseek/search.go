package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/everseek/everseek/internal/domain"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Run a one-shot ranked search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			matches, err := a.search.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				cmd.Println("no matches")
				return nil
			}
			for _, m := range matches {
				res := domain.ResultFromMatch(m)
				cmd.Println(fmt.Sprintf("%-30s  %s  (rate %.2f, runs %d)",
					res.Title, res.Path, m.Rate, m.RunCount))
			}
			return nil
		},
	}
}
