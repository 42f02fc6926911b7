package main

import (
	"fmt"
	"strings"

	"tagsort/internal/corpus"
	"tagsort/internal/segment"
	"tagsort/internal/suggest"

	"github.com/spf13/cobra"
)

// newSuggestCmd creates the suggest command
func newSuggestCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show tag suggestions for a query",
		Long: `Rank the tag corpus against a query the way the sorter does. A query
containing the "--" separator is matched on its last segment.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := corpus.LoadWithConfig(a.cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				a.cfg.Suggest.Limit = limit
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			engine, err := suggest.NewWithConfig(store, a.cfg)
			if err != nil {
				return err
			}

			query := segment.Active(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			results := engine.Suggest(query)
			if len(results) == 0 {
				fmt.Fprintln(out, warningText(fmt.Sprintf("no suggestions for %q", query)))
				return nil
			}
			for i, tag := range results {
				fmt.Fprintf(out, "%2d. %s\n", i+1, tag)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of suggestions, 0 for all")

	return cmd
}
