package main

import (
	"fmt"

	"tagsort/internal/errors"
	"tagsort/internal/history"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newHistoryCmd creates the history command
func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent move attempts",
		Long:  `Show the most recent entries of the move journal, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.History.Enabled {
				return errors.NewConfigError("move history is disabled", "history.enabled", errors.InvalidConfig, nil)
			}

			journal, err := history.Open(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer journal.Close()

			records, err := journal.Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, mutedText("no moves recorded yet"))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(mutedStyle).
				Headers("WHEN", "STATUS", "CATEGORY", "SIZE", "DESTINATION", "ERROR")
			for _, rec := range records {
				status := rec.Status
				if !rec.Succeeded() {
					status = errorText(status)
				}
				t.Row(
					humanize.Time(rec.Timestamp),
					status,
					rec.Category,
					humanize.Bytes(uint64(max(rec.FileSize, 0))),
					rec.DestinationPath,
					rec.Error,
				)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to show")

	return cmd
}
