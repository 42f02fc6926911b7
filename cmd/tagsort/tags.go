package main

import (
	"fmt"

	"tagsort/internal/corpus"

	"github.com/spf13/cobra"
)

// newTagsCmd creates the tags command
func newTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag corpus",
		Long:  `List the tags used for suggestions or add new ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to listing tags when no subcommand is provided
			return listTags(cmd, a)
		},
	}

	cmd.AddCommand(newTagsListCmd(a))
	cmd.AddCommand(newTagsAddCmd(a))

	return cmd
}

// newTagsListCmd creates the 'tags list' command
func newTagsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tag in the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTags(cmd, a)
		},
	}
}

func listTags(cmd *cobra.Command, a *app) error {
	store, err := corpus.LoadWithConfig(a.cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, primaryText(fmt.Sprintf("%d tags", store.Len())), mutedText(store.Path()))
	for _, tag := range store.Snapshot() {
		fmt.Fprintf(out, "  %s\n", tag)
	}
	return nil
}

// newTagsAddCmd creates the 'tags add' command
func newTagsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tag>...",
		Short: "Add tags to the corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := corpus.LoadWithConfig(a.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tag := range args {
				added, err := store.Add(tag)
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintln(out, successText("added "+tag))
				} else {
					fmt.Fprintln(out, warningText(tag+" already known"))
				}
			}
			return nil
		},
	}
}
