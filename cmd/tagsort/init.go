package main

import (
	"fmt"
	"os"
	"path/filepath"

	"tagsort/internal/config"
	"tagsort/internal/corpus"
	"tagsort/internal/errors"
	"tagsort/pkg/types"

	"github.com/spf13/cobra"
)

// newInitCmd creates the init command
func newInitCmd(a *app) *cobra.Command {
	var (
		force bool
		theme string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration",
		Long: `Write a configuration file with example category buttons and create the
tag corpus next to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewConfigError("config file already exists, use --force to replace it", path, errors.InvalidConfig, nil)
			}

			// Keep the corpus, journal and log beside the config file
			dir := filepath.Dir(path)
			cfg := config.New()
			cfg.Corpus.Path = filepath.Join(dir, "tags.yaml")
			cfg.History.Path = filepath.Join(dir, "history.db")
			cfg.Log.File = filepath.Join(dir, "tagsort.log")
			cfg.Buttons = []types.Button{
				{Label: "Memes", ButtonLabel: "M", Path: "memes", Shortcut: "m"},
				{Label: "Wallpapers", ButtonLabel: "W", Path: "wallpapers", Shortcut: "w"},
				{Label: "Screenshots", ButtonLabel: "S", Path: "screenshots", Shortcut: "s"},
			}
			if theme != "" {
				cfg.ApplyTheme(theme)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg, path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successText("wrote "+path))

			store, err := corpus.LoadWithConfig(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, successText(fmt.Sprintf("tag corpus at %s (%d tags)", store.Path(), store.Len())))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing config file")
	cmd.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("color theme %v", config.ListThemes()))

	return cmd
}
