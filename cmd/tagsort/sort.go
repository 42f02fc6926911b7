package main

import (
	"path/filepath"

	"tagsort/internal/collection"
	"tagsort/internal/corpus"
	"tagsort/internal/errors"
	"tagsort/internal/history"
	"tagsort/internal/log"
	"tagsort/internal/suggest"
	"tagsort/internal/tui"

	"github.com/spf13/cobra"
)

// newSortCmd creates the interactive sorting command
func newSortCmd(a *app) *cobra.Command {
	var collision string

	cmd := &cobra.Command{
		Use:   "sort [folder]",
		Short: "Sort the images of a folder interactively",
		Long: `Open the sorter on a folder (default is the current directory). Sorted
files land in <folder>/<output_dir>/<category>/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return errors.Wrap(err, "resolve folder")
			}

			if cmd.Flags().Changed("collision") {
				a.cfg.Settings.Collision = collision
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			deps, cleanup, err := buildSorter(a, root)
			if err != nil {
				log.LogError(err, "startup failed")
				return err
			}
			defer cleanup()

			return tui.Run(tui.New(deps))
		},
	}

	cmd.Flags().StringVar(&collision, "collision", "", "collision strategy: rename, skip or overwrite")

	return cmd
}

// buildSorter wires the core components for root. The returned cleanup closes the journal.
func buildSorter(a *app, root string) (tui.Deps, func(), error) {
	logger := a.logger.With(log.F("root", root))

	predicate, err := collection.NewPredicate(a.cfg.Extensions, a.cfg.Ignore)
	if err != nil {
		return tui.Deps{}, nil, err
	}
	coll, err := collection.New(root, collection.Options{
		OutputDir:  a.cfg.OutputDir,
		Categories: a.cfg.CategoryFolders(),
		Predicate:  predicate,
		Collision:  a.cfg.Settings.Collision,
		Logger:     a.logger,
	})
	if err != nil {
		return tui.Deps{}, nil, err
	}

	store, err := corpus.LoadWithConfig(a.cfg)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	engine, err := suggest.NewWithConfig(store, a.cfg)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	journal, err := history.Open(a.cfg, logger)
	if err != nil {
		// The sorter still works without a journal
		logger.With(log.ErrorFields(err)...).Warn("move history disabled")
		journal = history.NopJournal{}
	}

	deps := tui.Deps{
		Config:     a.cfg,
		Collection: coll,
		Suggester:  engine,
		Store:      store,
		Journal:    journal,
		Logger:     logger,
	}
	return deps, func() { _ = journal.Close() }, nil
}
