package main

import (
	"tagsort/internal/config"
	"tagsort/internal/log"

	"github.com/spf13/cobra"
)

// app carries what the persistent pre-run resolves for every subcommand
type app struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
	logger  *log.Logger
}

// configPath is the file the current invocation reads and writes
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultPath()
}

// load reads the configuration. A broken file is an error; a missing one yields the defaults.
func (a *app) load() error {
	cfg, err := config.LoadConfigFile(a.configPath())
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// setupLogging configures the global logger. fileOnly keeps entries off the
// terminal, which the full-screen sorter needs.
func (a *app) setupLogging(fileOnly bool) {
	log.SetDebug(a.debug || a.cfg.Log.Debug)

	var opts []log.Option
	switch {
	case fileOnly:
		opts = append(opts, log.WithFileOnly(a.cfg.Log.File))
	case a.cfg.Log.File != "":
		opts = append(opts, log.WithFile(a.cfg.Log.File))
	}
	if a.cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	a.logger = log.NewLogger(opts...)
	log.SetDefault(a.logger)
}

// close releases the log file opened by setupLogging
func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tagsort",
		Short: "Sort images into folders by tagging them",
		Long: `Tagsort walks the images of a folder one at a time. Compose a name from
tags with fuzzy suggestions, then send the file to a category folder with a
single key.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" {
				return nil
			}
			if err := a.load(); err != nil {
				return err
			}
			a.setupLogging(cmd.Name() == "sort")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/tagsort/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newSortCmd(a))
	rootCmd.AddCommand(newTagsCmd(a))
	rootCmd.AddCommand(newSuggestCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newInitCmd(a))

	return rootCmd
}
