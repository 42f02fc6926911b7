package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/history"
	"tagsort/internal/log"
	"tagsort/pkg/testutils"
	"tagsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCli executes the root command with args and returns what it printed
func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeConfig saves a test configuration in dir and returns its path
func writeConfig(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.NewTestConfig(dir)
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, path))
	return path
}

func TestHelpListsCommands(t *testing.T) {
	output, err := runCli(t, "--help")
	output = testutils.StripANSI(output)
	require.NoError(t, err)
	for _, name := range []string{"sort", "tags", "suggest", "history", "init"} {
		assert.Contains(t, output, name)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.yaml")

	output, err := runCli(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, output, "wrote "+path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "conf", "tags.yaml"))

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Buttons, 3)
	assert.Equal(t, filepath.Join(dir, "conf", "history.db"), cfg.History.Path)

	_, err = runCli(t, "--config", path, "init")
	require.Error(t, err, "an existing config is kept without --force")
	assert.True(t, errors.IsInvalidConfig(err))

	_, err = runCli(t, "--config", path, "init", "--force", "--theme", "dark")
	require.NoError(t, err)
	cfg, err = config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme.Name)
}

func TestTagsCommands(t *testing.T) {
	path := writeConfig(t, t.TempDir(), nil)

	output, err := runCli(t, "--config", path, "tags", "add", "cats", "linux")
	require.NoError(t, err)
	assert.Contains(t, output, "added cats")
	assert.Contains(t, output, "linux already known")

	output, err = runCli(t, "--config", path, "tags", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "4 tags")
	assert.Contains(t, output, "cats")
	assert.Contains(t, output, "warframe")

	output, err = runCli(t, "--config", path, "tags")
	require.NoError(t, err)
	assert.Contains(t, output, "cats")

	_, err = runCli(t, "--config", path, "tags", "add", "   ")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestTagsMalformedCorpus(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.yaml"), []byte("{not: [a list"), 0644))

	_, err := runCli(t, "--config", path, "tags", "list")
	require.Error(t, err)
	assert.True(t, errors.IsMalformedCorpus(err))
}

func TestSuggestCommand(t *testing.T) {
	path := writeConfig(t, t.TempDir(), nil)

	output, err := runCli(t, "--config", path, "suggest", "lin")
	require.NoError(t, err)
	assert.Contains(t, output, " 1. linux")

	// Only the segment after the last separator is matched
	output, err = runCli(t, "--config", path, "suggest", "programming--warf")
	require.NoError(t, err)
	assert.Contains(t, output, " 1. warframe")

	output, err = runCli(t, "--config", path, "suggest", "qqqq")
	require.NoError(t, err)
	assert.Contains(t, output, `no suggestions for "qqqq"`)

	_, err = runCli(t, "--config", path, "suggest", "lin", "--limit", "-1")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("disabled", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), func(c *config.Config) { c.History.Enabled = false })
		_, err := runCli(t, "--config", path, "history")
		require.Error(t, err)
	})

	path := writeConfig(t, dir, nil)

	output, err := runCli(t, "--config", path, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "no moves recorded yet")

	journal, err := history.NewSQLiteJournal(filepath.Join(dir, "history.db"), nil)
	require.NoError(t, err)
	require.NoError(t, journal.Record(history.NewRecord(dir, "cat", 2048, types.MoveResult{
		SourcePath:      filepath.Join(dir, "a.png"),
		DestinationPath: filepath.Join(dir, "output", "memes", "cat__a.png"),
		Category:        "memes",
	}, nil)))
	require.NoError(t, journal.Close())

	output, err = runCli(t, "--config", path, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, output, "moved")
	assert.Contains(t, output, "memes")
	assert.Contains(t, output, "2.0 kB")
}

func TestSortStartupErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, nil)

	t.Run("empty directory", func(t *testing.T) {
		_, err := runCli(t, "--config", path, "sort", t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsEmptyDirectory(err))
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("not readable", func(t *testing.T) {
		_, err := runCli(t, "--config", path, "sort", filepath.Join(dir, "missing"))
		require.Error(t, err)
		assert.True(t, errors.IsNotReadable(err))
	})

	t.Run("bad collision flag", func(t *testing.T) {
		folder := t.TempDir()
		testutils.CreateFiles(t, folder, "a.png")
		_, err := runCli(t, "--config", path, "sort", folder, "--collision", "shred")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestBuildSorter(t *testing.T) {
	dir := t.TempDir()
	folder := t.TempDir()
	testutils.CreateFiles(t, folder, "b.png", "a.jpg", "notes.txt")

	a := &app{cfgFile: writeConfig(t, dir, nil)}
	require.NoError(t, a.load())
	a.setupLogging(true)
	defer a.close()

	deps, cleanup, err := buildSorter(a, folder)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, []string{"a.jpg", "b.png"}, deps.Collection.Entries())
	for _, category := range []string{"memes", "wallpapers", "unsorted"} {
		assert.DirExists(t, filepath.Join(folder, "output", category))
	}
	assert.Equal(t, []string{"linux"}, deps.Suggester.Suggest("linu"))

	added, err := deps.Store.Add("linocut")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, deps.Suggester.Suggest("lin"), "linocut", "adding a tag invalidates cached suggestions")
}

func TestSetupLoggingInstallsOneLogger(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "tagsort.log")
	a := &app{cfgFile: writeConfig(t, dir, func(c *config.Config) { c.Log.File = logFile })}
	require.NoError(t, a.load())

	a.setupLogging(true)
	assert.Same(t, a.logger, log.Default())

	log.Infof("package %s", "helper")
	a.logger.Info("instance logger")
	a.close()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package helper")
	assert.Contains(t, string(content), "instance logger")
}
