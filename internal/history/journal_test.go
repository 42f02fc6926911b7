package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/history"
	"tagsort/internal/log"
	"tagsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournal(t *testing.T, path string) *history.SQLiteJournal {
	t.Helper()
	j, err := history.NewSQLiteJournal(path, log.NewLogger(log.WithFileOnly("")))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestDatabaseInitialization(t *testing.T) {
	db, err := history.InitDatabase("")
	require.NoError(t, err)
	defer db.Close()

	var version string
	require.NoError(t, db.QueryRow("SELECT sqlite_version()").Scan(&version))
	assert.NotEmpty(t, version)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM moves").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRecordAndRecent(t *testing.T) {
	j := newJournal(t, "")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.png", "b.png", "c.png"} {
		rec := &types.MoveRecord{
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
			Root:            "/inbox",
			SourcePath:      "/inbox/" + name,
			DestinationPath: "/inbox/output/memes/cat__" + name,
			Category:        "memes",
			NewName:         "cat--",
			FileSize:        int64(100 * (i + 1)),
			Status:          types.StatusMoved,
		}
		require.NoError(t, j.Record(rec))
		assert.NotEmpty(t, rec.ID, "an ID is assigned")
	}

	records, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "/inbox/c.png", records[0].SourcePath)
	assert.Equal(t, "/inbox/b.png", records[1].SourcePath)
	assert.Equal(t, base.Add(2*time.Minute), records[0].Timestamp)
	assert.Equal(t, int64(300), records[0].FileSize)
	assert.Equal(t, "cat--", records[0].NewName)
	assert.True(t, records[0].Succeeded())
}

func TestRecordDefaults(t *testing.T) {
	j := newJournal(t, "")

	rec := &types.MoveRecord{ID: "fixed-id", SourcePath: "/a.png", Status: types.StatusCopyFailed, Error: "disk full"}
	require.NoError(t, j.Record(rec))
	assert.Equal(t, "fixed-id", rec.ID)
	assert.False(t, rec.Timestamp.IsZero())

	records, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "disk full", records[0].Error)
	assert.False(t, records[0].Succeeded())

	// Same ID twice violates the primary key
	err = j.Record(&types.MoveRecord{ID: "fixed-id", Status: types.StatusMoved})
	assert.True(t, errors.IsDatabaseError(err))
}

func TestRecordInvalidInput(t *testing.T) {
	j := newJournal(t, "")

	assert.True(t, errors.IsInvalidInputError(j.Record(nil)))
	_, err := j.Recent(0)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestJournalPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")

	j, err := history.NewSQLiteJournal(path, nil)
	require.NoError(t, err)
	require.NoError(t, j.Record(&types.MoveRecord{SourcePath: "/a.png", Status: types.StatusMoved}))
	require.NoError(t, j.Close())

	reopened := newJournal(t, path)
	records, err := reopened.Recent(5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/a.png", records[0].SourcePath)
}

func TestOpen(t *testing.T) {
	cfg := config.NewTestConfig(t.TempDir())

	cfg.History.Enabled = false
	j, err := history.Open(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, history.NopJournal{}, j)
	assert.NoError(t, j.Record(&types.MoveRecord{}))
	records, err := j.Recent(3)
	assert.NoError(t, err)
	assert.Empty(t, records)

	cfg.History.Enabled = true
	j, err = history.Open(cfg, nil)
	require.NoError(t, err)
	defer j.Close()
	assert.IsType(t, &history.SQLiteJournal{}, j)
}

func TestNewRecord(t *testing.T) {
	result := types.MoveResult{
		SourcePath:      "/inbox/a.png",
		DestinationPath: "/inbox/output/memes/cat__a.png",
		Category:        "memes",
	}

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, types.StatusMoved},
		{"copy failed", errors.NewMoveError("copy failed", "", "", errors.CopyFailed, nil), types.StatusCopyFailed},
		{"source not removed", errors.NewMoveError("left behind", "", "", errors.SourceNotRemoved, nil), types.StatusSourceNotRemoved},
		{"destination exists", errors.NewMoveError("exists", "", "", errors.DestinationExists, nil), types.StatusSkipped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := history.NewRecord("/inbox", "cat--", 42, result, tt.err)
			assert.Equal(t, tt.status, rec.Status)
			assert.Equal(t, "/inbox", rec.Root)
			assert.Equal(t, int64(42), rec.FileSize)
			assert.Equal(t, "memes", rec.Category)
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), rec.Error)
			} else {
				assert.Empty(t, rec.Error)
			}
		})
	}
}
