// Package history keeps a journal of every move attempt in SQLite.
package history

import (
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"time"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/log"
	"tagsort/pkg/types"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed db/schema.sql
var dbFS embed.FS

// Journal records move attempts
type Journal interface {
	Record(record *types.MoveRecord) error
	Recent(limit int) ([]*types.MoveRecord, error)
	Close() error
}

// Open returns the journal configured by cfg, or a no-op journal when
// history is disabled
func Open(cfg *config.Config, logger log.Logging) (Journal, error) {
	if !cfg.History.Enabled {
		return NopJournal{}, nil
	}
	return NewSQLiteJournal(cfg.History.Path, logger)
}

// SQLiteJournal implements Journal on an SQLite database
type SQLiteJournal struct {
	db     *sql.DB
	logger log.Logging
}

// NewSQLiteJournal opens (and creates if needed) the database at dbPath.
// An empty path uses an in-memory database.
func NewSQLiteJournal(dbPath string, logger log.Logging) (*SQLiteJournal, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := InitDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteJournal{db: db, logger: logger}, nil
}

// InitDatabase opens the database and applies the schema
func InitDatabase(dbPath string) (*sql.DB, error) {
	connectionString := dbPath
	if connectionString == "" {
		connectionString = ":memory:"
	} else if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewDatabaseError("failed to create database directory", err).
				WithContext("path", dir)
		}
	}

	db, err := sql.Open("sqlite3", connectionString)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to open SQLite database", err).
			WithContext("connectionString", connectionString)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	schemaSQL, err := dbFS.ReadFile("db/schema.sql")
	if err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to read schema SQL", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to initialize database schema", err).
			WithOperation("migrate")
	}
	return db, nil
}

// Close closes the database connection
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Record stores record, filling in the ID and timestamp when missing
func (j *SQLiteJournal) Record(record *types.MoveRecord) error {
	if record == nil {
		return errors.NewInvalidInputError("move record cannot be nil", nil)
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	query := `
		INSERT INTO moves (
			id, timestamp, root, source_path, destination_path,
			category, new_name, file_size, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.Exec(
		query,
		record.ID,
		record.Timestamp.UTC().Format(time.RFC3339Nano),
		record.Root,
		record.SourcePath,
		record.DestinationPath,
		record.Category,
		record.NewName,
		record.FileSize,
		record.Status,
		record.Error,
	)
	if err != nil {
		return errors.NewDatabaseError("failed to save move record", err).
			WithOperation("insert").
			WithContext("source_path", record.SourcePath)
	}

	j.logger.With(log.F("id", record.ID), log.F("status", record.Status)).Debug("move recorded")
	return nil
}

// Recent returns up to limit records, newest first
func (j *SQLiteJournal) Recent(limit int) ([]*types.MoveRecord, error) {
	if limit <= 0 {
		return nil, errors.NewInvalidInputError("limit must be positive", nil).WithContext("limit", limit)
	}

	rows, err := j.db.Query(`
		SELECT id, timestamp, root, source_path, destination_path,
		       category, new_name, file_size, status, error
		FROM moves
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query moves", err).WithOperation("select")
	}
	defer rows.Close()

	var records []*types.MoveRecord
	for rows.Next() {
		var (
			rec          types.MoveRecord
			timestampStr string
		)
		if err := rows.Scan(
			&rec.ID,
			&timestampStr,
			&rec.Root,
			&rec.SourcePath,
			&rec.DestinationPath,
			&rec.Category,
			&rec.NewName,
			&rec.FileSize,
			&rec.Status,
			&rec.Error,
		); err != nil {
			return nil, errors.NewDatabaseError("failed to scan move row", err)
		}

		rec.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to parse timestamp", err).
				WithContext("timestamp", timestampStr)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("failed to iterate moves", err)
	}
	return records, nil
}

// NopJournal discards every record
type NopJournal struct{}

// Record does nothing
func (NopJournal) Record(*types.MoveRecord) error { return nil }

// Recent always returns no records
func (NopJournal) Recent(int) ([]*types.MoveRecord, error) { return nil, nil }

// Close does nothing
func (NopJournal) Close() error { return nil }

// NewRecord describes the outcome of a move attempt. moveErr is the error
// MoveCurrent returned, if any.
func NewRecord(root, newName string, size int64, result types.MoveResult, moveErr error) *types.MoveRecord {
	rec := &types.MoveRecord{
		Root:            root,
		SourcePath:      result.SourcePath,
		DestinationPath: result.DestinationPath,
		Category:        result.Category,
		NewName:         newName,
		FileSize:        size,
		Status:          types.StatusMoved,
	}
	if moveErr == nil {
		return rec
	}

	rec.Error = moveErr.Error()
	switch {
	case errors.IsSourceNotRemoved(moveErr):
		rec.Status = types.StatusSourceNotRemoved
	case errors.IsDestinationExists(moveErr):
		rec.Status = types.StatusSkipped
	default:
		rec.Status = types.StatusCopyFailed
	}
	return rec
}
