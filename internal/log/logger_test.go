package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagsort/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	// Chained fields accumulate
	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	// The parent does not see the child's fields
	l.Info("plain")
	assert.NotContains(t, buf.String(), "key1")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.Info("json message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry))
	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "json message", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
	assert.Contains(t, logEntry, "caller")
	buf.Reset()

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")
	logEntry = map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry))
	assert.Equal(t, "value1", logEntry["key1"])
	assert.Equal(t, float64(123), logEntry["key2"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	stdErr := fmt.Errorf("standard error")
	LogWithFields(F("error", stdErr.Error())).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	buf.Reset()

	fileErr := errors.NewFileError("no supported files in directory", "/tmp/inbox", errors.EmptyDirectory, nil)
	LogWithError(fileErr).Error("startup failed")
	output = buf.String()
	assert.Contains(t, output, "startup failed")
	assert.Contains(t, output, "path=/tmp/inbox")
	assert.Contains(t, output, "error_kind=empty_directory")
	buf.Reset()

	configErr := errors.NewConfigError("malformed tag corpus", "tags.yaml", errors.MalformedCorpus, nil)
	LogWithError(configErr).Error("corpus failed")
	output = buf.String()
	assert.Contains(t, output, "param=tags.yaml")
	assert.Contains(t, output, "error_kind=malformed_corpus")
	buf.Reset()

	moveErr := errors.NewMoveError("copy failed", "/in/a.png", "/in/output/memes/x__a.png", errors.CopyFailed, nil)
	LogWithError(errors.Wrap(moveErr, "move current")).Error("move failed")
	output = buf.String()
	assert.Contains(t, output, "source=/in/a.png")
	assert.Contains(t, output, "destination=/in/output/memes/x__a.png")
	assert.Contains(t, output, "error_kind=copy_failed")
	buf.Reset()

	dbErr := errors.NewDatabaseError("failed to save move record", fmt.Errorf("disk I/O error")).
		WithOperation("insert").
		WithContext("category", "memes")
	LogWithError(errors.Wrap(dbErr, "journal")).Warn("move not journaled")
	output = buf.String()
	assert.Contains(t, output, "operation=insert")
	assert.Contains(t, output, "category=memes")
	assert.Contains(t, output, "error_kind=database_operation_failed")
	buf.Reset()

	LogError(fileErr, "convenient error log")
	output = buf.String()
	assert.Contains(t, output, "convenient error log")
	assert.Contains(t, output, "/tmp/inbox")
}

func TestCallerInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("caller test")
	assert.Contains(t, buf.String(), "caller=\"logger_test.go:")

	buf.Reset()
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	Infof("global %s", "caller")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFileOnlyOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tagsort.log")

	l := NewLogger(WithFileOnly(path))
	defer l.Close()
	l.Info("file test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestFileOnlyWithoutPathDiscards(t *testing.T) {
	l := NewLogger(WithFileOnly(""))
	assert.NotPanics(t, func() { l.Info("dropped") })
	assert.NoError(t, l.Close())
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(nil).Info("context message")
	assert.Contains(t, buf.String(), "context message")
}

func TestConfigure(t *testing.T) {
	originalLogger := logger
	defer func() { logger = originalLogger }()

	var buf bytes.Buffer
	Configure(WithOutput(&buf), WithJSON())
	Info("global config test")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry))
	assert.Equal(t, "global config test", logEntry["message"])
}

func TestSetDefault(t *testing.T) {
	originalLogger := logger
	defer func() { logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "tagsort.log")
	l := NewLogger(WithFileOnly(path))
	SetDefault(l)
	assert.Same(t, l, Default())

	Info("through the package helpers")
	LogWithFields(F("root", "/inbox")).Warn("through a child")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "through the package helpers")
	assert.Contains(t, string(content), "root=/inbox")

	SetDefault(nil)
	assert.Same(t, l, Default(), "nil keeps the current logger")
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithError(nil).Error("nil error test")
	output := buf.String()
	assert.Contains(t, output, "nil error test")
	assert.Contains(t, output, "<nil>")
}
