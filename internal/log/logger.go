package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"tagsort/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logging is the interface components accept so tests can inject a buffer-backed logger
type Logging interface {
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Debug(msg string)
	Debugf(format string, args ...interface{})
	With(fields ...Field) Logging
	WithContext(ctx context.Context) Logging
}

// Logger writes structured entries through logrus
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	file   *os.File
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput sends entries to w
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile appends entries to path in addition to stdout
func WithFile(path string) Option {
	return func(l *Logger) {
		if dir := filepath.Dir(path); dir != "" {
			_ = os.MkdirAll(dir, 0755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.base.WithField("error", err).Error("failed to open log file, keeping stdout only")
			return
		}
		l.file = f
		l.base.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// WithFileOnly appends entries to path and nowhere else. The TUI uses it so
// log lines never land on the screen.
func WithFileOnly(path string) Option {
	return func(l *Logger) {
		if path == "" {
			l.base.SetOutput(io.Discard)
			return
		}
		if dir := filepath.Dir(path); dir != "" {
			_ = os.MkdirAll(dir, 0755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.base.SetOutput(io.Discard)
			return
		}
		l.file = f
		l.base.SetOutput(f)
	}
}

// NewLogger creates a Logger writing text entries to stdout unless options say otherwise
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableColors:    true,
		QuoteEmptyFields: true,
	})

	l := &Logger{base: base, fields: logrus.Fields{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDefault installs l as the package-level logger. The caller keeps
// ownership of l and closes it.
func SetDefault(l *Logger) {
	if l != nil {
		logger = l
	}
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SetDebug toggles debug output for every logger
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) Logging {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged, file: l.file}
}

// WithContext is reserved for request-scoped fields; none are extracted yet
func (l *Logger) WithContext(ctx context.Context) Logging {
	return l
}

func (l *Logger) Info(msg string) { l.entry().Info(msg) }

func (l *Logger) Infof(format string, args ...interface{}) { l.entry().Infof(format, args...) }

func (l *Logger) Warn(msg string) { l.entry().Warn(msg) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.entry().Warnf(format, args...) }

func (l *Logger) Error(msg string) { l.entry().Error(msg) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }

func (l *Logger) Debug(msg string) {
	if isDebug {
		l.entry().Debug(msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		l.entry().Debugf(format, args...)
	}
}

// entry attaches the fields plus the caller of the public method
func (l *Logger) entry() *logrus.Entry {
	return l.entryAt(3)
}

// entryAt is entry with an explicit frame count, for the package-level helpers
func (l *Logger) entryAt(skip int) *logrus.Entry {
	e := l.base.WithFields(l.fields)
	if _, file, line, ok := runtime.Caller(skip); ok {
		e = e.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	return e
}

// Info logs an informational message
func Info(format string, args ...interface{}) {
	logger.entryAt(2).Infof(format, args...)
}

// Infof logs a formatted informational message
func Infof(format string, args ...interface{}) {
	logger.entryAt(2).Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if isDebug {
		logger.entryAt(2).Debugf(msg+": %v", args...)
	}
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	if isDebug {
		logger.entryAt(2).Debugf(format, args...)
	}
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	logger.entryAt(2).Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.entryAt(2).Warnf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	logger.entryAt(2).Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.entryAt(2).Errorf(format, args...)
}

// Default returns the package-level logger
func Default() Logging {
	return logger
}

// LogWithFields returns the global logger carrying fields
func LogWithFields(fields ...Field) Logging {
	return logger.With(fields...)
}

// LogWithError returns the global logger carrying err and, for typed errors,
// the kind plus the path, parameter, move endpoints or database operation involved
func LogWithError(err error) Logging {
	return logger.With(ErrorFields(err)...)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// ErrorFields expands err into structured fields
func ErrorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{F("error", err.Error())}
	if kind := errors.KindOf(err); kind != errors.Unknown {
		fields = append(fields, F("error_kind", kind.String()))
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) {
		fields = append(fields, F("source", moveErr.Source()), F("destination", moveErr.Destination()))
	}
	var dbErr *errors.DatabaseError
	if errors.As(err, &dbErr) {
		if op := dbErr.Operation(); op != "" {
			fields = append(fields, F("operation", op))
		}
		for k, v := range dbErr.Context() {
			fields = append(fields, F(k, v))
		}
	}
	return fields
}
