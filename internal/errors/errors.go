// Package errors provides standardized error handling for tagsort.
// It defines the error kinds the sorting engine can surface, typed errors that
// carry the path, parameter or move endpoints involved, and predicates the
// front-ends use to decide whether to abort, retry or warn.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrCollectionEmpty is returned by operations that need a current file
// once every file has been moved
var ErrCollectionEmpty = New("collection is empty")

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileCreateFailed
	// Startup error kinds
	EmptyDirectory
	NotReadable
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	MalformedCorpus
	// Move error kinds
	CopyFailed
	SourceNotRemoved
	DestinationExists
	// Database error kinds
	DatabaseOperationFailed
	InvalidInputData
)

var kindNames = map[ErrorKind]string{
	Unknown:                 "unknown",
	FileCreateFailed:        "file_create_failed",
	EmptyDirectory:          "empty_directory",
	NotReadable:             "not_readable",
	InvalidConfig:           "invalid_config",
	ConfigNotFound:          "config_not_found",
	MalformedCorpus:         "malformed_corpus",
	CopyFailed:              "copy_failed",
	SourceNotRemoved:        "source_not_removed",
	DestinationExists:       "destination_exists",
	DatabaseOperationFailed: "database_operation_failed",
	InvalidInputData:        "invalid_input_data",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration and the tag corpus file
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// MoveError is returned by a move transaction. The kind tells the caller
// whether the collection was left untouched (CopyFailed, DestinationExists)
// or the file now exists in both places (SourceNotRemoved).
type MoveError struct {
	ApplicationError
	source      string
	destination string
}

// NewMoveError creates a new move error
func NewMoveError(msg, source, destination string, kind ErrorKind, err error) *MoveError {
	return &MoveError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		source:      source,
		destination: destination,
	}
}

// Error returns the move error message
func (e *MoveError) Error() string {
	if e.source != "" || e.destination != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s -> %s: %v", e.msg, e.source, e.destination, e.err)
		}
		return fmt.Sprintf("%s: %s -> %s", e.msg, e.source, e.destination)
	}
	return e.ApplicationError.Error()
}

// Source returns the path of the file being moved
func (e *MoveError) Source() string {
	return e.source
}

// Destination returns the computed destination path
func (e *MoveError) Destination() string {
	return e.destination
}

// Retryable reports whether the move left everything as it was before
func (e *MoveError) Retryable() bool {
	return e.kind == CopyFailed || e.kind == DestinationExists
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the first known kind found in err's chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// hasKind walks the whole chain and reports whether any typed error has one of kinds
func hasKind(err error, kinds ...ErrorKind) bool {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok {
			for _, want := range kinds {
				if k.Kind() == want {
					return true
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsEmptyDirectory checks if the source directory had no manageable files
func IsEmptyDirectory(err error) bool {
	return hasKind(err, EmptyDirectory)
}

// IsNotReadable checks if the source directory could not be listed
func IsNotReadable(err error) bool {
	return hasKind(err, NotReadable)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsMalformedCorpus checks if the tag corpus file could not be parsed
func IsMalformedCorpus(err error) bool {
	return hasKind(err, MalformedCorpus)
}

// IsCopyFailed checks if a move failed before anything was changed
func IsCopyFailed(err error) bool {
	return hasKind(err, CopyFailed)
}

// IsSourceNotRemoved checks if a move copied the file but left the source behind
func IsSourceNotRemoved(err error) bool {
	return hasKind(err, SourceNotRemoved)
}

// IsDestinationExists checks if a move was refused by the skip collision policy
func IsDestinationExists(err error) bool {
	return hasKind(err, DestinationExists)
}

// IsFatal reports whether err belongs to the startup class that ends the run
func IsFatal(err error) bool {
	return hasKind(err, EmptyDirectory, NotReadable, MalformedCorpus)
}

// DatabaseError represents errors related to database operations
type DatabaseError struct {
	ApplicationError
	operation string
	context   map[string]interface{}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DatabaseOperationFailed,
		},
		operation: "",
		context:   make(map[string]interface{}),
	}
}

// WithOperation adds operation information to the database error
func (e *DatabaseError) WithOperation(operation string) *DatabaseError {
	e.operation = operation
	return e
}

// WithContext adds context information to the database error
func (e *DatabaseError) WithContext(key string, value interface{}) *DatabaseError {
	e.context[key] = value
	return e
}

// Error returns the database error message
func (e *DatabaseError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the database operation associated with the error
func (e *DatabaseError) Operation() string {
	return e.operation
}

// Context returns the context information associated with the error
func (e *DatabaseError) Context() map[string]interface{} {
	return e.context
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// IsDatabaseError checks if the error is a database error
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
