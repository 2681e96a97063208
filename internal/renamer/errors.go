package renamer

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Fatal error kinds. A run that hits one of these stops without a summary.
var (
	ErrInvalidSearch  = errors.New("invalid search expression")
	ErrInvalidPattern = errors.New("invalid file match pattern")
	ErrInvalidRoot    = errors.New("invalid search directory")
	ErrIO             = errors.New("unexpected i/o failure")
)

// Error describes a condition that aborts the whole run
type Error struct {
	Kind      error  // one of the Err* sentinels
	Detail    string // offending pattern, if any
	Path      string
	Operation string
	Cause     error
}

func (e *Error) Error() string {
	parts := []string{e.Kind.Error()}

	if e.Detail != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Detail))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("in %s", e.Path))
	}
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("during %s", e.Operation))
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the error against its kind, so errors.Is(err, ErrInvalidSearch)
// works without comparing messages.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func newPatternError(kind error, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

func newPathError(kind error, path, operation string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Operation: operation, Cause: cause}
}

// IsFatal reports whether err aborts a run
func IsFatal(err error) bool {
	var re *Error
	return errors.As(err, &re)
}

// isAccessError reports failures that are counted and skipped rather than
// aborting the run: permission problems and entries that vanished between
// listing and use.
func isAccessError(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}
