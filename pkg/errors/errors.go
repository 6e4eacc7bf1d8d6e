package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCorpusUnreadable      = errors.New("corpus file unreadable")
	ErrTokenStreamUnreadable = errors.New("token stream unreadable")
	ErrQueryFileUnreadable   = errors.New("query file unreadable")
	ErrIndexNotFound         = errors.New("index file not found")
	ErrIndexCorrupt          = errors.New("index file corrupt")
	ErrIndexWrite            = errors.New("index file write failed")
	ErrUsage                 = errors.New("invalid usage")
)

// AppError attaches a human-readable message and a process exit code to a
// sentinel error.
type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to the exit status a CLI should terminate with.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}
