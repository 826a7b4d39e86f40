package cli

import "errors"

// Exit codes for gramlint. The data, internal, and I/O codes follow
// sysexits.h.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitProblemsFound indicates checking completed and found problems.
	ExitProblemsFound = 1

	// ExitUsageError indicates invalid command-line usage.
	ExitUsageError = 2

	// ExitDataError indicates bad configuration or a server-side failure.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrProblemsFound signals that a check completed and reported problems.
// The reporter has already printed them, so the error itself is not logged.
var ErrProblemsFound = errors.New("language problems found")

// ErrFilesFailed signals that some files could not be read or checked.
var ErrFilesFailed = errors.New("some files could not be checked")

// ExitError carries an explicit exit code through Cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithExitCode wraps err so the process exits with the given code.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCodeForError maps an Execute error to the process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrProblemsFound) {
		return ExitProblemsFound
	}
	if errors.Is(err, ErrFilesFailed) {
		return ExitIOError
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitInternalError
}
