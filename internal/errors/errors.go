package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrUnsupportedServer indicates a context server id this extension does not provide.
	ErrUnsupportedServer = crdb.New("unsupported context server")

	// ErrInvalidSettings indicates the stored settings value could not be decoded.
	ErrInvalidSettings = crdb.New("invalid settings")

	// ErrMissingAccessToken indicates the access token is absent or blank.
	ErrMissingAccessToken = crdb.New("missing access token")

	// ErrEntrypointNotFound indicates no entrypoint candidate exists on disk.
	ErrEntrypointNotFound = crdb.New("entrypoint not found")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	Is       = crdb.Is
	As       = crdb.As
	Mark     = crdb.Mark
	WithHint = crdb.WithHint
	GetHints = crdb.GetAllHints
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: sentry-mcp doctor",
	}
}

// Classify maps a pipeline error to an ExitError. User-correctable stages
// (unsupported id, bad settings, missing token) map to ExitUser; everything
// else is treated as a system failure. An existing ExitError is returned as is.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}
	switch {
	case Is(err, ErrMissingAccessToken):
		return NewUserError(err, "Run: sentry-mcp settings set-token")
	case Is(err, ErrInvalidSettings):
		return NewUserError(err, "Run: sentry-mcp settings edit")
	case Is(err, ErrUnsupportedServer):
		return NewUserError(err, "")
	case Is(err, ErrEntrypointNotFound):
		return NewSystemError(err, "Run: sentry-mcp paths")
	default:
		return NewSystemError(err, "Run: sentry-mcp doctor")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
