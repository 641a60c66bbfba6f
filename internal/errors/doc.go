// Package errors provides error handling conventions for sentry-mcp.
//
// This package defines sentinel errors for the context-server resolution
// pipeline, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions. It also re-exports the
// helpers from github.com/cockroachdb/errors so callers need a single import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific failure stages
// using [Is]:
//
//	if errors.Is(err, errors.ErrMissingAccessToken) {
//	    // prompt the user for a token
//	}
//
// The user-facing message of a pipeline failure is never the sentinel text
// itself; it is the message built at the failure site with [Mark], so the
// host can display err.Error() verbatim.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, missing token, etc.)
//   - ExitSystem (2): System-related error (I/O, npm, node, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
