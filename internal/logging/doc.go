// Package logging provides structured logging for sentry-mcp using slog.
//
// Two output formats are supported: a compact, colorized text format for
// terminals and JSON for machines. Both formats pass attribute values through
// the redact package so access tokens never reach a log sink in clear text.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("resolved entrypoint", logging.Path(p))
//
// The CLI stores the configured logger in the command context; library code
// retrieves it with [FromContext] and falls back to a discarding logger.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//	}
package logging
