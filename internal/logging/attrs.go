package logging

import (
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyServerID  = "server_id"
	KeyPackage   = "package"
	KeyVersion   = "version"
	KeyStage     = "stage"
	KeyPath      = "path"
	KeyDuration  = "duration"
	KeyError     = "error"
)

// Pipeline stage names, logged under KeyStage.
const (
	StageIdentify   = "identify"
	StageInstall    = "install"
	StageSettings   = "settings"
	StageCredential = "credential"
	StageEntrypoint = "entrypoint"
	StageRuntime    = "runtime"
	StageBuild      = "build"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// ServerID returns a slog attribute for a context server id.
func ServerID(id string) slog.Attr {
	return slog.String(KeyServerID, id)
}

// Package returns a slog attribute for an npm package name.
func Package(name string) slog.Attr {
	return slog.String(KeyPackage, name)
}

// Version returns a slog attribute for a package version.
func Version(v string) slog.Attr {
	return slog.String(KeyVersion, v)
}

// Stage returns a slog attribute for a pipeline stage.
func Stage(stage string) slog.Attr {
	return slog.String(KeyStage, stage)
}

// Path returns a slog attribute for a filesystem path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
