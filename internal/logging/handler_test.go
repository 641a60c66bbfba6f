package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)

	now := time.Now()
	logger.Info("resolved entrypoint", "path", "/work/dist/index.js")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected level INFO in output, got: %q", output)
	}
	if !strings.Contains(output, "resolved entrypoint") {
		t.Errorf("expected message in output, got: %q", output)
	}
	if !strings.Contains(output, "path=/work/dist/index.js") {
		t.Errorf("expected attribute in output, got: %q", output)
	}
	if !strings.Contains(output, now.Format(time.Kitchen)) {
		t.Errorf("expected time %q in output, got: %q", now.Format(time.Kitchen), output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("expected trailing newline, got: %q", output)
	}
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).
		With("server_id", "sentry-mcp").
		WithGroup("npm").
		With("package", "@sentry/mcp-server")

	logger.Info("checked", "latest", "0.20.0")

	output := buf.String()
	for _, want := range []string{"server_id=sentry-mcp", "npm.package=@sentry/mcp-server", "npm.latest=0.20.0"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "candidate")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("settings loaded", "sentry_access_token", "secret12345")
	logger.Info("command built", "args", []string{"/w/index.js", "--access-token=abcdefgh"})
	logger.Info("value prefix", "foo", "sntrys_secrettoken")

	output := buf.String()
	for _, leaked := range []string{"secret12345", "abcdefgh", "sntrys_secrettoken"} {
		if strings.Contains(output, leaked) {
			t.Errorf("secret %q leaked into output: %q", leaked, output)
		}
	}
	for _, want := range []string{"sentry_access_token=****2345", "--access-token=****efgh", "foo=****oken"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}
