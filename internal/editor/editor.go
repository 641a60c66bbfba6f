// Package editor opens settings files in the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

// EnvOverride names an editor used only by sentry-mcp.
const EnvOverride = "SENTRY_MCP_EDITOR"

// Streams are the terminal streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Open runs the detected editor on path and waits for it to exit.
// The editor variable may carry arguments, as in EDITOR="code --wait".
func Open(ctx context.Context, path string, s Streams) error {
	argv := Command(os.LookupEnv, exec.LookPath)
	argv = append(argv, path)

	logging.FromContext(ctx).Debug("opening editor", "editor", argv[0], logging.Path(path))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor argv. Lookup order: $SENTRY_MCP_EDITOR,
// $EDITOR, $VISUAL, nano, vi. Empty variables count as unset.
func Command(lookupEnv func(string) (string, bool), lookPath func(string) (string, error)) []string {
	for _, key := range []string{EnvOverride, "EDITOR", "VISUAL"} {
		if v, ok := lookupEnv(key); ok {
			if fields := strings.Fields(v); len(fields) > 0 {
				return fields
			}
		}
	}
	if _, err := lookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}
