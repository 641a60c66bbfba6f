package commands

import (
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

var runServerID string

func init() {
	runCmd.Flags().StringVar(&runServerID, "server-id", mcp.ServerID,
		"context server id to resolve")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the command and run the server on stdio",
	Long: `Resolve the context server command and start it with this process's
stdin, stdout and stderr, so sentry-mcp can be configured directly as a
stdio MCP server in any client. The server's exit code is passed through.`,
	Example: `  # Claude Code
  claude mcp add sentry -- sentry-mcp run`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	resolved, err := s.ext.ContextServerCommand(ctx, runServerID, s.project)
	if err != nil {
		return err
	}

	red := resolved.Redacted()
	logging.FromContext(ctx).Debug("starting server", "command", red.Command, "args", red.Args)

	proc := exec.CommandContext(ctx, resolved.Command, resolved.Args...)
	proc.Stdin = cmd.InOrStdin()
	proc.Stdout = cmd.OutOrStdout()
	proc.Stderr = cmd.ErrOrStderr()
	if len(resolved.Env) > 0 {
		env := proc.Environ()
		for k, v := range resolved.Env {
			env = append(env, k+"="+v)
		}
		proc.Env = env
	}

	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errors.NewExitError(nil, exitErr.ExitCode())
		}
		return errors.NewSystemError(errors.Wrap(err, "starting server"), "Run: sentry-mcp doctor")
	}
	return nil
}
