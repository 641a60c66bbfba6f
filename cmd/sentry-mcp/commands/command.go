package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

var (
	commandFormat      string
	commandServerID    string
	commandShowSecrets bool
)

func init() {
	commandCmd.Flags().StringVarP(&commandFormat, "format", "f", string(mcp.FormatJSON),
		"output format: json, yaml, toml")
	commandCmd.Flags().StringVar(&commandServerID, "server-id", mcp.ServerID,
		"context server id to resolve")
	commandCmd.Flags().BoolVar(&commandShowSecrets, "show-secrets", false,
		"print the access token instead of masking it")
	rootCmd.AddCommand(commandCmd)
}

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Resolve and print the server launch command",
	Long: `Resolve the context server command: install or update the npm package,
read the access token, locate the entrypoint and build the node command line.

The result is printed as a client configuration entry. JSON and YAML use the
"mcpServers" layout; TOML uses an [mcp_servers.<name>] table. The access
token is masked unless --show-secrets is given.`,
	Example: `  sentry-mcp command
  sentry-mcp command --format toml >> ~/.codex/config.toml
  sentry-mcp command --project ./my-app --show-secrets`,
	Args: cobra.NoArgs,
	RunE: runCommand,
}

func runCommand(cmd *cobra.Command, _ []string) error {
	format, err := mcp.ParseFormat(commandFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	resolved, err := s.ext.ContextServerCommand(cmd.Context(), commandServerID, s.project)
	if err != nil {
		return err
	}

	out := resolved.Redacted()
	if commandShowSecrets {
		out = resolved
	}
	data, err := mcp.Render(out, commandServerID, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
