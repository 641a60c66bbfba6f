package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/sentry-mcp/cmd"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
	"github.com/thoreinstein/sentry-mcp/internal/probe"
)

var (
	probeTimeout  time.Duration
	probeJSON     bool
	probeServerID string
)

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", probe.DefaultTimeout,
		"maximum time for start-up and handshake")
	probeCmd.Flags().BoolVar(&probeJSON, "json", false,
		"output the report as JSON")
	probeCmd.Flags().StringVar(&probeServerID, "server-id", mcp.ServerID,
		"context server id to resolve")
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Start the server and perform the MCP handshake",
	Long: `Resolve the command, start the server, run MCP initialize and
tools/list, then stop it. This confirms the package starts and accepts the
configured token.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	resolved, err := s.ext.ContextServerCommand(cmd.Context(), probeServerID, s.project)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	report, err := probe.New(probe.WithClientInfo("sentry-mcp", buildinfo.Version)).Probe(ctx, resolved)
	if err != nil {
		return errors.NewSystemError(err, "Run: sentry-mcp doctor")
	}

	w := cmd.OutOrStdout()
	if probeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Server:   %s %s\n", report.ServerName, report.ServerVersion)
	fmt.Fprintf(w, "Protocol: %s\n", report.ProtocolVersion)
	fmt.Fprintf(w, "Elapsed:  %s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Tools (%d):\n", len(report.Tools))
	for _, name := range report.Tools {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	return nil
}
