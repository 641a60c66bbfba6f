package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/sentry-mcp/cmd"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

var versionJSON bool

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		if versionJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]string{
				"version":   buildinfo.Version,
				"commit":    buildinfo.Commit,
				"date":      buildinfo.Date,
				"server_id": mcp.ServerID,
				"package":   mcp.PackageName,
			})
		}
		fmt.Fprintln(w, buildinfo.Summary())
		fmt.Fprintf(w, "Context server %s runs %s\n", mcp.ServerID, mcp.PackageName)
		return nil
	},
}
