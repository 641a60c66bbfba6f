package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

var (
	configurationServerID string
	configurationPart     string
)

func init() {
	configurationCmd.Flags().StringVar(&configurationServerID, "server-id", mcp.ServerID,
		"context server id")
	configurationCmd.Flags().StringVar(&configurationPart, "part", "all",
		"part to print: all, instructions, schema, defaults")
	rootCmd.AddCommand(configurationCmd)
}

var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Print the configuration surface shown by the editor",
	Long: `Print the installation instructions, settings JSON schema and default
settings for the context server. With --part all the three documents are
printed as one JSON object.`,
	Args: cobra.NoArgs,
	RunE: runConfiguration,
}

func runConfiguration(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	c, err := s.ext.ContextServerConfiguration(cmd.Context(), configurationServerID, s.project)
	if err != nil {
		return err
	}
	if c == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "no configuration available for %q\n", configurationServerID)
		return nil
	}

	w := cmd.OutOrStdout()
	switch configurationPart {
	case "instructions":
		_, err = fmt.Fprint(w, c.InstallationInstructions)
	case "schema":
		_, err = fmt.Fprint(w, c.SettingsSchema)
	case "defaults":
		_, err = fmt.Fprint(w, c.DefaultSettings)
	case "all":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(c)
	default:
		return errors.NewUserError(
			errors.Newf("unknown part %q", configurationPart),
			"Use one of: all, instructions, schema, defaults")
	}
	return err
}
