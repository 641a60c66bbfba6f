package commands

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/host/local"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
)

var pathsJSON bool

func init() {
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(pathsCmd)
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the entrypoint search and file locations",
	Long: `List every location searched for the @sentry/mcp-server entrypoint in
precedence order and whether it exists, followed by the config, settings
and work directory paths.`,
	Args: cobra.NoArgs,
	RunE: runPaths,
}

type pathsOutput struct {
	Candidates      []entrypoint.Candidate `json:"candidates"`
	ConfigFile      string                 `json:"config_file"`
	GlobalSettings  string                 `json:"global_settings"`
	ProjectSettings string                 `json:"project_settings,omitempty"`
	WorkDir         string                 `json:"work_dir"`
}

func runPaths(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	store := s.host.Store()
	out := pathsOutput{
		Candidates:      s.ext.Resolver().Inspect(),
		ConfigFile:      paths.ConfigFile(),
		GlobalSettings:  store.Path(local.ScopeGlobal, s.project),
		ProjectSettings: store.Path(local.ScopeProject, s.project),
		WorkDir:         s.host.WorkDir(),
	}

	if pathsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	renderPaths(cmd.OutOrStdout(), out)
	return nil
}

func renderPaths(w io.Writer, out pathsOutput) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Entrypoint search")
	t.AppendHeader(table.Row{"#", "SOURCE", "PATH", "EXISTS"})

	first := true
	for i, c := range out.Candidates {
		exists := text.FgHiBlack.Sprint("no")
		if c.Exists {
			exists = text.FgGreen.Sprint("yes")
			if first {
				exists = text.FgGreen.Sprint("yes (selected)")
				first = false
			}
		}
		t.AppendRow(table.Row{i + 1, c.Source, c.Path, exists})
	}
	t.Render()

	f := table.NewWriter()
	f.SetOutputMirror(w)
	f.SetStyle(table.StyleRounded)
	f.SetTitle("Files")
	f.AppendRow(table.Row{"config", out.ConfigFile})
	f.AppendRow(table.Row{"global settings", out.GlobalSettings})
	if out.ProjectSettings != "" {
		f.AppendRow(table.Row{"project settings", out.ProjectSettings})
	}
	f.AppendRow(table.Row{"work dir", out.WorkDir})
	f.Render()
}
