package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/sentry-mcp/internal/backup"
	"github.com/thoreinstein/sentry-mcp/internal/editor"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host/local"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
	"github.com/thoreinstein/sentry-mcp/internal/redact"
	"github.com/thoreinstein/sentry-mcp/internal/settings"
)

var (
	settingsScope    string
	settingsServerID string
	tokenFromStdin   bool
)

func init() {
	settingsCmd.PersistentFlags().StringVar(&settingsScope, "scope", string(local.ScopeGlobal),
		"settings file to use: global, project")
	settingsCmd.PersistentFlags().StringVar(&settingsServerID, "server-id", mcp.ServerID,
		"context server id the settings belong to")
	setTokenCmd.Flags().BoolVar(&tokenFromStdin, "stdin", false,
		"read the token from standard input")

	settingsCmd.AddCommand(settingsShowCmd, setTokenCmd, settingsEditCmd, settingsPathCmd,
		settingsBackupsCmd, settingsRestoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the stored context server settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings with the token masked",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var setTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store the Sentry access token",
	Long: `Store sentry_access_token in the global or project settings file.

The token is taken from the argument, from standard input with --stdin, or
prompted for without echo on a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetToken,
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in an editor",
	Args:  cobra.NoArgs,
	RunE:  runSettingsEdit,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path for the scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := settingsFile(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// settingsFile returns the settings file for --scope.
func settingsFile(cmd *cobra.Command) (string, error) {
	scope, err := local.ParseScope(settingsScope)
	if err != nil {
		return "", errors.NewUserError(err, "Use --scope global or --scope project")
	}
	s, err := newSession(cmd)
	if err != nil {
		return "", err
	}
	return s.host.Store().Path(scope, s.project), nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	raw, from, ok, err := s.host.Store().Locate(settingsServerID, s.project)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(w, "No settings stored for %s.\n", settingsServerID)
		fmt.Fprintln(w, "Run: sentry-mcp settings set-token")
		return nil
	}

	decoded, err := settings.Decode(raw)
	if err != nil {
		return errors.NewUserError(err, "Run: sentry-mcp settings edit")
	}

	fmt.Fprintf(w, "Source: %s\n", from)
	fmt.Fprintf(w, "sentry_access_token: %s\n", displayToken(decoded.SentryAccessToken))
	return nil
}

func displayToken(token string) string {
	if strings.TrimSpace(token) == "" {
		return "(not set)"
	}
	return redact.MaskValue(token)
}

func runSetToken(cmd *cobra.Command, args []string) error {
	scope, err := local.ParseScope(settingsScope)
	if err != nil {
		return errors.NewUserError(err, "Use --scope global or --scope project")
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	token, err := readToken(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.NewUserError(errors.New("access token is empty"), "")
	}

	path, err := s.host.Store().SetAccessToken(scope, s.project, settingsServerID, token)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Stored sentry_access_token (%s) in %s\n", redact.MaskValue(token), path)
	}
	return nil
}

// readToken takes the token from args, --stdin, or a no-echo terminal prompt.
func readToken(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if tokenFromStdin {
		return readLine(cmd.InOrStdin())
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.NewUserError(errors.New("no token given"),
			"Pass the token as an argument or use --stdin")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Sentry access token: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "reading token")
	}
	return strings.TrimSpace(string(b)), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading token from stdin")
	}
	return strings.TrimSpace(line), nil
}

func runSettingsEdit(cmd *cobra.Command, _ []string) error {
	scope, err := local.ParseScope(settingsScope)
	if err != nil {
		return errors.NewUserError(err, "Use --scope global or --scope project")
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	store := s.host.Store()
	path := store.Path(scope, s.project)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := store.SetAccessToken(scope, s.project, settingsServerID, ""); err != nil {
			return errors.NewSystemError(err, "")
		}
	} else if _, err := s.backups.Backup(path); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "backing up %s", path), "")
	}

	return editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
}

var settingsBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List settings file backups",
	Long: `List the copies taken before settings files were rewritten, newest
first. Restore one with: sentry-mcp settings restore <id>`,
	Args: cobra.NoArgs,
	RunE: runSettingsBackups,
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a settings file from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsRestore,
}

func runSettingsBackups(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	list, err := s.backups.List()
	if errors.Is(err, backup.ErrNoBackupsFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No backups in %s\n", s.backups.Dir())
		return nil
	}
	if err != nil {
		return err
	}
	renderBackups(cmd.OutOrStdout(), list)
	return nil
}

func renderBackups(w io.Writer, list []backup.Manifest) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "CREATED", "SOURCE", "SIZE"})
	for _, m := range list {
		t.AppendRow(table.Row{m.ID, m.CreatedAt.Local().Format(time.DateTime), m.Source, m.Size})
	}
	t.Render()
}

func runSettingsRestore(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	m, err := s.backups.Get(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run: sentry-mcp settings backups")
	}
	if _, err := s.backups.Restore(m.ID); err != nil {
		return errors.NewSystemError(err, "")
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from backup %s\n", m.Source, m.ID)
	}
	return nil
}
