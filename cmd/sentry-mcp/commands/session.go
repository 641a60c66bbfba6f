package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/sentry-mcp/cmd"
	"github.com/thoreinstein/sentry-mcp/internal/backup"
	"github.com/thoreinstein/sentry-mcp/internal/config"
	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/extension"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/host/local"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/npm"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
)

// session bundles the local host and the extension built on it.
type session struct {
	cfg     *config.Config
	host    *local.Host
	ext     *extension.Extension
	backups *backup.Manager
	project host.Project
}

// workDirEnv reports the npm work directory as the current directory, the
// way an editor runs extensions from their work directory.
type workDirEnv struct {
	entrypoint.OSEnv
	dir string
}

func (e workDirEnv) Getwd() (string, error) { return e.dir, nil }

func newSession(cmd *cobra.Command) (*session, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}

	project, err := resolveProject(projectRoot)
	if err != nil {
		return nil, err
	}

	workDir := c.WorkDir
	registry := &spinnerRegistry{
		Registry: npm.NewCLI(c.NPMPath, workDir),
		out:      cmd.ErrOrStderr(),
		enabled:  !quiet && logging.IsTTY(cmd.ErrOrStderr()),
	}
	backups := backup.NewManager(backup.WithToolVersion(buildinfo.Version))
	store := local.NewStore(paths.GlobalSettingsFile(), local.WithBackup(func(path string) error {
		m, err := backups.Backup(path)
		if err == nil && m != nil {
			logging.FromContext(cmd.Context()).Debug("settings backed up", "id", m.ID, logging.Path(path))
		}
		return err
	}))
	h := local.New(c, local.WithRegistry(registry), local.WithStore(store))
	ext := extension.New(h, extension.WithEnv(workDirEnv{dir: h.WorkDir()}))

	return &session{cfg: c, host: h, ext: ext, backups: backups, project: project}, nil
}

// resolveProject returns the --project root, or the current directory.
func resolveProject(root string) (host.Project, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return host.Project{}, errors.Wrap(err, "getting working directory")
		}
		return host.Project{Root: wd}, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return host.Project{}, errors.Wrapf(err, "resolving project %s", root)
	}
	return host.Project{Root: abs}, nil
}

// spinnerRegistry shows a spinner on a terminal while npm installs.
type spinnerRegistry struct {
	npm.Registry
	out     io.Writer
	enabled bool
}

func (r *spinnerRegistry) Install(ctx context.Context, pkg, version string) error {
	if !r.enabled {
		return r.Registry.Install(ctx, pkg, version)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.out))
	s.Suffix = " Installing " + pkg + "@" + version + "..."
	s.Start()
	err := r.Registry.Install(ctx, pkg, version)
	s.Stop()
	return err
}
