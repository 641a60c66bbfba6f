package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
	"github.com/thoreinstein/sentry-mcp/pkg/fileutil"
)

// Runner executes name with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// CLI is a Registry backed by the npm executable. Packages are installed
// below WorkDir/node_modules.
type CLI struct {
	npm     string
	workDir string
	run     Runner
}

// CLIOption configures a CLI.
type CLIOption func(*CLI)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(r Runner) CLIOption {
	return func(c *CLI) {
		c.run = r
	}
}

// NewCLI creates a CLI using the npm binary at npmPath ("npm" when empty)
// and installing into workDir.
func NewCLI(npmPath, workDir string, opts ...CLIOption) *CLI {
	if npmPath == "" {
		npmPath = "npm"
	}
	c := &CLI{npm: npmPath, workDir: workDir, run: execRunner}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorkDir returns the install prefix.
func (c *CLI) WorkDir() string {
	return c.workDir
}

// LatestVersion runs `npm view <pkg> version --json`.
func (c *CLI) LatestVersion(ctx context.Context, pkg string) (string, error) {
	out, err := c.run(ctx, "", c.npm, "view", pkg, "version", "--json")
	if err != nil {
		return "", errors.Wrapf(err, "querying latest version of %s", pkg)
	}
	v, err := parseViewVersion(out)
	if err != nil {
		return "", errors.Wrapf(err, "querying latest version of %s", pkg)
	}
	return v, nil
}

// InstalledVersion reads the version field of the installed package.json.
// A missing package.json means the package is not installed.
func (c *CLI) InstalledVersion(_ context.Context, pkg string) (string, bool, error) {
	manifest := filepath.Join(c.workDir, "node_modules", filepath.FromSlash(pkg), "package.json")
	data, err := fileutil.ReadFileWithLimit(manifest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading installed version of %s", pkg)
	}

	var meta struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", false, errors.Wrapf(err, "parsing %s", manifest)
	}
	if meta.Version == "" {
		return "", false, nil
	}
	return meta.Version, true, nil
}

// Install runs `npm install --prefix <workdir> <pkg>@<version>`.
func (c *CLI) Install(ctx context.Context, pkg, version string) error {
	if err := paths.EnsureDir(c.workDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating work directory %s", c.workDir)
	}
	spec := pkg + "@" + version
	if _, err := c.run(ctx, c.workDir, c.npm,
		"install", "--prefix", c.workDir, "--no-audit", "--no-fund", spec); err != nil {
		return errors.Wrapf(err, "installing %s", spec)
	}
	return nil
}

// parseViewVersion accepts the JSON string npm prints for a single version,
// the array it prints when several versions match, or plain text.
func parseViewVersion(out []byte) (string, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return "", errors.New("npm returned no version")
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err == nil && single != "" {
		return single, nil
	}
	var many []string
	if err := json.Unmarshal(trimmed, &many); err == nil && len(many) > 0 {
		return many[len(many)-1], nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return "", errors.Newf("unexpected npm output: %s", trimmed)
	}
	return strings.Trim(string(trimmed), `"`), nil
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "exec", "cmd", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, errors.Wrapf(err, "%s %s failed", name, firstArg(args))
		}
		return nil, errors.Wrapf(err, "%s %s failed: %s", name, firstArg(args), msg)
	}
	return stdout.Bytes(), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
