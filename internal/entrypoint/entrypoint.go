// Package entrypoint locates the installed @sentry/mcp-server entry script.
//
// The package manager installs into a work directory whose location depends
// on the host, so a fixed list of candidate directories is searched in order
// and the first one containing a regular file at RelativePath wins.
package entrypoint

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
)

// RelativePath is the entry script relative to a work directory.
const RelativePath = "node_modules/@sentry/mcp-server/dist/index.js"

// NotFoundMessage is the error text when no candidate exists.
const NotFoundMessage = "Could not locate @sentry/mcp-server entrypoint in Zed extension work directory."

// Env is the process environment consulted while building candidates.
type Env interface {
	Getwd() (string, error)
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the real process environment.
type OSEnv struct{}

// Getwd implements Env.
func (OSEnv) Getwd() (string, error) { return os.Getwd() }

// LookupEnv implements Env.
func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// FileChecker reports whether path is an existing regular file.
type FileChecker func(path string) bool

// IsRegularFile is the default FileChecker.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Candidate is one searched location.
type Candidate struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Exists bool   `json:"exists"`
}

// Candidate sources.
const (
	SourceCwd     = "cwd"
	SourceMacOS   = "HOME (macOS)"
	SourceLinux   = "HOME (Linux)"
	SourceAppData = "APPDATA"
)

// Resolver searches the candidate list.
type Resolver struct {
	env    Env
	isFile FileChecker
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv replaces the process environment.
func WithEnv(env Env) Option {
	return func(r *Resolver) {
		if env != nil {
			r.env = env
		}
	}
}

// WithFileChecker replaces the regular file test.
func WithFileChecker(fc FileChecker) Option {
	return func(r *Resolver) {
		if fc != nil {
			r.isFile = fc
		}
	}
}

// NewResolver returns a Resolver using the real environment and filesystem
// unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{env: OSEnv{}, isFile: IsRegularFile}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type source struct {
	path   string
	source string
}

// sources builds the ordered candidate list. A failing Getwd or an unset
// variable contributes nothing; a variable set to an empty string still does.
func (r *Resolver) sources() []source {
	var out []source
	add := func(base, layout, src string) {
		out = append(out, source{
			path:   filepath.Join(base, filepath.FromSlash(layout), filepath.FromSlash(RelativePath)),
			source: src,
		})
	}

	if cwd, err := r.env.Getwd(); err == nil {
		add(cwd, "", SourceCwd)
	}
	for _, key := range paths.WorkDirEnvVars() {
		if base, ok := r.env.LookupEnv(key); ok {
			add(base, "", key)
		}
	}
	if home, ok := r.env.LookupEnv("HOME"); ok {
		add(home, paths.MacOSWorkLayout, SourceMacOS)
		add(home, paths.LinuxWorkLayout, SourceLinux)
	}
	if appData, ok := r.env.LookupEnv("APPDATA"); ok {
		add(appData, paths.WindowsWorkLayout, SourceAppData)
	}
	return out
}

// Candidates returns the searched paths in precedence order.
func (r *Resolver) Candidates() []string {
	srcs := r.sources()
	out := make([]string, len(srcs))
	for i, s := range srcs {
		out[i] = s.path
	}
	return out
}

// Resolve returns the first candidate that is a regular file. When none is,
// the error is marked errors.ErrEntrypointNotFound.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	logger := logging.FromContext(ctx)
	for _, s := range r.sources() {
		ok := r.isFile(s.path)
		logger.Log(ctx, logging.LevelTrace, "entrypoint candidate",
			logging.Path(s.path), slog.String("source", s.source), slog.Bool("exists", ok))
		if ok {
			return s.path, nil
		}
	}
	return "", errors.Mark(errors.New(NotFoundMessage), errors.ErrEntrypointNotFound)
}

// Inspect checks every candidate without stopping at the first match.
func (r *Resolver) Inspect() []Candidate {
	srcs := r.sources()
	out := make([]Candidate, len(srcs))
	for i, s := range srcs {
		out[i] = Candidate{Path: s.path, Source: s.source, Exists: r.isFile(s.path)}
	}
	return out
}

// Candidates returns the candidate paths for env.
func Candidates(env Env) []string {
	return NewResolver(WithEnv(env)).Candidates()
}
