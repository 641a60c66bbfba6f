package local

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
	"github.com/thoreinstein/sentry-mcp/pkg/fileutil"
)

// Scope selects which settings file a write goes to.
type Scope string

// Settings scopes.
const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// ParseScope parses "global" or "project".
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeGlobal, ScopeProject:
		return Scope(s), nil
	}
	return "", errors.Newf("unknown settings scope %q (want global or project)", s)
}

const (
	keyContextServers = "context_servers"
	keySettings       = "settings"
	keyAccessToken    = "sentry_access_token"
)

// Store reads and writes context server settings kept as
//
//	context_servers:
//	  sentry-mcp:
//	    settings:
//	      sentry_access_token: ...
//
// in a global file and an optional per-project file. The project file wins
// when it has an entry for the server.
type Store struct {
	globalPath string
	backup     func(path string) error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackup makes the Store call fn with the path of an existing settings
// file before rewriting it. A failing backup aborts the write.
func WithBackup(fn func(path string) error) StoreOption {
	return func(s *Store) {
		s.backup = fn
	}
}

// NewStore returns a Store whose global file is globalPath.
func NewStore(globalPath string, opts ...StoreOption) *Store {
	s := &Store{globalPath: globalPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file used for scope. The project path is empty when
// project has no root.
func (s *Store) Path(scope Scope, project host.Project) string {
	if scope == ScopeProject {
		return paths.ProjectSettingsFile(project.Root)
	}
	return s.globalPath
}

// Lookup returns the settings value stored for serverID; ok is false when
// neither file has one.
func (s *Store) Lookup(serverID string, project host.Project) (any, bool, error) {
	v, _, ok, err := s.Locate(serverID, project)
	return v, ok, err
}

// Locate is Lookup that also reports the file the value came from.
func (s *Store) Locate(serverID string, project host.Project) (value any, path string, ok bool, err error) {
	for _, p := range []string{paths.ProjectSettingsFile(project.Root), s.globalPath} {
		if p == "" {
			continue
		}
		doc, err := readDocument(p)
		if err != nil {
			return nil, "", false, err
		}
		if v, ok := lookupSettings(doc, serverID); ok {
			return v, p, true, nil
		}
	}
	return nil, "", false, nil
}

// SetAccessToken stores token for serverID in the file for scope, keeping
// every other key in that file. The file is written with mode 0600.
func (s *Store) SetAccessToken(scope Scope, project host.Project, serverID, token string) (string, error) {
	path := s.Path(scope, project)
	if path == "" {
		return "", errors.New("project scope requires a project root")
	}

	doc, err := readDocument(path)
	if err != nil {
		return "", err
	}
	if doc == nil {
		doc = map[string]any{}
	} else if s.backup != nil {
		if err := s.backup(path); err != nil {
			return "", errors.Wrapf(err, "backing up %s", path)
		}
	}
	servers := childMap(doc, keyContextServers)
	entry := childMap(servers, serverID)
	settings := childMap(entry, keySettings)
	settings[keyAccessToken] = token

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return "", errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	if err := fileutil.WriteYAML(path, doc, fileutil.PrivatePerm); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

func readDocument(path string) (map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading settings file %s", path)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing settings file %s", path)
	}
	return doc, nil
}

func lookupSettings(doc map[string]any, serverID string) (any, bool) {
	servers, ok := doc[keyContextServers].(map[string]any)
	if !ok {
		return nil, false
	}
	entry, ok := servers[serverID].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := entry[keySettings]
	return v, ok
}

// childMap returns parent[key] as a map, replacing any non-map value.
func childMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}
