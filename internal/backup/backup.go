package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sentry-mcp/internal/paths"
	"github.com/thoreinstein/sentry-mcp/pkg/fileutil"
)

// Manager creates, lists and restores settings backups.
type Manager struct {
	rootDir     string
	keep        int
	toolVersion string
	now         func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir sets the backup root directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetention sets how many backups are kept. Values below 1 are ignored.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.keep = n
		}
	}
}

// WithToolVersion records v in each manifest.
func WithToolVersion(v string) Option {
	return func(m *Manager) {
		m.toolVersion = v
	}
}

// NewManager returns a Manager rooted at paths.BackupDir().
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir: paths.BackupDir(),
		keep:    DefaultRetentionCount,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the backup root directory.
func (m *Manager) Dir() string { return m.rootDir }

// Backup copies the file at path into a new backup and prunes old ones.
// A missing file is not an error; the returned manifest is nil.
func (m *Manager) Backup(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf("%s is not a regular file", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if err := paths.EnsureDir(m.rootDir, paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}
	id, dir, err := m.newBackupDir()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		Source:      abs,
		SHA256:      hashBytes(data),
		Mode:        info.Mode().Perm(),
		Size:        int64(len(data)),
		ToolVersion: m.toolVersion,
		ID:          id,
	}

	if err := fileutil.WriteAtomic(filepath.Join(dir, copyName), data, fileutil.PrivatePerm); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing backup copy")
	}
	if err := fileutil.WriteJSON(filepath.Join(dir, manifestName), manifest, fileutil.PrivatePerm); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(m.keep); err != nil {
		return manifest, errors.Wrap(err, "pruning backups")
	}
	return manifest, nil
}

// newBackupDir creates a directory named after the current time, adding a
// counter when one with that name already exists.
func (m *Manager) newBackupDir() (id, dir string, err error) {
	base := m.now().UTC().Format(idLayout)
	id = base
	for i := 1; ; i++ {
		dir = filepath.Join(m.rootDir, id)
		err = os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
		id = base + "-" + strconv.Itoa(i)
	}
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return manifests, nil
}

// Get returns the manifest of backup id.
func (m *Manager) Get(id string) (*Manifest, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, errors.Newf("invalid backup id %q", id)
	}

	data, err := os.ReadFile(filepath.Join(m.rootDir, id, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// Restore writes backup id back to its source path after verifying it. The
// file being replaced is backed up first, so a restore can be undone.
func (m *Manager) Restore(id string) (*Manifest, error) {
	manifest, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(filepath.Join(m.rootDir, id, copyName))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", id)
	}
	if hashBytes(data) != manifest.SHA256 {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s hash mismatch", id)
	}

	if _, err := m.Backup(manifest.Source); err != nil {
		return nil, errors.Wrapf(err, "backing up %s", manifest.Source)
	}

	if err := paths.EnsureDir(filepath.Dir(manifest.Source), paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", manifest.Source)
	}
	mode := manifest.Mode
	if mode == 0 {
		mode = fileutil.PrivatePerm
	}
	if err := fileutil.WriteAtomic(manifest.Source, data, mode); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", manifest.Source)
	}
	return manifest, nil
}

// Prune removes all but the newest keep backups.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}
	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(filepath.Join(m.rootDir, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
