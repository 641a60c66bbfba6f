package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept after each new one.
const DefaultRetentionCount = 10

const (
	manifestName = "manifest.json"
	copyName     = "settings.yaml"
	idLayout     = "20060102T150405.000000000"
)

var (
	// ErrNoBackupsFound indicates no backup exists, or not the requested one.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the stored copy no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json.
type Manifest struct {
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	Source    string      `json:"source"`
	SHA256    string      `json:"sha256"`
	Mode      fs.FileMode `json:"mode"`
	Size      int64       `json:"size"`

	// ToolVersion is the sentry-mcp version that took the backup.
	ToolVersion string `json:"tool_version"`

	// ID is the backup directory name; it is not stored in the file.
	ID string `json:"-"`
}
