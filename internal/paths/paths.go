package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used below the XDG base directories.
const AppName = "sentry-mcp"

// ProjectDirName is the per-project directory holding project-scoped settings.
const ProjectDirName = ".sentry-mcp"

// SettingsFileName is the settings store file name, both global and per project.
const SettingsFileName = "settings.yaml"

// Zed extension work directory conventions searched for the installed package.
const (
	// MacOSWorkLayout is relative to $HOME.
	MacOSWorkLayout = "Library/Application Support/Zed/extensions/work/sentry-mcp"
	// LinuxWorkLayout is relative to $HOME.
	LinuxWorkLayout = ".local/share/zed/extensions/work/sentry-mcp"
	// WindowsWorkLayout is relative to %APPDATA%.
	WindowsWorkLayout = "Zed/extensions/work/sentry-mcp"
)

// Environment variables a host may use to announce the extension work
// directory.
const (
	EnvExtensionWorkDir = "ZED_EXTENSION_WORK_DIR"
	EnvWorkDir          = "ZED_WORKDIR"
	EnvExtWorkDir       = "ZED_EXT_WORK_DIR"
)

// WorkDirEnvVars returns the work directory variables in search order. Each
// call returns a new slice.
func WorkDirEnvVars() []string {
	return []string{EnvExtensionWorkDir, EnvWorkDir, EnvExtWorkDir}
}

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns <ConfigHome>/sentry-mcp.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// BackupDir returns <DataHome>/sentry-mcp/backups, where settings files are
// copied before they are rewritten.
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// GlobalSettingsFile returns the user-wide settings store path.
func GlobalSettingsFile() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// ProjectSettingsFile returns the project-scoped settings store path.
// Returns an empty string for an empty projectRoot.
func ProjectSettingsFile(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Join(projectRoot, ProjectDirName, SettingsFileName)
}

// DefaultWorkDir returns the directory npm installs the server package into.
// Returns: <DataHome>/sentry-mcp/work
func DefaultWorkDir() string {
	return filepath.Join(DataHome(), AppName, "work")
}
