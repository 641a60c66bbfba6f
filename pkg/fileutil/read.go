package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
)

// MaxFileSize bounds every file read through this package.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when a file exceeds MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads path, refusing files larger than MaxFileSize.
// A missing file yields an error matching os.ErrNotExist.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// IsPrivate reports whether path grants no permissions to group or others.
// It returns false with a nil error when path does not exist.
func IsPrivate(path string) (bool, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, errors.Wrapf(err, "stat %s", path)
	}
	mode := info.Mode().Perm()
	return mode&0o077 == 0, mode, nil
}
