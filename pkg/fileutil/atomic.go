// Package fileutil writes and reads the small files sentry-mcp manages:
// settings stores, exported server descriptors and npm manifests.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
)

// PrivatePerm is the mode used for files that may hold an access token.
const PrivatePerm os.FileMode = 0o600

// WriteAtomic replaces path with data. The bytes go to a temp file in the
// same directory which is renamed over path, so a reader never observes a
// partial file. The parent directory must exist.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sentry-mcp-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	renamed = true
	return nil
}

// WriteYAML marshals v and writes it with WriteAtomic.
func WriteYAML(path string, v any, perm os.FileMode) (err error) {
	// yaml.v3 panics on some unsupported values.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return WriteAtomic(path, withNewline(data), perm)
}

// WriteJSON marshals v with two-space indentation and writes it with
// WriteAtomic.
func WriteJSON(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return WriteAtomic(path, withNewline(data), perm)
}

func withNewline(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data
}
