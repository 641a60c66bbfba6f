package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/pkg/fileutil"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// SettingsPermissionCheck flags settings files readable by group or others.
// Those files hold the access token.
type SettingsPermissionCheck struct {
	paths []string
	loose []string
}

var (
	_ Check = (*SettingsPermissionCheck)(nil)
	_ Fixer = (*SettingsPermissionCheck)(nil)
)

// NewSettingsPermissionCheck creates a check over the given files. Missing
// files are skipped.
func NewSettingsPermissionCheck(paths ...string) *SettingsPermissionCheck {
	return &SettingsPermissionCheck{paths: paths}
}

// Name returns the unique identifier for this check.
func (c *SettingsPermissionCheck) Name() string { return "settings-permissions" }

// Category returns the grouping for this check.
func (c *SettingsPermissionCheck) Category() string { return CategoryFiles }

// Run executes the check.
func (c *SettingsPermissionCheck) Run(_ context.Context) *CheckResult {
	c.loose = nil
	if runtime.GOOS == "windows" {
		return newResult(c, SeverityInfo, "permission check skipped on windows")
	}

	modes := map[string]any{}
	for _, p := range c.paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		private, mode, err := fileutil.IsPrivate(p)
		if err != nil {
			r := newResult(c, SeverityError, err.Error())
			return r
		}
		modes[p] = fmt.Sprintf("%04o", mode)
		if !private {
			c.loose = append(c.loose, p)
		}
	}

	if len(modes) == 0 {
		return newResult(c, SeverityInfo, "no settings files present")
	}
	if len(c.loose) > 0 {
		r := newResult(c, SeverityWarning,
			fmt.Sprintf("%d settings file(s) readable by other users", len(c.loose)))
		r.Details = modes
		r.Fixable = true
		r.FixHint = fmt.Sprintf("chmod %04o %s", fileutil.PrivatePerm, c.loose[0])
		return r
	}
	r := newResult(c, SeverityPass, "settings files are private")
	r.Details = modes
	return r
}

// CanFix reports whether the last Run found loose permissions.
func (c *SettingsPermissionCheck) CanFix() bool {
	return len(c.loose) > 0
}

// Fix sets every file found by the last Run to mode 0600.
func (c *SettingsPermissionCheck) Fix() []FixResult {
	results := make([]FixResult, 0, len(c.loose))
	for _, p := range c.loose {
		result := FixResult{Path: p}
		if err := os.Chmod(p, fileutil.PrivatePerm); err != nil {
			result.Description = fmt.Sprintf("failed to chmod %04o: %v", fileutil.PrivatePerm, err)
			result.Error = errors.Wrapf(err, "chmod %04o %s", fileutil.PrivatePerm, p)
		} else {
			result.Fixed = true
			result.Description = fmt.Sprintf("chmod %04o", fileutil.PrivatePerm)
		}
		results = append(results, result)
	}
	c.loose = nil
	return results
}
