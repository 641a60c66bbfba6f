package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
)

func TestRenderPaths(t *testing.T) {
	out := pathsOutput{
		Candidates: []entrypoint.Candidate{
			{Path: "/work/node_modules/@sentry/mcp-server/dist/index.js", Source: entrypoint.SourceCwd},
			{Path: "/a/index.js", Source: "ZED_EXTENSION_WORK_DIR", Exists: true},
			{Path: "/b/index.js", Source: entrypoint.SourceLinux, Exists: true},
		},
		ConfigFile:     "/cfg/config.yaml",
		GlobalSettings: "/cfg/settings.yaml",
		WorkDir:        "/work",
	}

	var buf bytes.Buffer
	renderPaths(&buf, out)
	got := buf.String()

	if n := strings.Count(got, "(selected)"); n != 1 {
		t.Errorf("expected exactly one selected candidate, got %d:\n%s", n, got)
	}
	for _, want := range []string{"ZED_EXTENSION_WORK_DIR", "/a/index.js", "/cfg/settings.yaml", "/work"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "project settings") {
		t.Errorf("empty project settings path should be omitted:\n%s", got)
	}
}
