// Package configuration serves the static configuration surface of the
// context server: installation instructions, the settings JSON schema and
// the default settings document.
package configuration

import (
	_ "embed"

	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

var (
	//go:embed assets/installation_instructions.md
	installationInstructions string

	//go:embed assets/settings_schema.json
	settingsSchema string

	//go:embed assets/default_settings.jsonc
	defaultSettings string
)

// Configuration is the configuration surface shown by the host.
type Configuration struct {
	InstallationInstructions string `json:"installation_instructions"`
	SettingsSchema           string `json:"settings_schema"`
	DefaultSettings          string `json:"default_settings"`
}

// For returns the configuration for serverID. ok is false for any id other
// than mcp.ServerID; that is "none available", not an error.
func For(serverID string) (cfg *Configuration, ok bool) {
	if serverID != mcp.ServerID {
		return nil, false
	}
	return &Configuration{
		InstallationInstructions: installationInstructions,
		SettingsSchema:           settingsSchema,
		DefaultSettings:          defaultSettings,
	}, true
}
