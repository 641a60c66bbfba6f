// Package config provides configuration management for sentry-mcp using Viper.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/sentry-mcp/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides (SENTRY_MCP_NODE_PATH, ...).
const EnvPrefix = "SENTRY_MCP"

// Config represents the top-level configuration structure.
type Config struct {
	Version   int    `mapstructure:"version" yaml:"version"`
	NodePath  string `mapstructure:"node_path" yaml:"node_path,omitempty"`
	NPMPath   string `mapstructure:"npm_path" yaml:"npm_path,omitempty"`
	WorkDir   string `mapstructure:"work_dir" yaml:"work_dir"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("node_path", "")
	viper.SetDefault("npm_path", "")
	viper.SetDefault("work_dir", paths.DefaultWorkDir())
	viper.SetDefault("log_format", "text")
}

// Load reads the configuration file and validates it.
// If path is provided, it reads from that specific file and a missing file is an error.
// If path is empty, it searches the default location and falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults only
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			if path != "" && isNotExist(err) {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:   1,
		WorkDir:   paths.DefaultWorkDir(),
		LogFormat: "text",
	}
}
