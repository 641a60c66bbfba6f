// Package config provides configuration management for the sentry-mcp CLI.
//
// This package loads sentry-mcp's own configuration file. It is distinct from
// the context server settings (the access token), which live in the settings
// store managed by the local host.
//
// # Configuration File
//
// The default location is <xdg config home>/sentry-mcp/config.yaml:
//
//	version: 1
//	node_path: /usr/local/bin/node    # optional, default: node on PATH
//	npm_path: /usr/local/bin/npm      # optional, default: npm on PATH
//	work_dir: /srv/sentry-mcp/work    # optional, default: <xdg data home>/sentry-mcp/work
//	log_format: text                  # text or json
//
// Every key can be overridden from the environment with the SENTRY_MCP_
// prefix, e.g. SENTRY_MCP_NODE_PATH.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return errors.Wrap(err, "loading config")
//	}
//
// # Validation
//
// [Load] validates automatically; [Validate] returns every problem at once:
//
//	for _, e := range config.Validate(cfg) {
//	    fmt.Println(e)
//	}
package config
