// Package paths provides cross-platform path resolution for sentry-mcp.
//
// Two families of paths live here:
//
//   - sentry-mcp's own directories (config file, settings store, npm work
//     directory), resolved through github.com/adrg/xdg.
//   - The Zed extension work directory conventions that the entrypoint
//     resolver searches: the work-directory environment variables and the
//     per-OS layouts below $HOME and %APPDATA%.
//
// # sentry-mcp Directories
//
//	| Purpose        | Linux                               | macOS                                        |
//	|----------------|-------------------------------------|----------------------------------------------|
//	| Config file    | ~/.config/sentry-mcp/config.yaml    | ~/Library/Application Support/sentry-mcp/... |
//	| Settings store | ~/.config/sentry-mcp/settings.yaml  | ~/Library/Application Support/sentry-mcp/... |
//	| npm work dir   | ~/.local/share/sentry-mcp/work      | ~/Library/Application Support/sentry-mcp/... |
//
// Project-scoped settings live in <project>/.sentry-mcp/settings.yaml.
package paths
