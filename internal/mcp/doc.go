// Package mcp builds the command descriptor the host uses to launch the
// Sentry MCP server and renders it in the formats MCP clients read.
//
// A descriptor is always a local stdio process:
//
//	cmd := mcp.BuildCommand("/usr/local/bin/node", entry, token)
//	// cmd.Args == []string{entry, "--access-token=" + token}
//
// [Command.Redacted] returns a copy safe for logs and terminal output. The
// renderers wrap the descriptor the way common clients expect it:
//
//   - [FormatJSON]: a Claude-style {"mcpServers": {...}} document
//   - [FormatYAML]: the same document as YAML
//   - [FormatTOML]: a Codex-style [mcp_servers.<name>] table
package mcp
