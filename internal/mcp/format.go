package mcp

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
)

// Format selects how a descriptor is rendered.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ErrUnknownFormat is returned by ParseFormat and Render.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (want json, yaml or toml)", s)
}

// stdioServer is one entry in a client configuration document.
type stdioServer struct {
	Type    string            `json:"type" yaml:"type"`
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args" yaml:"args"`
	Env     map[string]string `json:"env" yaml:"env"`
}

type clientDocument struct {
	MCPServers map[string]stdioServer `json:"mcpServers" yaml:"mcpServers"`
}

type codexDocument struct {
	MCPServers map[string]*Command `toml:"mcp_servers"`
}

// Render serializes cmd under name in format f.
func Render(cmd *Command, name string, f Format) ([]byte, error) {
	if cmd == nil {
		return nil, errors.New("nil command")
	}
	c := cmd.Clone()

	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(clientDoc(c, name), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(clientDoc(c, name))
		if err != nil {
			return nil, errors.Wrap(err, "marshaling YAML")
		}
		return data, nil
	case FormatTOML:
		data, err := toml.Marshal(codexDocument{MCPServers: map[string]*Command{name: c}})
		if err != nil {
			return nil, errors.Wrap(err, "marshaling TOML")
		}
		return data, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}
}

func clientDoc(c *Command, name string) clientDocument {
	return clientDocument{MCPServers: map[string]stdioServer{
		name: {Type: "stdio", Command: c.Command, Args: c.Args, Env: c.Env},
	}}
}
