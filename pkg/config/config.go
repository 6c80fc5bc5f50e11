// Package config loads and validates the server's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport kinds the server can listen on.
const (
	TransportStdio     = "stdio"
	TransportWebSocket = "websocket"
)

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Slack     SlackConfig     `yaml:"slack"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig identifies the MCP server and controls tool exposure.
type ServerConfig struct {
	Name              string   `yaml:"name"`
	Version           string   `yaml:"version"`
	ValidateArguments *bool    `yaml:"validate_arguments"` // Defaults to true when unset.
	Tools             []string `yaml:"tools"`              // Optional allowlist; empty exposes everything.
}

// SlackConfig holds Slack Web API settings.
type SlackConfig struct {
	Token   string `yaml:"token"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Duration string (e.g. "30s"); empty uses the client default.
}

// TransportConfig selects how the server accepts connections.
type TransportConfig struct {
	Kind string `yaml:"kind"` // "stdio" (default) or "websocket".
	Addr string `yaml:"addr"` // Listen address for the websocket transport.
}

// LogConfig controls diagnostic logging. Logs always go to stderr so the
// stdio transport keeps stdout for protocol frames.
type LogConfig struct {
	Level string `yaml:"level"` // zap level name; empty means "info".
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:    "slack-mcp",
			Version: "dev",
		},
		Slack: SlackConfig{
			Token: os.Getenv("SLACK_BOT_TOKEN"),
		},
		Transport: TransportConfig{
			Kind: TransportStdio,
		},
	}
}

// Load reads a YAML file and returns a Config merged over the defaults.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing, so the Slack token can be kept in the environment (e.g.
// loaded from a .env file) rather than committed in the config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// ValidateArguments reports whether tool arguments should be checked against
// their schemas before dispatch. It is on unless the config turns it off.
func (c Config) ValidateArguments() bool {
	if c.Server.ValidateArguments == nil {
		return true
	}

	return *c.Server.ValidateArguments
}

// SlackTimeout parses the configured Slack HTTP timeout. Zero means the
// client default.
func (c Config) SlackTimeout() (time.Duration, error) {
	if c.Slack.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Slack.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: slack timeout: %w", err)
	}

	return d, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("config: server name is required")
	}
	if c.Slack.Token == "" {
		return fmt.Errorf("config: slack token is required (set slack.token or SLACK_BOT_TOKEN)")
	}

	switch c.Transport.Kind {
	case TransportStdio:
	case TransportWebSocket:
		if c.Transport.Addr == "" {
			return fmt.Errorf("config: websocket transport requires an addr")
		}
	default:
		return fmt.Errorf("config: unknown transport kind %q", c.Transport.Kind)
	}

	if _, err := c.SlackTimeout(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Server.Tools))
	for _, name := range c.Server.Tools {
		if name == "" {
			return fmt.Errorf("config: tool allowlist entries must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("config: duplicate tool allowlist entry %q", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
