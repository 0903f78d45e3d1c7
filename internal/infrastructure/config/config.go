// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for qadmin configuration.
	DefaultConfigDir = ".qadmin"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultAuditFile is the default audit database file name.
	DefaultAuditFile = "audit.db"
)

// Supported MCP transports.
const (
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
	TransportStdio          = "stdio"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Environment string         `yaml:"environment,omitempty"`
	Project     string         `yaml:"project,omitempty"`
	Log         LogConfig      `yaml:"log,omitempty"`
	Server      ServerConfig   `yaml:"server,omitempty"`
	Qdrant      QdrantConfig   `yaml:"qdrant,omitempty"`
	Embedder    EmbedderConfig `yaml:"embedder,omitempty"`
	Audit       AuditConfig    `yaml:"audit,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Addr      string `yaml:"addr,omitempty"`
	Transport string `yaml:"transport,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
}

// QdrantConfig holds the default Qdrant destination.
// URL is the REST endpoint; the gRPC port is taken from GRPCPort.
type QdrantConfig struct {
	URL      string `yaml:"url,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	GRPCPort int    `yaml:"grpc_port,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// AuditConfig holds configuration for the SQLite audit log.
type AuditConfig struct {
	// Path is the SQLite file. Empty disables the audit log.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Environment: "dev",
		Project:     "qdrant-admin-mcp",
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			Transport: TransportStreamableHTTP,
			Endpoint:  "/mcp",
		},
		Qdrant: QdrantConfig{
			URL:      "http://localhost:6333",
			GRPCPort: 6334,
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
	}
}

// Load loads configuration from the .qadmin directory in the given path.
// A missing file yields the defaults; environment overrides apply either way.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if cfg.Audit.Path != "" && !filepath.IsAbs(cfg.Audit.Path) {
		cfg.Audit.Path = filepath.Join(basePath, cfg.Audit.Path)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	strs := []struct {
		env string
		dst *string
	}{
		{"QDRANT_URL", &c.Qdrant.URL},
		{"QDRANT_API_KEY", &c.Qdrant.APIKey},
		{"OPENAI_API_KEY", &c.Embedder.APIKey},
		{"EMBEDDER_BASE_URL", &c.Embedder.BaseURL},
		{"EMBEDDER_MODEL", &c.Embedder.Model},
		{"MCP_ADDR", &c.Server.Addr},
		{"MCP_TRANSPORT", &c.Server.Transport},
		{"LOG_LEVEL", &c.Log.Level},
		{"ENVIRONMENT", &c.Environment},
		{"AUDIT_PATH", &c.Audit.Path},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv("QDRANT_GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing QDRANT_GRPC_PORT: %w", err)
		}
		c.Qdrant.GRPCPort = port
	}
	return nil
}

// Validate reports configuration that cannot serve requests.
func (c *Config) Validate() error {
	if c.Qdrant.URL == "" {
		return errors.New("qdrant url is required (set qdrant.url or QDRANT_URL)")
	}
	if _, err := url.Parse(c.Qdrant.URL); err != nil {
		return fmt.Errorf("invalid qdrant url: %w", err)
	}
	if c.Qdrant.GRPCPort <= 0 {
		return fmt.Errorf("invalid qdrant grpc port %d", c.Qdrant.GRPCPort)
	}
	switch c.Server.Transport {
	case TransportStreamableHTTP, TransportSSE, TransportStdio:
	default:
		return fmt.Errorf("unknown transport %q", c.Server.Transport)
	}
	return nil
}

// ConfigDir returns the path to the .qadmin config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a qadmin config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
