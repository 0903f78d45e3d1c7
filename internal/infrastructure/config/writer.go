package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# qdrant-admin configuration

environment: dev
project: qdrant-admin-mcp

log:
  level: info

server:
  addr: ":8080"
  transport: streamable-http # or sse, stdio
  endpoint: /mcp

qdrant:
  url: http://localhost:6333
  grpc_port: 6334
  # api_key: your-api-key (or set QDRANT_API_KEY env var)

embedder:
  provider: openai
  model: text-embedding-3-small
  # base_url: http://localhost:8081/v1 (any OpenAI-compatible embeddings endpoint)
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

audit:
  path: .qadmin/audit.db
`

// WriteDefault creates the .qadmin directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
