package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML or TOML configuration file, applies defaults and validates it.
// The format is chosen from the file extension (.yaml, .yml or .toml).
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses raw config bytes in the format named by ext, then applies defaults and validates.
//
// Parameters:
//   - data: the encoded config
//   - ext: ".yaml", ".yml" or ".toml" (leading dot optional)
//
// Returns:
//   - *Config: the decoded configuration
//   - error: error on an unknown format, a decode failure or a validation failure
func Decode(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Encode serializes cfg in the format named by ext.
//
// Parameters:
//   - cfg: the configuration to write
//   - ext: ".yaml", ".yml" or ".toml"
//
// Returns:
//   - []byte: the encoded config
//   - error: error on an unknown format or an encode failure
func Encode(cfg *Config, ext string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
}
