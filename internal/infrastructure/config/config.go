// Package config loads studio settings from .studio/config.yaml with
// STUDIO_* environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/studio/pkg/storage"
)

const configFile = "config.yaml"

// GenerateConfig configures the optional remote draft provider. When
// the endpoint is empty the deterministic generator is used.
type GenerateConfig struct {
	Endpoint string `yaml:"endpoint" envconfig:"GENERATE_ENDPOINT"`
	Model    string `yaml:"model" envconfig:"GENERATE_MODEL"`
}

// Config holds the serve-time settings.
type Config struct {
	Addr      string         `yaml:"addr" envconfig:"ADDR"`
	AssetsDir string         `yaml:"assetsDir" envconfig:"ASSETS_DIR"`
	DataDir   string         `yaml:"dataDir" envconfig:"DATA_DIR"`
	LogLevel  string         `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	Watch     bool           `yaml:"watch" envconfig:"WATCH"`
	Generate  GenerateConfig `yaml:"generate"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Addr:      ":8787",
		AssetsDir: "web",
		DataDir:   ".",
		LogLevel:  "info",
		Watch:     true,
	}
}

// Load resolves the effective configuration for a workspace root:
// defaults, then the YAML file if present, then environment overrides.
func Load(root string) (*Config, error) {
	cfg := Default()

	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(configFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := envconfig.Process("studio", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to .studio/config.yaml.
func Save(root string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(configFile)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
