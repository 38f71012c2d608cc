// Package config loads the application configuration from the user's config
// directory, falling back to defaults when no file exists.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the file-system layout of the application: where the database
// lives and where export and backup artifacts are written.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	DatabaseFile string `yaml:"database_file"`
	ExportsDir   string `yaml:"exports_dir"`
	BackupsDir   string `yaml:"backups_dir"`
}

// Load reads config from the user's config directory. Missing file or
// unresolvable paths yield the default config rather than an error.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DatabasePath returns the full path to the SQLite file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.DataDir = filepath.Join(home, ".timekeeper")
	}
	if c.DatabaseFile == "" {
		c.DatabaseFile = "timekeeper.db"
	}
	if c.ExportsDir == "" {
		c.ExportsDir = filepath.Join(c.DataDir, "exports")
	}
	if c.BackupsDir == "" {
		c.BackupsDir = filepath.Join(c.DataDir, "backups")
	}
}

// getConfigPath returns the path to the config file, preferring
// XDG_CONFIG_HOME over ~/.config.
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "timekeeper", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "timekeeper", "config.yaml"), nil
}
