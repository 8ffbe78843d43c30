// Package config loads restobid configuration from a YAML file, with
// environment variable overrides for deployment-specific settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportConfig represents estimate export configuration
type ExportConfig struct {
	// ServerURL is the ESX conversion server base URL
	ServerURL string `yaml:"server_url"`

	// Timeout is the maximum time to wait for the conversion server
	Timeout time.Duration `yaml:"timeout"`

	// OutputDir is the directory where export artifacts are written
	OutputDir string `yaml:"output_dir"`
}

// Config represents restobid configuration options
type Config struct {
	// DataDir is the directory holding the project database and lock file
	DataDir string `yaml:"data_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Export contains estimate export configuration
	Export ExportConfig `yaml:"export"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir:  filepath.Join(home, ".restobid"),
		LogLevel: "info",
		Export: ExportConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   30 * time.Second,
			OutputDir: "exports",
		},
	}
}

// Load loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
// Environment variables override both defaults and file values:
// RESTOBID_DATA_DIR, RESTOBID_LOG_LEVEL, RESTOBID_EXPORT_URL.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Use a temporary struct to handle duration parsing
		type yamlExport struct {
			ServerURL string `yaml:"server_url"`
			Timeout   string `yaml:"timeout"`
			OutputDir string `yaml:"output_dir"`
		}
		type yamlConfig struct {
			DataDir  string     `yaml:"data_dir"`
			LogLevel string     `yaml:"log_level"`
			Export   yamlExport `yaml:"export"`
		}

		var yamlCfg yamlConfig
		if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		// Apply non-zero values from file, merging with defaults
		if yamlCfg.DataDir != "" {
			cfg.DataDir = yamlCfg.DataDir
		}
		if yamlCfg.LogLevel != "" {
			cfg.LogLevel = yamlCfg.LogLevel
		}
		if yamlCfg.Export.ServerURL != "" {
			cfg.Export.ServerURL = yamlCfg.Export.ServerURL
		}
		if yamlCfg.Export.Timeout != "" {
			timeout, err := time.ParseDuration(yamlCfg.Export.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid export timeout format %q: %w", yamlCfg.Export.Timeout, err)
			}
			cfg.Export.Timeout = timeout
		}
		if yamlCfg.Export.OutputDir != "" {
			cfg.Export.OutputDir = yamlCfg.Export.OutputDir
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromDir loads configuration from .restobid/config.yaml under the given
// directory, falling back to defaults when absent.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, ".restobid", "config.yaml"))
}

// applyEnvOverrides applies environment variable overrides. These win over
// both defaults and file values so operators can retarget a deployment
// without editing config files.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RESTOBID_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("RESTOBID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RESTOBID_EXPORT_URL"); v != "" {
		cfg.Export.ServerURL = v
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Export.ServerURL == "" {
		return fmt.Errorf("export.server_url cannot be empty")
	}
	if c.Export.Timeout <= 0 {
		return fmt.Errorf("export.timeout must be > 0, got %v", c.Export.Timeout)
	}

	return nil
}
