package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a configuration from the given YAML file path.
// After parsing, defaults are applied to any field left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a config in standard locations and loads the
// first one found. Search order: ./onepack.yaml, ~/.onepack/config.yaml.
// A missing config is not an error; the defaults describe the classic
// requirements.txt + spec-file layout.
func LoadDefault() (*Config, error) {
	candidates := []string{"onepack.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".onepack", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Defaults(), nil
}

// Defaults returns the configuration used when no config file exists.
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	b := &cfg.Build
	if b.Toolchain == "" {
		b.Toolchain = "python"
	}
	if b.Installer == "" {
		b.Installer = "pip"
	}
	if b.Packager == "" {
		b.Packager = "pyinstaller"
	}
	if b.Manifest == "" {
		b.Manifest = "requirements.txt"
	}
	if b.Spec == "" {
		b.Spec = "app.spec"
	}
	if b.BuildDir == "" {
		b.BuildDir = "build"
	}
	if b.DistDir == "" {
		b.DistDir = "dist"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "tint"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
