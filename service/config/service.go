// Package config loads optional defaults from a YAML config file.
package config

import (
	"fmt"
	"os"

	"github.com/KijinKims/verstamp/model"
	"gopkg.in/yaml.v3"
)

// Config holds the file-configurable defaults. Command-line flags always
// win over config values.
type Config struct {
	Major         string `yaml:"major"`
	Minor         string `yaml:"minor"`
	UtilityModule string `yaml:"utility_module"`
	DBPath        string `yaml:"db_path"`
	Strict        bool   `yaml:"strict"`
}

// Service is the interface for config file loading.
type Service interface {
	Load(path string) (Config, error)
}

type service struct{}

// NewService creates a new config service.
func NewService() Service {
	return &service{}
}

// Load reads the config file at path. An empty path yields a zero config;
// an explicitly named but unreadable file is an error.
func (s *service) Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Apply fills unset flag values from the config.
func (c Config) Apply(flags model.Flags) model.Flags {
	if flags.Major == "" {
		flags.Major = c.Major
	}
	if flags.Minor == "" {
		flags.Minor = c.Minor
	}
	if flags.UtilityModule == "" || flags.UtilityModule == model.DefaultUtilityModule {
		if c.UtilityModule != "" {
			flags.UtilityModule = c.UtilityModule
		}
	}
	if flags.DBPath == "" {
		flags.DBPath = c.DBPath
	}
	if c.Strict {
		flags.Strict = true
	}
	return flags
}
