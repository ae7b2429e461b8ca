package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".apodwall"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .apodwall configuration file.
// Every field is optional; unset fields keep their defaults or CLI values.
type File struct {
	// PageURL overrides the daily picture page URL.
	PageURL string `yaml:"pageURL,omitempty"`

	// ImagePath overrides the wallpaper destination path.
	ImagePath string `yaml:"imagePath,omitempty"`

	// LogPath overrides the log file path.
	LogPath string `yaml:"logPath,omitempty"`

	// TimeoutSeconds overrides the per-request HTTP timeout.
	// Expressed in whole seconds to keep the yaml free of duration syntax.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads run configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply overrides cfg with the non-zero values from the file.
// CLI flags are applied after this, so the precedence is
// defaults < config file < flags.
func (cf *File) Apply(cfg *Config) {
	if cf.PageURL != "" {
		cfg.PageURL = cf.PageURL
	}
	if cf.ImagePath != "" {
		cfg.ImagePath = cf.ImagePath
	}
	if cf.LogPath != "" {
		cfg.LogPath = cf.LogPath
	}
	if cf.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(cf.TimeoutSeconds) * time.Second
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .apodwall in the current directory
//  3. Look for .apodwall in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
