// ABOUTME: Configuration management for diary with YAML config loading.
// ABOUTME: Handles storage backend selection, slot naming, log level, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/diary/internal/diary"
)

// Config stores diary configuration loaded from ~/.config/diary/config.yaml.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the diary list is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, sqlite, or memory
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GetBackend returns the configured storage backend, defaulting to file.
func (c *Config) GetBackend() string {
	if c.Storage.Backend == "" {
		return "file"
	}
	return strings.ToLower(c.Storage.Backend)
}

// GetKey returns the storage slot name, defaulting to diary.DefaultKey.
func (c *Config) GetKey() string {
	if c.Storage.Key == "" {
		return diary.DefaultKey
	}
	return c.Storage.Key
}

// GetStoragePath returns the location handed to the storage backend: a
// directory for file storage, a database file for sqlite.
func (c *Config) GetStoragePath() (string, error) {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.GetBackend() == "sqlite" {
		return filepath.Join(dataDir, "diary.db"), nil
	}
	return dataDir, nil
}

// GetLogLevel returns the log level, preferring DIARY_LOG_LEVEL over the file.
func (c *Config) GetLogLevel() string {
	if lvl := os.Getenv("DIARY_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return c.Log.Level
}

// DataDir returns the default diary data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "diary"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "diary", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
