// Package config provides configuration defaults and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultServerURL      = "http://localhost:8000"
	defaultRequestTimeout = 15 * time.Second
	defaultHealthInterval = 30 * time.Second
)

// Config holds the resolved runtime settings.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	HealthInterval time.Duration
	DataDir        string
}

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "absent" from zero values, so the file only overrides what
// it actually sets.
type FileConfig struct {
	Server ServerConfig `toml:"server"`
	Client ClientConfig `toml:"client"`
}

type ServerConfig struct {
	URL            *string `toml:"url"`
	Timeout        *string `toml:"timeout"`
	HealthInterval *string `toml:"health-interval"`
}

type ClientConfig struct {
	DataDir *string `toml:"data-dir"`
}

// LoadFile reads a TOML config from the given path. A missing file is not
// an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve merges defaults with the file config. Flag overrides are applied
// by the caller on top of the result.
func Resolve(file FileConfig) (Config, error) {
	cfg := Config{
		ServerURL:      defaultServerURL,
		RequestTimeout: defaultRequestTimeout,
		HealthInterval: defaultHealthInterval,
		DataDir:        DefaultDataDir(),
	}
	if file.Server.URL != nil {
		cfg.ServerURL = *file.Server.URL
	}
	if file.Server.Timeout != nil {
		d, err := time.ParseDuration(*file.Server.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid server.timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if file.Server.HealthInterval != nil {
		d, err := time.ParseDuration(*file.Server.HealthInterval)
		if err != nil {
			return Config{}, fmt.Errorf("invalid server.health-interval: %w", err)
		}
		cfg.HealthInterval = d
	}
	if file.Client.DataDir != nil {
		cfg.DataDir = *file.Client.DataDir
	}
	return cfg, nil
}

// DatabasePath is where the token store lives.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "client.db")
}

// LogPath is where interactive runs write their log.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "client.log")
}
