// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	Server    ServerConfig    `toml:"server"`
}

// DashboardConfig maps dashboard and report settings.
type DashboardConfig struct {
	Dataset    *string   `toml:"dataset"`
	Periods    *[]string `toml:"periods"`
	Platforms  *[]string `toml:"platforms"`
	PlotHeight *int      `toml:"plot-height"`
	Color      *bool     `toml:"color"`
}

// ServerConfig maps API server settings.
type ServerConfig struct {
	Addr            *string        `toml:"addr"`
	CORSOrigins     *[]string      `toml:"cors-origins"`
	ShutdownTimeout *time.Duration `toml:"shutdown-timeout"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
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
