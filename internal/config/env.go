package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. SENTIBOARD_DATASET.
const EnvPrefix = "sentiboard"

// EnvConfig holds environment overrides. Nil fields were not set.
type EnvConfig struct {
	Dataset    *string
	Periods    *[]string
	Platforms  *[]string
	PlotHeight *int `split_words:"true"`
	Color      *bool

	Server ServerEnv
}

// ServerEnv holds SENTIBOARD_SERVER_* overrides.
type ServerEnv struct {
	Addr            *string
	CORSOrigins     *[]string      `split_words:"true"`
	ShutdownTimeout *time.Duration `split_words:"true"`
}

// LoadEnv reads overrides from the environment.
func LoadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return env, nil
}

// Merge layers environment overrides on top of file values.
func Merge(file FileConfig, env EnvConfig) FileConfig {
	out := file
	out.Dashboard.Dataset = pick(env.Dataset, file.Dashboard.Dataset)
	out.Dashboard.Periods = pick(env.Periods, file.Dashboard.Periods)
	out.Dashboard.Platforms = pick(env.Platforms, file.Dashboard.Platforms)
	out.Dashboard.PlotHeight = pick(env.PlotHeight, file.Dashboard.PlotHeight)
	out.Dashboard.Color = pick(env.Color, file.Dashboard.Color)
	out.Server.Addr = pick(env.Server.Addr, file.Server.Addr)
	out.Server.CORSOrigins = pick(env.Server.CORSOrigins, file.Server.CORSOrigins)
	out.Server.ShutdownTimeout = pick(env.Server.ShutdownTimeout, file.Server.ShutdownTimeout)
	return out
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (FileConfig, error) {
	file, err := LoadConfig(path)
	if err != nil {
		return FileConfig{}, err
	}
	env, err := LoadEnv()
	if err != nil {
		return FileConfig{}, err
	}
	return Merge(file, env), nil
}

func pick[T any](override, base *T) *T {
	if override != nil {
		return override
	}
	return base
}
