// Package config provides configuration management for the sigen CLI,
// grounded on junjiewwang-perf-analysis's pkg/config/config.go: a
// mapstructure-tagged Config struct, viper defaults layered under a
// discovered config file, with environment-variable overrides.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds every knob the sigen pipeline accepts (spec.md §6's CLI
// surface).
type Config struct {
	Input     string  `mapstructure:"input"`
	Output    string  `mapstructure:"output"`
	ScaleXY   float64 `mapstructure:"scale_xy"`
	ScaleZ    float64 `mapstructure:"scale_z"`
	DT        float64 `mapstructure:"dt"`
	VT        int     `mapstructure:"vt"`
	Clipping  int     `mapstructure:"clipping"`
	Smoothing int     `mapstructure:"smoothing"`
	Quiet     bool    `mapstructure:"quiet"`
}

// Load reads configuration from configPath (if non-empty) or from the
// standard locations, layering it over the package defaults, and allows
// environment variables to override the result.
func Load(configPath string) (*Config, error) {
	return LoadInto(viper.New(), configPath)
}

// LoadInto is Load against a caller-supplied *viper.Viper instance,
// letting cmd/sigen pass in the same instance its flags were bound to
// with viper.BindPFlag, so an explicit flag outranks both the config
// file and the defaults set here.
func LoadInto(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("sigen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sigen")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file: defaults and flags stand alone.
		} else if os.IsNotExist(err) {
			// configPath named a file that doesn't exist: same fallback.
		} else {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix("sigen")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration of the given viper config type from
// content, useful for tests that don't want to touch the filesystem.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scale_xy", 1.0)
	v.SetDefault("scale_z", 1.0)
	v.SetDefault("dt", 0.0)
	v.SetDefault("vt", 0)
	v.SetDefault("clipping", 0)
	v.SetDefault("smoothing", 0)
	v.SetDefault("quiet", false)
}

// Validate checks the fields that downstream stages require to be
// positive, matching spec.md §7's precondition-violation error kind.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	if c.ScaleXY <= 0 {
		return fmt.Errorf("scale_xy must be positive, got %v", c.ScaleXY)
	}
	if c.ScaleZ <= 0 {
		return fmt.Errorf("scale_z must be positive, got %v", c.ScaleZ)
	}
	return nil
}
