// Package config loads application configuration from a TOML file and
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/nordicwms/allokera/pkg/allocation"
	"github.com/nordicwms/allokera/pkg/refill"
)

// Config holds all application configuration
type Config struct {
	Engine EngineConfig
	Refill RefillConfig
	Log    LogConfig
	Output OutputConfig
}

// EngineConfig holds the allocation policy settings
type EngineConfig struct {
	AllowedStatuses   []int
	BlockedPrefixes   []string
	BlockedExact      []string
	AutomatedMarker   string
	NearMissThreshold float64
	BulkyPrefix       string
	OverflowMarker    string
}

// RefillConfig holds the refill policy settings
type RefillConfig struct {
	AllowedStatuses []int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir    string // directory for generated report files
	Format string // text, csv, xlsx
}

// Load loads configuration from allokera.toml and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ALLOKERA_ prefix (e.g. ALLOKERA_LOG_LEVEL)
// 2. allokera.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration searching the given directory first; an
// empty dir searches only the defaults (working directory, /etc/allokera).
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("allokera")
	v.SetConfigType("toml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/allokera")

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and env vars apply
	}

	v.SetEnvPrefix("ALLOKERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Engine: EngineConfig{
			AllowedStatuses:   v.GetIntSlice("engine.allowed_statuses"),
			BlockedPrefixes:   v.GetStringSlice("engine.blocked_prefixes"),
			BlockedExact:      v.GetStringSlice("engine.blocked_exact"),
			AutomatedMarker:   v.GetString("engine.automated_marker"),
			NearMissThreshold: v.GetFloat64("engine.near_miss_threshold"),
			BulkyPrefix:       v.GetString("engine.bulky_prefix"),
			OverflowMarker:    v.GetString("engine.overflow_marker"),
		},
		Refill: RefillConfig{
			AllowedStatuses: v.GetIntSlice("refill.allowed_statuses"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Output: OutputConfig{
			Dir:    v.GetString("output.dir"),
			Format: v.GetString("output.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	engine := allocation.DefaultConfig()
	v.SetDefault("engine.allowed_statuses", engine.AllowedStatuses)
	v.SetDefault("engine.blocked_prefixes", engine.BlockedPrefixes)
	v.SetDefault("engine.blocked_exact", engine.BlockedExact)
	v.SetDefault("engine.automated_marker", engine.AutomatedMarker)
	v.SetDefault("engine.near_miss_threshold", engine.NearMissThreshold.InexactFloat64())
	v.SetDefault("engine.bulky_prefix", engine.BulkyPrefix)
	v.SetDefault("engine.overflow_marker", engine.OverflowMarker)

	v.SetDefault("refill.allowed_statuses", refill.DefaultConfig().AllowedStatuses)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", "text")
}

func (c *Config) validate() error {
	if c.Engine.NearMissThreshold < 0 {
		return fmt.Errorf("engine.near_miss_threshold must not be negative, got %v", c.Engine.NearMissThreshold)
	}
	if c.Engine.AutomatedMarker == "" {
		return fmt.Errorf("engine.automated_marker must not be empty")
	}
	switch c.Output.Format {
	case "text", "csv", "xlsx":
	default:
		return fmt.Errorf("output.format must be text, csv or xlsx, got %q", c.Output.Format)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// AllocationConfig converts the engine section into the allocation
// package's policy type.
func (c *Config) AllocationConfig() allocation.Config {
	return allocation.Config{
		AllowedStatuses:   c.Engine.AllowedStatuses,
		BlockedPrefixes:   c.Engine.BlockedPrefixes,
		BlockedExact:      c.Engine.BlockedExact,
		AutomatedMarker:   c.Engine.AutomatedMarker,
		NearMissThreshold: decimal.NewFromFloat(c.Engine.NearMissThreshold),
		BulkyPrefix:       c.Engine.BulkyPrefix,
		OverflowMarker:    c.Engine.OverflowMarker,
	}
}

// CalculatorConfig converts the refill section into the refill
// package's policy type.
func (c *Config) CalculatorConfig() refill.Config {
	return refill.Config{AllowedStatuses: c.Refill.AllowedStatuses}
}
