// Package config provides Viper-based configuration loading for the gacha server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds gRPC listener settings.
type ServerConfig struct {
	GRPCHost string `mapstructure:"grpc_host"`
	GRPCPort int    `mapstructure:"grpc_port"`
}

// Addr returns the "host:port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.GRPCHost, s.GRPCPort)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GamesConfig locates banner definitions.
type GamesConfig struct {
	// BaseDir holds games/default.yaml and the per-game tree.
	BaseDir string `mapstructure:"base_dir"`
	// DefaultGame and DefaultPool are used when a request names neither.
	DefaultGame string `mapstructure:"default_game"`
	DefaultPool string `mapstructure:"default_pool"`
	// HotReload reconfigures live engines when banner files change.
	HotReload bool `mapstructure:"hot_reload"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Games   GamesConfig   `mapstructure:"games"`
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string
	if c.Server.GRPCHost == "" {
		errs = append(errs, "server.grpc_host must not be empty")
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.grpc_port must be 0-65535, got %d", c.Server.GRPCPort))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Games.BaseDir == "" {
		errs = append(errs, "games.base_dir must not be empty")
	}
	if c.Games.DefaultGame == "" {
		errs = append(errs, "games.default_game must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	if l.Format != "json" && l.Format != "console" {
		return errors.New("logging.format must be json or console")
	}
	return nil
}

// Load reads configuration from the given file path, applies GACHA_ environment
// overrides and defaults, and validates the result. An empty path uses
// defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("GACHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_host", "0.0.0.0")
	v.SetDefault("server.grpc_port", 50051)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("games.base_dir", "configs")
	v.SetDefault("games.default_game", "default")
	v.SetDefault("games.default_pool", "")
	v.SetDefault("games.hot_reload", true)
}
