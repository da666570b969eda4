// Package config loads settings for the tweetc command.
//
// Precedence, lowest first: Default(), the YAML file passed to Load,
// TWEETLANG_* environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"tweetlang/pkg/policy"
	"tweetlang/pkg/trace"
)

// Config holds tweetc settings.
type Config struct {
	Format   string `yaml:"format"    env:"TWEETLANG_FORMAT"`
	Policy   string `yaml:"policy"    env:"TWEETLANG_POLICY"`
	LogLevel string `yaml:"log_level" env:"TWEETLANG_LOG_LEVEL"`
	Simplify bool   `yaml:"simplify"  env:"TWEETLANG_SIMPLIFY"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   string(trace.Text),
		Policy:   policy.Default,
		LogLevel: "info",
	}
}

// Load applies the YAML file at path (skipped when path is empty) and then the
// environment over Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables. Unset variables
// leave the corresponding field untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	var errs []error
	if _, err := trace.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := policy.New(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
