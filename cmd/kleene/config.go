package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/geange/kleene"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// Config holds the defaults for kleene solve. Flags override it.
type Config struct {
	Notation string `yaml:"notation"`
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Notation: kleene.POSIX.String(),
		LogLevel: slog.LevelInfo.String(),
		Format:   formatText,
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := c.notation(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.Format {
	case formatText, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q, want %s or %s", c.Format, formatText, formatYAML)
}

func (c Config) notation() (kleene.Notation, error) {
	return kleene.ParseNotation(c.Notation)
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
