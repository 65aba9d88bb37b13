// Package config loads the optional bitsctl TOML configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/bitsctl/internal/packet"
)

// Config carries tool-level settings. Zero values fall back to defaults;
// file keys override only when present.
type Config struct {
	StorePath     string
	LogLevel      string
	MaxInputBytes int
	LengthMode    packet.LengthMode
}

type fileConfig struct {
	StorePath     string `toml:"store_path"`
	LogLevel      string `toml:"log_level"`
	MaxInputBytes int    `toml:"max_input_bytes"`
	LengthMode    string `toml:"length_mode"`
}

func Default() Config {
	return Config{
		MaxInputBytes: 1 << 20,
		LengthMode:    packet.LengthModeSubCount,
	}
}

// Load reads path and applies any defined keys over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("store_path") {
		cfg.StorePath = strings.TrimSpace(raw.StorePath)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_input_bytes") {
		if raw.MaxInputBytes < 0 {
			return Config{}, fmt.Errorf("config: max_input_bytes must be >= 0, got %d", raw.MaxInputBytes)
		}
		cfg.MaxInputBytes = raw.MaxInputBytes
	}
	if meta.IsDefined("length_mode") {
		mode, err := ParseLengthMode(raw.LengthMode)
		if err != nil {
			return Config{}, err
		}
		cfg.LengthMode = mode
	}

	return cfg, nil
}

// ParseLengthMode maps the config/flag spelling onto the encoder mode.
func ParseLengthMode(raw string) (packet.LengthMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "subcount", "sub-count":
		return packet.LengthModeSubCount, nil
	case "bitcount", "bit-count":
		return packet.LengthModeBitCount, nil
	}
	return 0, fmt.Errorf("config: unknown length_mode %q", raw)
}
