// SPDX-License-Identifier: MIT

// Package config holds the libmatrix CLI settings and their YAML loader.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/libmatrix/buffer"
	"gopkg.in/yaml.v3"
)

const (
	// LimitAuto selects the host's physical memory as the allocation ceiling.
	LimitAuto = "auto"
	// LimitUnlimited disables the allocation ceiling.
	LimitUnlimited = "unlimited"
)

// Config holds the CLI settings; zero fields fall back to DefaultConfig.
type Config struct {
	Debug       bool   `yaml:"debug"`
	MemoryLimit string `yaml:"memory_limit"`
	LogFile     string `yaml:"log_file"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		MemoryLimit: LimitAuto,
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// MemoryLimitBytes parses MemoryLimit ("512 MiB", "2GB", "auto", "unlimited").
// Zero means "use the host default", matching buffer.WithMemoryLimit.
func (c *Config) MemoryLimitBytes() (uint64, error) {
	switch s := strings.TrimSpace(strings.ToLower(c.MemoryLimit)); s {
	case "", LimitAuto:
		return 0, nil
	case LimitUnlimited:
		return buffer.Unlimited, nil
	default:
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return 0, fmt.Errorf("memory_limit %q: %w", c.MemoryLimit, err)
		}
		return n, nil
	}
}
