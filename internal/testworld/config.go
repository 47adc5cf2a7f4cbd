package testworld

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config tunes layout spacing and the blocks the generator builds with.
type Config struct {
	// Padding is the margin reserved around each plot before packing.
	Padding int `yaml:"padding"`
	// OuterPadding is the margin around the whole layout used for clearing,
	// the platform, and the WithinBounds check.
	OuterPadding  int `yaml:"outer_padding"`
	PlatformDepth int `yaml:"platform_depth"`

	SignLineChars int `yaml:"sign_line_chars"`
	SignLines     int `yaml:"sign_lines"`

	PlatformBlock string `yaml:"platform_block"`
	OutlineBlock  string `yaml:"outline_block"`
	SignBlock     string `yaml:"sign_block"`
}

func (c *Config) ApplyDefaults() {
	if c.Padding <= 0 {
		c.Padding = 3
	}
	if c.OuterPadding <= 0 {
		c.OuterPadding = 10
	}
	if c.PlatformDepth <= 0 {
		c.PlatformDepth = 3
	}
	if c.SignLineChars <= 0 {
		c.SignLineChars = 12
	}
	if c.SignLines <= 0 {
		c.SignLines = 4
	}
	if c.PlatformBlock == "" {
		c.PlatformBlock = "BRICK"
	}
	if c.OutlineBlock == "" {
		c.OutlineBlock = "SMALL_BRICK"
	}
	if c.SignBlock == "" {
		c.SignBlock = "SIGN"
	}
}

func (c *Config) Validate() error {
	if c.Padding < 2 {
		return fmt.Errorf("testworld: padding %d too small for sign placement", c.Padding)
	}
	if c.OuterPadding < 0 {
		return fmt.Errorf("testworld: negative outer_padding")
	}
	if c.PlatformDepth < 1 {
		return fmt.Errorf("testworld: platform_depth must be at least 1")
	}
	return nil
}

// LoadConfig reads the tuning file; an empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("testworld.yaml: %w", err)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
