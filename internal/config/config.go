package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 400
	DefaultHeight     = 400
	DefaultRadius     = 10
	DefaultInterval   = 5 * time.Second
	DefaultTransition = 4500 * time.Millisecond
	DefaultFPS        = 30
	DefaultTheme      = "cyberpunk"
)

// ErrInvalid indicates a config value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Radius     int           `yaml:"radius"`
	Interval   time.Duration `yaml:"interval"`
	Transition time.Duration `yaml:"transition"`
	Palette    string        `yaml:"palette"`
	Seed       int64         `yaml:"seed"`
	Theme      string        `yaml:"theme"`
	FPS        int           `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Radius:     DefaultRadius,
		Interval:   DefaultInterval,
		Transition: DefaultTransition,
		Theme:      DefaultTheme,
		FPS:        DefaultFPS,
	}
}

// Load reads a YAML config over the defaults. Unknown keys are ignored and
// zero values fall back to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) fillDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Transition == 0 {
		c.Transition = DefaultTransition
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalid, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalid, c.Height)
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius %d", ErrInvalid, c.Radius)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval %s", ErrInvalid, c.Interval)
	case c.Transition <= 0:
		return fmt.Errorf("%w: transition %s", ErrInvalid, c.Transition)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	return nil
}
