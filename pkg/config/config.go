// Package config holds the rendering configuration: viewport, font sizes,
// output format and logging.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FontConfig supplies the sizes rem and em lengths resolve against.
type FontConfig struct {
	RootSize    float64 `yaml:"root_size"`
	DefaultSize float64 `yaml:"default_size"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Fonts    FontConfig     `yaml:"fonts"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{Width: 800, Height: 600},
		Fonts:    FontConfig{RootSize: 16, DefaultSize: 16},
		Output:   OutputConfig{Format: "png"},
		Logging:  LoggingConfig{Level: "normal"},
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values; an empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if v <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, name, v))
		}
	}
	positive("viewport.width", c.Viewport.Width)
	positive("viewport.height", c.Viewport.Height)
	positive("fonts.root_size", c.Fonts.RootSize)
	positive("fonts.default_size", c.Fonts.DefaultSize)

	switch c.Output.Format {
	case "png", "pdf":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: output.format must be png or pdf, got %q", ErrInvalid, c.Output.Format))
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: logging.level must be none, normal or debug, got %q", ErrInvalid, c.Logging.Level))
	}
	return err
}

// Dump returns the configuration as YAML.
func Dump(c *Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return data, nil
}
