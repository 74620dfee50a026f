// Package config loads the game settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/scaffold/obj"
)

//go:embed game.yaml
var defaultYAML []byte

// DefaultPath is where Load looks for an override on disk.
const DefaultPath = "config/game.yaml"

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Background Colour `yaml:"background"`
}

type Log struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Window      Window  `yaml:"window"`
	Debug       bool    `yaml:"debug"`
	CameraScale float64 `yaml:"camera_scale"`
	WorldScale  float64 `yaml:"world_scale"`
	GameSpeed   float64 `yaml:"game_speed"`
	StartLevel  string  `yaml:"start_level"`
	Log         Log     `yaml:"log"`

	// Inputs rebinds logical inputs by name, e.g. "Zoom In": [z].
	Inputs map[string][]obj.Button `yaml:"inputs"`
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded game.yaml: %v", err))
	}
	return cfg
}

// Parse reads YAML on top of zero values and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the embedded defaults and then, if path exists, overlays it.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.CameraScale <= 0 {
		errs = append(errs, fmt.Errorf("camera_scale must be positive, got %v", c.CameraScale))
	}
	if c.WorldScale <= 0 {
		errs = append(errs, fmt.Errorf("world_scale must be positive, got %v", c.WorldScale))
	}
	if c.GameSpeed <= 0 {
		errs = append(errs, fmt.Errorf("game_speed must be positive, got %v", c.GameSpeed))
	}
	return errors.Join(errs...)
}
