// Package config holds the map viewer's settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/mapforge/brush"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Catalog        string  `yaml:"catalog"`
	Map            string  `yaml:"map"`
	Zoom           float64 `yaml:"zoom"`
	ShowGrid       bool    `yaml:"show_grid"`
	ShowAnimations bool    `yaml:"show_animations"`
	TickRate       int     `yaml:"tick_rate"`
	BrushCorner    string  `yaml:"brush_corner"`
	MaxUndo        int     `yaml:"max_undo"`
	WatchAssets    bool    `yaml:"watch_assets"`
	Window         Window  `yaml:"window"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Catalog:        "assets/catalog.yaml",
		Zoom:           1,
		ShowGrid:       true,
		ShowAnimations: true,
		TickRate:       60,
		BrushCorner:    "TopLeft",
		MaxUndo:        100,
		WatchAssets:    true,
		Window:         Window{Width: 1280, Height: 720},
	}
}

// Load reads a YAML settings file over the defaults. Keys missing from the
// file keep their default value.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v", ErrInvalid, c.Zoom)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalid, c.TickRate)
	case c.MaxUndo < 0:
		return fmt.Errorf("%w: max_undo %d", ErrInvalid, c.MaxUndo)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, ok := brush.ParseCorner(c.BrushCorner); !ok {
		return fmt.Errorf("%w: brush_corner %q", ErrInvalid, c.BrushCorner)
	}
	return nil
}

// Corner returns the configured brush corner.
func (c Config) Corner() brush.Corner {
	corner, _ := brush.ParseCorner(c.BrushCorner)
	return corner
}

// Save writes c as YAML.
func Save(filename string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", filename, err)
	}
	return nil
}
