// Package config - YAML configuration for the cvkit command line tool.
package config

import (
	"image/color"
	"os"

	"github.com/mazznoer/csscolorparser"
	"github.com/nvr-ai/go-cvkit/bbox"
	"github.com/nvr-ai/go-cvkit/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxElements is the default chunk size for list splitting.
	DefaultMaxElements = 20000
	// DefaultColor is the default drawing color.
	DefaultColor = "white"
)

// ListingConfig controls recursive file discovery.
type ListingConfig struct {
	// Extensions keeps only files with these extensions. Empty keeps everything.
	Extensions []string `yaml:"extensions"`
}

// SplitConfig controls list partitioning.
type SplitConfig struct {
	MaxElements int  `yaml:"max_elements"`
	Shuffle     bool `yaml:"shuffle"`
	// Seed makes shuffling reproducible. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// DrawConfig controls rectangle rendering.
type DrawConfig struct {
	// Color is any CSS color, e.g. "red" or "#00ff00".
	Color string `yaml:"color"`
	// Thickness is the outline width in pixels, or -1 to fill.
	Thickness int `yaml:"thickness"`
}

// Config is the full tool configuration.
type Config struct {
	Listing ListingConfig        `yaml:"listing"`
	Split   SplitConfig          `yaml:"split"`
	Read    images.ReadOptions   `yaml:"read"`
	Stitch  images.StitchOptions `yaml:"stitch"`
	Draw    DrawConfig           `yaml:"draw"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listing: ListingConfig{Extensions: []string{".jpg", ".jpeg", ".png", ".bmp"}},
		Split:   SplitConfig{MaxElements: DefaultMaxElements},
		Read:    images.ReadOptions{Color: true},
		Stitch:  images.DefaultStitchOptions(5, 5),
		Draw:    DrawConfig{Color: DefaultColor, Thickness: 1},
	}
}

// Load reads a YAML file on top of Default and validates the result.
//
// Arguments:
//   - path: The YAML file. An empty path returns Default.
//
// Returns:
//   - Config: The merged configuration.
//   - error: An error if the file cannot be read, parsed or validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %q", path)
	}
	return cfg, nil
}

// Validate checks the values Load cannot express through types.
func (c Config) Validate() error {
	if c.Split.MaxElements <= 0 {
		return errors.Errorf("split.max_elements must be positive, got %d", c.Split.MaxElements)
	}
	if c.Stitch.Rows <= 0 || c.Stitch.Cols <= 0 {
		return errors.Errorf("stitch layout must be positive, got %dx%d", c.Stitch.Rows, c.Stitch.Cols)
	}
	if c.Draw.Thickness < 1 && c.Draw.Thickness != bbox.Filled {
		return errors.Errorf("draw.thickness must be >= 1 or %d, got %d", bbox.Filled, c.Draw.Thickness)
	}
	if _, err := c.Draw.RGBA(); err != nil {
		return err
	}
	return nil
}

// RGBA parses Color.
func (d DrawConfig) RGBA() (color.RGBA, error) {
	c, err := csscolorparser.Parse(d.Color)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "invalid color %q", d.Color)
	}
	r, g, b, a := c.RGBA255()
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
