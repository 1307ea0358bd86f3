package app

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"mandel/fractal/tile"
	"mandel/fractal/view"
)

// Config is read once at startup from defaults, an optional TOML file and
// command-line flags, in increasing order of precedence.
type Config struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Scale   int    `toml:"scale"`
	Strips  int    `toml:"strips"`
	Limit   int    `toml:"limit"`
	Backend string `toml:"backend"`
	// Workers bounds the parallel backend; 0 uses one per CPU.
	Workers   int     `toml:"workers"`
	Precision string  `toml:"precision"`
	Preset    int     `toml:"preset"`
	ZoomStep  float64 `toml:"zoom_step"`
	PanStep   float64 `toml:"pan_step"`

	Headless bool   `toml:"headless"`
	Hz       int    `toml:"hz"`
	Ticks    uint64 `toml:"ticks"`
	Keys     string `toml:"keys"`
	Out      string `toml:"out"`

	Debug bool `toml:"debug"`
}

// DefaultConfig returns a 800x600 double-precision view of the whole set.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		Scale:     1,
		Strips:    12,
		Limit:     255,
		Backend:   tile.Parallel.String(),
		Precision: view.Double.String(),
		ZoomStep:  view.DefaultStep,
		PanStep:   view.DefaultStep,
		Hz:        60,
	}
}

// LoadConfigFile decodes a TOML file over cfg. Keys missing from the file
// keep their current value.
func LoadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: %s: unknown key %q: %w", path, undecoded[0].String(), view.ErrInvalidArgument)
	}
	return nil
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: size %dx%d: %w", c.Width, c.Height, view.ErrInvalidArgument)
	case c.Scale <= 0:
		return fmt.Errorf("config: scale %d: %w", c.Scale, view.ErrInvalidArgument)
	case c.Strips <= 0:
		return fmt.Errorf("config: strips %d: %w", c.Strips, view.ErrInvalidArgument)
	case c.Height%c.Strips != 0:
		return fmt.Errorf("config: height %d not divisible into %d strips: %w", c.Height, c.Strips, view.ErrInvalidArgument)
	case c.Limit <= 0:
		return fmt.Errorf("config: iteration limit %d: %w", c.Limit, view.ErrInvalidArgument)
	case c.Workers < 0:
		return fmt.Errorf("config: workers %d: %w", c.Workers, view.ErrInvalidArgument)
	case c.Preset < 0 || c.Preset >= len(view.Presets):
		return fmt.Errorf("config: preset %d: %w", c.Preset, view.ErrInvalidArgument)
	}
	if _, err := tile.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := view.ParsePrecision(c.Precision); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.steps().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) steps() view.Steps {
	return view.Steps{Zoom: c.ZoomStep, Pan: c.PanStep}
}
