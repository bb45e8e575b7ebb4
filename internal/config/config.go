// Package config loads geoview settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"geoview/internal/layer"
	"geoview/internal/selection"
	"geoview/internal/view"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "geoview.toml"

// ErrInvalid marks a configuration value out of range.
var ErrInvalid = errors.New("invalid config")

// Config is the decoded file. Keys missing from the file keep their defaults.
type Config struct {
	Projection  string      `toml:"projection"`
	LabelField  string      `toml:"label_field"`
	Interaction Interaction `toml:"interaction"`
}

// Interaction tunes gestures and hit testing.
type Interaction struct {
	DebounceMS         int     `toml:"debounce_ms"`
	ClickThresholdPx   int     `toml:"click_threshold_px"`
	ToleranceDivisor   float64 `toml:"tolerance_divisor"`
	ClickTolerancePx   int     `toml:"click_tolerance_px"`
	IdentifyTolerantPx int     `toml:"identify_tolerant_px"`
	IdentifyStrictPx   int     `toml:"identify_strict_px"`
	WheelZoomFactor    float64 `toml:"wheel_zoom_factor"`
	KeyPanFraction     float64 `toml:"key_pan_fraction"`
}

// Default returns the built-in settings.
func Default() Config {
	sel := selection.DefaultConfig()
	return Config{
		Projection: layer.WGS84,
		LabelField: "name",
		Interaction: Interaction{
			DebounceMS:         int(view.DefaultDebounce / time.Millisecond),
			ClickThresholdPx:   sel.ClickThresholdPx,
			ToleranceDivisor:   sel.ToleranceDivisor,
			ClickTolerancePx:   sel.ClickTolerancePx,
			IdentifyTolerantPx: sel.TolerantPx,
			IdentifyStrictPx:   sel.StrictPx,
			WheelZoomFactor:    1.25,
			KeyPanFraction:     0.1,
		},
	}
}

// Load reads path over the defaults. An empty path, or the default path when
// it does not exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q", ErrInvalid, keys[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the viewer cannot work with.
func (c Config) Validate() error {
	i := c.Interaction
	switch {
	case c.Projection != layer.WGS84 && c.Projection != layer.WebMercator:
		return fmt.Errorf("%w: projection %q", ErrInvalid, c.Projection)
	case i.DebounceMS <= 0:
		return fmt.Errorf("%w: debounce_ms must be positive", ErrInvalid)
	case i.ClickThresholdPx <= 0:
		return fmt.Errorf("%w: click_threshold_px must be positive", ErrInvalid)
	case i.ToleranceDivisor <= 0:
		return fmt.Errorf("%w: tolerance_divisor must be positive", ErrInvalid)
	case i.ClickTolerancePx <= 0:
		return fmt.Errorf("%w: click_tolerance_px must be positive", ErrInvalid)
	case i.IdentifyTolerantPx <= 0 || i.IdentifyStrictPx <= 0:
		return fmt.Errorf("%w: identify window sizes must be positive", ErrInvalid)
	case i.IdentifyStrictPx > i.IdentifyTolerantPx:
		return fmt.Errorf("%w: identify_strict_px exceeds identify_tolerant_px", ErrInvalid)
	case i.WheelZoomFactor <= 1:
		return fmt.Errorf("%w: wheel_zoom_factor must exceed 1", ErrInvalid)
	case i.KeyPanFraction <= 0 || i.KeyPanFraction >= 1:
		return fmt.Errorf("%w: key_pan_fraction must be in (0, 1)", ErrInvalid)
	}
	return nil
}

// Debounce returns the reset debounce delay.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Interaction.DebounceMS) * time.Millisecond
}

// Selection returns the resolver envelope sizes.
func (c Config) Selection() selection.Config {
	i := c.Interaction
	return selection.Config{
		TolerantPx:       i.IdentifyTolerantPx,
		StrictPx:         i.IdentifyStrictPx,
		ClickThresholdPx: i.ClickThresholdPx,
		ClickTolerancePx: i.ClickTolerancePx,
		ToleranceDivisor: i.ToleranceDivisor,
	}
}
