package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window WindowConfig `toml:"window"`
	Loop   LoopConfig   `toml:"loop"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`
}

type WindowConfig struct {
	Title       string `toml:"title"`
	X           int    `toml:"x"`
	Y           int    `toml:"y"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Resizable   bool   `toml:"resizable"`
	Borderless  bool   `toml:"borderless"`
	AlwaysOnTop bool   `toml:"always_on_top"`
}

// LoopConfig paces the frame loop. Repeat values are in ticks.
type LoopConfig struct {
	TPS            int  `toml:"tps"`
	RepeatDelay    int  `toml:"repeat_delay"`
	RepeatInterval int  `toml:"repeat_interval"`
	DebugOverlay   bool `toml:"debug_overlay"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type UIConfig struct {
	Theme    string  `toml:"theme"`
	Scale    float64 `toml:"scale"`
	FontSize float64 `toml:"font_size"`
	Logo     string  `toml:"logo,omitempty"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "winshell",
			X:         100,
			Y:         100,
			Width:     960,
			Height:    640,
			Resizable: true,
		},
		Loop: LoopConfig{
			TPS:            60,
			RepeatDelay:    30,
			RepeatInterval: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		UI: UIConfig{
			Theme:    "light",
			Scale:    1,
			FontSize: 15,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("parsing config at %d:%d: %w", row, col, err)
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Loop.TPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: loop.tps %d", ErrInvalid, c.Loop.TPS))
	}
	if c.Loop.RepeatDelay <= 0 || c.Loop.RepeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: key repeat %d/%d", ErrInvalid, c.Loop.RepeatDelay, c.Loop.RepeatInterval))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format))
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("%w: ui.theme %q", ErrInvalid, c.UI.Theme))
	}
	if c.UI.Scale <= 0 || c.UI.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: ui.scale %v, ui.font_size %v", ErrInvalid, c.UI.Scale, c.UI.FontSize))
	}
	return errors.Join(errs...)
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return level, nil
}
