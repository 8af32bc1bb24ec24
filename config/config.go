// Package config loads eggmatch settings from defaults, an optional config
// file, EGGMATCH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/eggmatch"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "EGGMATCH"

// ErrInvalidConfig is returned (wrapped) when loaded settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete program configuration.
type Config struct {
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Board    BoardConfig    `mapstructure:"board" yaml:"board"`
	Input    InputConfig    `mapstructure:"input" yaml:"input"`
	Messages MessagesConfig `mapstructure:"messages" yaml:"messages"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Script   string         `mapstructure:"script" yaml:"script"`
	Debug    bool           `mapstructure:"debug" yaml:"debug"`
}

// WindowConfig holds the window settings.
type WindowConfig struct {
	Title     string `mapstructure:"title" yaml:"title"`
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	TPS       int    `mapstructure:"tps" yaml:"tps"`
	Resizable bool   `mapstructure:"resizable" yaml:"resizable"`
}

// BoardConfig describes the board. Leaving both Items and Targets empty
// plays the built-in four-shape board.
type BoardConfig struct {
	Title      string         `mapstructure:"title" yaml:"title"`
	ResetLabel string         `mapstructure:"reset_label" yaml:"reset_label"`
	EggSize    float64        `mapstructure:"egg_size" yaml:"egg_size"`
	TargetSize float64        `mapstructure:"target_size" yaml:"target_size"`
	Gap        float64        `mapstructure:"gap" yaml:"gap"`
	Shuffle    bool           `mapstructure:"shuffle" yaml:"shuffle"`
	Seed       uint64         `mapstructure:"seed" yaml:"seed"`
	Items      []ItemConfig   `mapstructure:"items" yaml:"items"`
	Targets    []TargetConfig `mapstructure:"targets" yaml:"targets"`
}

// ItemConfig describes one egg. Color is "#rrggbb" or "#rrggbbaa".
type ItemConfig struct {
	ID    string `mapstructure:"id" yaml:"id"`
	Shape string `mapstructure:"shape" yaml:"shape"`
	Color string `mapstructure:"color" yaml:"color"`
}

// TargetConfig describes one outline.
type TargetConfig struct {
	ID    string `mapstructure:"id" yaml:"id"`
	Shape string `mapstructure:"shape" yaml:"shape"`
}

// InputConfig tunes the pointer handling.
type InputConfig struct {
	DragDeadZone float64 `mapstructure:"drag_dead_zone" yaml:"drag_dead_zone"`
	NoAnimation  bool    `mapstructure:"no_animation" yaml:"no_animation"`
}

// MessagesConfig overrides the feedback texts. Empty entries keep the
// built-in text.
type MessagesConfig struct {
	PickUp   string `mapstructure:"pick_up" yaml:"pick_up"`
	Match    string `mapstructure:"match" yaml:"match"`
	Mismatch string `mapstructure:"mismatch" yaml:"mismatch"`
	Complete string `mapstructure:"complete" yaml:"complete"`
}

// LoggerConfig configures the zap logger. LogFile, when set, adds a rotated
// JSON file sink next to the console.
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := eggmatch.DefaultBoardSpec()

	// -- Window --
	v.SetDefault("window.title", "Egg Match")
	v.SetDefault("window.width", int(d.Width))
	v.SetDefault("window.height", int(d.Height))
	v.SetDefault("window.tps", 60)
	v.SetDefault("window.resizable", false)

	// -- Board --
	v.SetDefault("board.title", d.Title)
	v.SetDefault("board.reset_label", d.ResetLabel)
	v.SetDefault("board.egg_size", d.EggSize)
	v.SetDefault("board.target_size", d.TargetSize)
	v.SetDefault("board.gap", d.Gap)
	v.SetDefault("board.shuffle", false)
	v.SetDefault("board.seed", 0)

	// -- Input --
	v.SetDefault("input.drag_dead_zone", eggmatch.DefaultDragDeadZone)
	v.SetDefault("input.no_animation", false)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("script", "")
	v.SetDefault("debug", false)
}

// NewViper returns a viper instance with defaults registered and
// EGGMATCH_* environment lookups enabled. Nested keys map to variables with
// dots replaced by underscores, e.g. window.width is EGGMATCH_WINDOW_WIDTH.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges the config file at path into v. The format follows the
// file extension (yaml, json, toml).
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return nil
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the configuration for sane values. Errors wrap
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: window.tps must be a positive integer", ErrInvalidConfig)
	}
	if c.Input.DragDeadZone < 0 {
		return fmt.Errorf("%w: input.drag_dead_zone must not be negative", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("%w: logger.level: %v", ErrInvalidConfig, err)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalidConfig, c.Logger.Format)
	}
	spec, err := c.BoardSpec()
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%w: board: %w", ErrInvalidConfig, err)
	}
	return nil
}

// BoardSpec converts the board settings. The board fills the window.
func (c *Config) BoardSpec() (eggmatch.BoardSpec, error) {
	b := c.Board
	spec := eggmatch.BoardSpec{
		Title:      b.Title,
		ResetLabel: b.ResetLabel,
		Width:      float64(c.Window.Width),
		Height:     float64(c.Window.Height),
		EggSize:    b.EggSize,
		TargetSize: b.TargetSize,
		Gap:        b.Gap,
		Shuffle:    b.Shuffle,
		Seed:       b.Seed,
	}
	if len(b.Items) == 0 && len(b.Targets) == 0 {
		d := eggmatch.DefaultBoardSpec()
		spec.Items, spec.Targets = d.Items, d.Targets
		return spec, nil
	}
	for i, it := range b.Items {
		col, err := ParseColor(it.Color)
		if err != nil {
			return spec, fmt.Errorf("%w: board.items[%d].color: %v", ErrInvalidConfig, i, err)
		}
		spec.Items = append(spec.Items, eggmatch.ItemSpec{ID: it.ID, Shape: eggmatch.Shape(it.Shape), Color: col})
	}
	for _, t := range b.Targets {
		spec.Targets = append(spec.Targets, eggmatch.TargetSpec{ID: t.ID, Shape: eggmatch.Shape(t.Shape)})
	}
	return spec, nil
}

// MessageSet converts the message overrides.
func (c *Config) MessageSet() eggmatch.Messages {
	m := c.Messages
	return eggmatch.Messages{PickUp: m.PickUp, Match: m.Match, Mismatch: m.Mismatch, Complete: m.Complete}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string is the zero
// Color, which the board replaces with its default.
func ParseColor(s string) (eggmatch.Color, error) {
	if s == "" {
		return eggmatch.Color{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return eggmatch.Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return eggmatch.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return eggmatch.Color{
		R: float64(n>>24&0xff) / 255,
		G: float64(n>>16&0xff) / 255,
		B: float64(n>>8&0xff) / 255,
		A: float64(n&0xff) / 255,
	}, nil
}
