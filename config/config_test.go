package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phanxgames/eggmatch"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.TPS != 60 {
		t.Errorf("tps = %d, want 60", cfg.Window.TPS)
	}
	if cfg.Input.DragDeadZone != eggmatch.DefaultDragDeadZone {
		t.Errorf("dead zone = %v", cfg.Input.DragDeadZone)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Format != "console" {
		t.Errorf("logger = %+v", cfg.Logger)
	}

	spec, err := cfg.BoardSpec()
	if err != nil {
		t.Fatal(err)
	}
	d := eggmatch.DefaultBoardSpec()
	if diff := cmp.Diff(d.Items, spec.Items); diff != "" {
		t.Errorf("default items (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Targets, spec.Targets); diff != "" {
		t.Errorf("default targets (-want +got):\n%s", diff)
	}
}

func TestFromViper_YAML(t *testing.T) {
	v := NewViper()
	v.SetConfigType("yaml")
	err := v.ReadConfig(bytes.NewBufferString(`
window:
  width: 640
  height: 480
board:
  shuffle: true
  seed: 7
  items:
    - id: a
      shape: star
      color: "#ff0000"
    - id: b
      shape: heart
  targets:
    - id: t-star
      shape: star
messages:
  match: "Yes!"
logger:
  level: debug
`))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}

	spec, err := cfg.BoardSpec()
	if err != nil {
		t.Fatal(err)
	}
	want := eggmatch.BoardSpec{
		Title:      eggmatch.DefaultBoardSpec().Title,
		ResetLabel: "Reset",
		Width:      640,
		Height:     480,
		EggSize:    90,
		TargetSize: 110,
		Gap:        36,
		Shuffle:    true,
		Seed:       7,
		Items: []eggmatch.ItemSpec{
			{ID: "a", Shape: eggmatch.ShapeStar, Color: eggmatch.Color{R: 1, A: 1}},
			{ID: "b", Shape: eggmatch.ShapeHeart},
		},
		Targets: []eggmatch.TargetSpec{{ID: "t-star", Shape: eggmatch.ShapeStar}},
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("board spec (-want +got):\n%s", diff)
	}
	if got := cfg.MessageSet(); got.Match != "Yes!" || got.Mismatch != "" {
		t.Errorf("messages = %+v", got)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("level = %q", cfg.Logger.Level)
	}
}

func TestNewViper_Env(t *testing.T) {
	t.Setenv("EGGMATCH_WINDOW_WIDTH", "1024")
	t.Setenv("EGGMATCH_DEBUG", "true")

	cfg, err := FromViper(NewViper())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("width = %d, want 1024", cfg.Window.Width)
	}
	if !cfg.Debug {
		t.Error("debug not read from environment")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggmatch.json")
	if err := os.WriteFile(path, []byte(`{"window": {"title": "From file"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	v := NewViper()
	if err := ReadFile(v, path); err != nil {
		t.Fatal(err)
	}
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "From file" {
		t.Errorf("title = %q", cfg.Window.Title)
	}

	if err := ReadFile(NewViper(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }},
		{"negative dead zone", func(c *Config) { c.Input.DragDeadZone = -1 }},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }},
		{"bad color", func(c *Config) {
			c.Board.Items = []ItemConfig{{ID: "a", Shape: "circle", Color: "red"}}
			c.Board.Targets = []TargetConfig{{ID: "t", Shape: "circle"}}
		}},
		{"unmatched target", func(c *Config) {
			c.Board.Items = []ItemConfig{{ID: "a", Shape: "circle"}}
			c.Board.Targets = []TargetConfig{{ID: "t", Shape: "square"}}
		}},
		{"targets without items", func(c *Config) {
			c.Board.Targets = []TargetConfig{{ID: "t", Shape: "square"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    eggmatch.Color
		wantErr bool
	}{
		{"", eggmatch.Color{}, false},
		{"#ffffff", eggmatch.Color{R: 1, G: 1, B: 1, A: 1}, false},
		{"000000", eggmatch.Color{A: 1}, false},
		{"#00ff0080", eggmatch.Color{G: 1, A: 128.0 / 255}, false},
		{"#fff", eggmatch.Color{}, true},
		{"#gggggg", eggmatch.Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
