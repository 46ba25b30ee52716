// Package config provides configuration for the placement demos. Presets
// are loaded from a JSON data file so each table can define its own
// templates; a few scene settings can be overridden from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/placement"
	"chosenoffset.com/templar/internal/scene"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a demo run
type Config struct {
	Window  WindowConfig   `json:"window"`
	Scene   SceneConfig    `json:"scene"`
	Presets []PresetConfig `json:"presets"`
}

// WindowConfig defines the host window
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// SceneConfig defines the grid and camera of the demo scene
type SceneConfig struct {
	Grid     string  `json:"grid"`      // "square" or "gridless"
	GridSize float64 `json:"grid_size"` // Cell edge in world units
	Zoom     float64 `json:"zoom"`      // Screen pixels per world unit
	TermZoom float64 `json:"term_zoom"` // Terminal cells per world unit
	FadeMS   int     `json:"fade_ms"`   // Preview fade duration
	OriginX  float64 `json:"origin_x"`  // Caster position for ranged presets
	OriginY  float64 `json:"origin_y"`
}

// PresetConfig defines one template a user can place
type PresetConfig struct {
	Name        string  `json:"name"`
	Shape       string  `json:"shape"`       // "circle" or "square"
	Size        float64 `json:"size"`        // Radius or side in world units
	Granularity string  `json:"granularity"` // "auto", "odd" or "even"
	Snap        string  `json:"snap"`        // "top_left", "nearest_vertex" or "edge_midpoint"
	Range       float64 `json:"range"`       // Max range from the scene origin; 0 for none
	Fill        string  `json:"fill"`        // #rrggbb or #rrggbbaa
	Border      string  `json:"border"`
	Texture     string  `json:"texture"`
}

// Env holds environment overrides.
type Env struct {
	ConfigPath string  `env:"TEMPLAR_CONFIG" envDefault:"data/templar.json"`
	Grid       string  `env:"TEMPLAR_GRID"`
	GridSize   float64 `env:"TEMPLAR_GRID_SIZE"`
	FadeMS     *int    `env:"TEMPLAR_FADE_MS"`
}

// DefaultConfig returns the built-in demo configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 800, Title: "Templar"},
		Scene: SceneConfig{
			Grid:     "square",
			GridSize: 100,
			Zoom:     1,
			TermZoom: 0.1,
			FadeMS:   int(placement.DefaultFade / time.Millisecond),
			OriginX:  250,
			OriginY:  250,
		},
		Presets: []PresetConfig{
			{Name: "Fireball", Shape: "circle", Size: 200, Range: 600, Fill: "#ff8c0060", Border: "#ff8c00e6"},
			{Name: "Cloud", Shape: "circle", Size: 50, Fill: "#80ff8060", Border: "#40c040e6"},
			{Name: "Wall", Shape: "square", Size: 100, Granularity: "odd", Fill: "#8080ff60", Border: "#4040ffe6"},
		},
	}
}

// LoadConfig loads the config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	config.Presets = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(config.Presets) == 0 {
		config.Presets = DefaultConfig().Presets
	}

	return config, config.Validate()
}

// Load reads environment overrides, loads the file they point at and
// applies the overrides.
func Load() (*Config, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	config, err := LoadConfig(e.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.Apply(e)
	return config, config.Validate()
}

// Apply overwrites settings that are set in e.
func (c *Config) Apply(e Env) {
	if e.Grid != "" {
		c.Scene.Grid = e.Grid
	}
	if e.GridSize > 0 {
		c.Scene.GridSize = e.GridSize
	}
	if e.FadeMS != nil {
		c.Scene.FadeMS = *e.FadeMS
	}
}

// Validate checks every setting and preset.
func (c *Config) Validate() error {
	if _, err := c.Scene.ParseGrid(); err != nil {
		return err
	}
	if c.Scene.FadeMS < 0 {
		return fmt.Errorf("%w: fade_ms must not be negative", ErrInvalidConfig)
	}
	for i, p := range c.Presets {
		if _, err := p.Request(nil); err != nil {
			return fmt.Errorf("preset %d (%s): %w", i, p.Name, err)
		}
	}
	return nil
}

// ParseGrid converts the scene settings to grid metadata.
func (s SceneConfig) ParseGrid() (scene.Grid, error) {
	switch strings.ToLower(s.Grid) {
	case "", "gridless", "none":
		return scene.Grid{Type: scene.GridGridless}, nil
	case "square":
		if s.GridSize <= 0 {
			return scene.Grid{}, fmt.Errorf("%w: grid_size must be positive for square grids", ErrInvalidConfig)
		}
		return scene.Grid{Type: scene.GridSquare, Size: s.GridSize}, nil
	default:
		return scene.Grid{}, fmt.Errorf("%w: unknown grid %q", ErrInvalidConfig, s.Grid)
	}
}

// Fade returns the preview fade duration.
func (s SceneConfig) Fade() time.Duration {
	return time.Duration(s.FadeMS) * time.Millisecond
}

// Origin returns the caster position ranged presets measure from.
func (s SceneConfig) Origin() geom.Point {
	return geom.Pt(s.OriginX, s.OriginY)
}

// Request builds a placement request for the preset. Presets with a range
// anchor their ring at origin; a nil origin drops the ring.
func (p PresetConfig) Request(origin *geom.Point) (placement.Request, error) {
	req := placement.Request{MaxRange: p.Range}
	if p.Range > 0 && origin != nil {
		o := *origin
		req.Origin = &o
	}

	switch strings.ToLower(p.Shape) {
	case "", "circle":
		req.Shape.Kind = placement.ShapeCircle
	case "square":
		req.Shape.Kind = placement.ShapeSquare
	default:
		return req, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, p.Shape)
	}
	req.Shape.Size = p.Size
	req.Shape.Texture = p.Texture

	switch strings.ToLower(p.Granularity) {
	case "", "auto":
		req.Granularity = placement.GranularityAuto
	case "odd":
		req.Granularity = placement.GranularityOdd
	case "even":
		req.Granularity = placement.GranularityEven
	default:
		return req, fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfig, p.Granularity)
	}

	switch strings.ToLower(p.Snap) {
	case "", "top_left":
		req.EvenMode = placement.SnapTopLeft
	case "nearest_vertex":
		req.EvenMode = placement.SnapNearestVertex
	case "edge_midpoint":
		req.EvenMode = placement.SnapEdgeMidpoint
	default:
		return req, fmt.Errorf("%w: unknown snap mode %q", ErrInvalidConfig, p.Snap)
	}

	var err error
	if req.Shape.Fill, err = parseColor(p.Fill); err != nil {
		return req, err
	}
	if req.Shape.Border, err = parseColor(p.Border); err != nil {
		return req, err
	}

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return req, nil
}

// parseColor reads #rrggbb or #rrggbbaa. An empty string yields nil, which
// the preview replaces with its default style.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("%w: bad colour %q", ErrInvalidConfig, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: bad colour %q", ErrInvalidConfig, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
