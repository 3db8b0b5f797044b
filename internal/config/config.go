package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/orbit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames     = 365
	DefaultIntervalMs = 30
	DefaultExtent     = 60.0
	DefaultSunRadius  = 3.5
	DefaultBackground = "#000000"
	DefaultSunColor   = "#ffff00"
	DefaultTheme      = "space"
	DefaultLogLevel   = "info"
)

// DefaultColors is matplotlib's default property cycle, assigned in body
// order to bodies without an explicit colour.
var DefaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SimulationConfig is everything the frame driver and the rendering
// surfaces need. It is read once at startup.
type SimulationConfig struct {
	Bodies      []BodyConfig  `yaml:"bodies"`
	Slowdown    float64       `yaml:"slowdown_factor"`
	Scale       ScaleConfig   `yaml:"scale"`
	Canvas      CanvasConfig  `yaml:"canvas"`
	CentralBody CentralConfig `yaml:"central_body"`
	MarkerSize  float64       `yaml:"marker_size"`
	ShowOrbits  bool          `yaml:"show_orbits"`
	Frames      int           `yaml:"frames"`
	IntervalMs  int           `yaml:"interval_ms"`
	Repeat      bool          `yaml:"repeat"`
	Theme       string        `yaml:"theme"`
	LogLevel    string        `yaml:"log_level"`
}

type BodyConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Period float64 `yaml:"period"`
	Color  string  `yaml:"color,omitempty"`
}

type ScaleConfig struct {
	Threshold float64 `yaml:"threshold"`
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
}

type CanvasConfig struct {
	XMin       float64 `yaml:"x_min"`
	XMax       float64 `yaml:"x_max"`
	YMin       float64 `yaml:"y_min"`
	YMax       float64 `yaml:"y_max"`
	Background string  `yaml:"background"`
}

type CentralConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
}

func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Bodies:   SolarBodies(),
		Slowdown: orbit.DefaultSlowdown,
		Scale: ScaleConfig{
			Threshold: orbit.DefaultScaleThreshold,
			Inner:     orbit.DefaultInnerScale,
			Outer:     orbit.DefaultOuterScale,
		},
		Canvas: CanvasConfig{
			XMin:       -DefaultExtent,
			XMax:       DefaultExtent,
			YMin:       -DefaultExtent,
			YMax:       DefaultExtent,
			Background: DefaultBackground,
		},
		CentralBody: CentralConfig{
			Name:   "Sun",
			Radius: DefaultSunRadius,
			Color:  DefaultSunColor,
		},
		MarkerSize: orbit.DefaultMarkerSize,
		Frames:     DefaultFrames,
		IntervalMs: DefaultIntervalMs,
		Repeat:     true,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads a YAML file on top of DefaultConfig. A file that lists bodies
// replaces the default body set entirely.
func Load(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*SimulationConfig, error) {
	cfg := DefaultConfig()
	cfg.Bodies = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Bodies == nil {
		cfg.Bodies = SolarBodies()
	}
	return cfg, nil
}

func Save(path string, cfg *SimulationConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that cannot produce a single frame.
func (c *SimulationConfig) Validate() error {
	if len(c.Bodies) == 0 {
		return &orbit.ConfigurationError{Field: "bodies", Wrapped: orbit.ErrNoBodies}
	}

	seen := make(map[string]struct{}, len(c.Bodies))
	for _, b := range c.Bodies {
		if _, dup := seen[b.Name]; dup {
			return &orbit.ConfigurationError{Body: b.Name, Field: "name", Wrapped: orbit.ErrDuplicateName}
		}
		seen[b.Name] = struct{}{}
		if !(b.Period > 0) {
			return &orbit.ConfigurationError{Body: b.Name, Field: "period", Wrapped: orbit.ErrInvalidPeriod}
		}
		if b.Color != "" {
			if !validColor(b.Color) {
				return &orbit.ConfigurationError{
					Body:    b.Name,
					Field:   "color",
					Wrapped: fmt.Errorf("%w: %q is not a #rrggbb colour", orbit.ErrConfiguration, b.Color),
				}
			}
		}
	}

	if !(c.Slowdown > 0) {
		return invalid("slowdown_factor", "must be positive, got %v", c.Slowdown)
	}
	if c.Frames <= 0 {
		return invalid("frames", "must be positive, got %d", c.Frames)
	}
	if c.IntervalMs <= 0 {
		return invalid("interval_ms", "must be positive, got %d", c.IntervalMs)
	}
	if c.Scale.Inner <= 0 || c.Scale.Outer <= 0 {
		return invalid("scale", "factors must be positive, got %v/%v", c.Scale.Inner, c.Scale.Outer)
	}
	if !validColor(c.Canvas.Background) {
		return invalid("canvas.background", "%q is not a #rrggbb colour", c.Canvas.Background)
	}
	if !validColor(c.CentralBody.Color) {
		return invalid("central_body.color", "%q is not a #rrggbb colour", c.CentralBody.Color)
	}
	if c.Canvas.XMax <= c.Canvas.XMin || c.Canvas.YMax <= c.Canvas.YMin {
		return invalid("canvas", "empty bounds [%v,%v]x[%v,%v]", c.Canvas.XMin, c.Canvas.XMax, c.Canvas.YMin, c.Canvas.YMax)
	}
	return nil
}

// validColor accepts "#rgb" and "#rrggbb". colorful.Hex alone ignores
// trailing input.
func validColor(hex string) bool {
	if len(hex) != 4 && len(hex) != 7 {
		return false
	}
	_, err := colorful.Hex(hex)
	return err == nil
}

func invalid(field, format string, args ...any) error {
	return &orbit.ConfigurationError{
		Field:   field,
		Wrapped: fmt.Errorf("%w: %s", orbit.ErrConfiguration, fmt.Sprintf(format, args...)),
	}
}

func (c *SimulationConfig) ScalePolicy() orbit.ScalePolicy {
	return orbit.ScalePolicy{
		Threshold: c.Scale.Threshold,
		Inner:     c.Scale.Inner,
		Outer:     c.Scale.Outer,
	}
}

// BuildBodies validates the config and constructs the bodies in file order.
func (c *SimulationConfig) BuildBodies() ([]orbit.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	policy := c.ScalePolicy()
	bodies := make([]orbit.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := orbit.NewBody(bc.Name, bc.Radius, bc.Period, policy)
		if err != nil {
			return nil, err
		}
		color := bc.Color
		if color == "" {
			color = DefaultColors[i%len(DefaultColors)]
		}
		bodies = append(bodies, b.WithStyle(c.MarkerSize, color))
	}
	return bodies, nil
}

func (c *SimulationConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
