// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/evaluator"
	"github.com/Faultbox/splatfx/internal/logger"
	"github.com/Faultbox/splatfx/internal/session"
)

// PointScaleUnit is the point_scale value that maps to a scale factor of 1.
const PointScaleUnit = 80

// Field sources.
const (
	SourceSphere = "sphere"
	SourcePlane  = "plane"
	SourceImage  = "image"
)

// Config holds all settings.
type Config struct {
	Effects EffectsConfig `yaml:"effects"`
	Audio   AudioConfig   `yaml:"audio"`
	Field   FieldConfig   `yaml:"field"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// EffectsConfig holds the initial effect session and evaluator settings.
type EffectsConfig struct {
	Mode          string        `yaml:"mode"`
	Direction     string        `yaml:"direction"`
	PointScale    float32       `yaml:"point_scale"` // PointScaleUnit is 1.0
	GlobalScale   float32       `yaml:"global_scale"`
	ModelScale    float32       `yaml:"model_scale"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	Recenter      bool          `yaml:"recenter"`
	ComposeAudio  bool          `yaml:"compose_audio"`
}

// AudioConfig holds music playback settings.
type AudioConfig struct {
	Visualization string  `yaml:"visualization"`
	File          string  `yaml:"file"` // WAV file; empty disables playback
	Volume        float32 `yaml:"volume"`
	Loop          bool    `yaml:"loop"`
	Muted         bool    `yaml:"muted"`
}

// FieldConfig selects and parameterizes the splat field builder.
type FieldConfig struct {
	Source    string  `yaml:"source"` // sphere, plane or image
	Count     int     `yaml:"count"`
	Radius    float32 `yaml:"radius"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Image     string  `yaml:"image"`
	MaxPoints int     `yaml:"max_points"`
	Depth     float32 `yaml:"depth"`
	Relief    float32 `yaml:"relief"`
	Seed      int64   `yaml:"seed"`
}

// RenderConfig holds display and rendering settings.
type RenderConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	FPSLimit      int     `yaml:"fps_limit"`
	Workers       int     `yaml:"workers"` // 0 uses every CPU
	PointSizePx   float32 `yaml:"point_size_px"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Effects: EffectsConfig{
			Mode:          "none",
			Direction:     "Y",
			PointScale:    PointScaleUnit,
			GlobalScale:   1,
			ModelScale:    2.5,
			MaxFrameDelta: 100 * time.Millisecond,
			Recenter:      true,
		},
		Audio: AudioConfig{
			Visualization: "none",
			Volume:        0.8,
			Loop:          true,
		},
		Field: FieldConfig{
			Source:    SourceSphere,
			Count:     20000,
			Radius:    1,
			Width:     160,
			Height:    120,
			MaxPoints: 40000,
			Depth:     0.3,
			Relief:    0.15,
			Seed:      1,
		},
		Render: RenderConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			PointSizePx:   600,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid enum or out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := effect.ParseMode(c.Effects.Mode); !ok {
		errs = append(errs, fmt.Errorf("effects.mode: unknown mode %q", c.Effects.Mode))
	}
	if _, ok := effect.ParseDirection(c.Effects.Direction); !ok {
		errs = append(errs, fmt.Errorf("effects.direction: unknown direction %q", c.Effects.Direction))
	}
	if !(c.Effects.PointScale > 0) {
		errs = append(errs, fmt.Errorf("effects.point_scale: must be positive, got %v", c.Effects.PointScale))
	}
	if !(c.Effects.GlobalScale > 0) {
		errs = append(errs, fmt.Errorf("effects.global_scale: must be positive, got %v", c.Effects.GlobalScale))
	}
	if !(c.Effects.ModelScale > 0) {
		errs = append(errs, fmt.Errorf("effects.model_scale: must be positive, got %v", c.Effects.ModelScale))
	}
	if c.Effects.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("effects.max_frame_delta: must be positive, got %v", c.Effects.MaxFrameDelta))
	}
	if _, ok := audio.ParseVisualization(c.Audio.Visualization); !ok {
		errs = append(errs, fmt.Errorf("audio.visualization: unknown visualization %q", c.Audio.Visualization))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: must be in [0, 1], got %v", c.Audio.Volume))
	}
	switch c.Field.Source {
	case SourceSphere:
		if c.Field.Count <= 0 {
			errs = append(errs, fmt.Errorf("field.count: must be positive, got %d", c.Field.Count))
		}
	case SourcePlane:
		if c.Field.Width <= 0 || c.Field.Height <= 0 {
			errs = append(errs, fmt.Errorf("field: plane size %dx%d must be positive", c.Field.Width, c.Field.Height))
		}
	case SourceImage:
		if c.Field.Image == "" {
			errs = append(errs, errors.New("field.image: required for image source"))
		}
	default:
		errs = append(errs, fmt.Errorf("field.source: unknown source %q", c.Field.Source))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render: window size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("render.workers: must not be negative, got %d", c.Render.Workers))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// PointScaleFactor converts the configured point scale to a multiplier.
func (e EffectsConfig) PointScaleFactor() float32 {
	return e.PointScale / PointScaleUnit
}

// InitialState builds the session state the viewer starts in. Unknown names
// fall back to their defaults; Validate reports them.
func (c *Config) InitialState() session.State {
	s := session.Initial()
	s.Mode, _ = effect.ParseMode(c.Effects.Mode)
	s.Direction, _ = effect.ParseDirection(c.Effects.Direction)
	s.Visualization, _ = audio.ParseVisualization(c.Audio.Visualization)
	s.PointScale = c.Effects.PointScaleFactor()
	s.GlobalScale = c.Effects.GlobalScale
	return s
}

// CaptureState copies the session settings a user can change at runtime
// back into the config, so Save persists them.
func (c *Config) CaptureState(s session.State) {
	c.Effects.Mode = s.Mode.String()
	c.Effects.Direction = s.Direction.String()
	c.Effects.PointScale = s.PointScale * PointScaleUnit
	c.Effects.GlobalScale = s.GlobalScale
	c.Audio.Visualization = s.Visualization.String()
}

// EvaluatorOptions returns the evaluator settings.
func (c *Config) EvaluatorOptions() evaluator.Options {
	opts := evaluator.DefaultOptions()
	opts.Workers = c.Render.Workers
	opts.MaxDelta = float32(c.Effects.MaxFrameDelta.Seconds())
	opts.ModelScale = c.Effects.ModelScale
	opts.Recenter = c.Effects.Recenter
	opts.ComposeAudio = c.Effects.ComposeAudio
	return opts
}
