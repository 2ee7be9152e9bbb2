package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/session"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Effects.Mode != "none" || cfg.Effects.Direction != "Y" {
		t.Errorf("expected mode none / direction Y, got %s / %s", cfg.Effects.Mode, cfg.Effects.Direction)
	}
	if cfg.Effects.PointScaleFactor() != 1 {
		t.Errorf("expected point scale factor 1, got %v", cfg.Effects.PointScaleFactor())
	}
	if cfg.Effects.ModelScale != 2.5 {
		t.Errorf("expected model scale 2.5, got %v", cfg.Effects.ModelScale)
	}
	if cfg.Effects.MaxFrameDelta != 100*time.Millisecond {
		t.Errorf("expected max frame delta 100ms, got %v", cfg.Effects.MaxFrameDelta)
	}
	if !cfg.Effects.Recenter {
		t.Error("expected recenter to be true by default")
	}

	if cfg.Render.Width != 1280 || cfg.Render.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if !cfg.Render.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Audio.Volume != 0.8 {
		t.Errorf("expected volume 0.8, got %f", cfg.Audio.Volume)
	}
	if cfg.Field.Source != SourceSphere {
		t.Errorf("expected sphere source, got %s", cfg.Field.Source)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
effects:
  mode: twister
  direction: z
  point_scale: 40
  model_scale: 3
  max_frame_delta: 50ms
  compose_audio: true

audio:
  visualization: pulse
  file: "music/track.wav"
  volume: 0.5
  loop: false

field:
  source: image
  image: "photo.png"
  max_points: 10000

render:
  width: 1920
  height: 1080
  fullscreen: true
  workers: 4

logging:
  level: "debug"
  log_file: "splatfx.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Effects.Mode != "twister" || cfg.Effects.Direction != "z" {
		t.Errorf("effects = %+v", cfg.Effects)
	}
	if cfg.Effects.PointScaleFactor() != 0.5 {
		t.Errorf("expected point scale factor 0.5, got %v", cfg.Effects.PointScaleFactor())
	}
	if cfg.Effects.MaxFrameDelta != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", cfg.Effects.MaxFrameDelta)
	}
	if !cfg.Effects.Recenter {
		t.Error("recenter default lost when merging file")
	}
	if cfg.Audio.File != "music/track.wav" || cfg.Audio.Loop {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Field.Source != SourceImage || cfg.Field.MaxPoints != 10000 {
		t.Errorf("field = %+v", cfg.Field)
	}
	if cfg.Field.Count != 20000 {
		t.Errorf("expected default count to survive, got %d", cfg.Field.Count)
	}
	if cfg.Render.Width != 1920 || !cfg.Render.Fullscreen || cfg.Render.Workers != 4 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Logging.LogFile != "splatfx.log" {
		t.Errorf("expected log file 'splatfx.log', got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	s := cfg.InitialState()
	if s.Mode != effect.ModeTwister || s.Direction != effect.DirZ || s.Visualization != audio.VisPulse {
		t.Errorf("InitialState() = %+v", s)
	}
	opts := cfg.EvaluatorOptions()
	if opts.Workers != 4 || opts.MaxDelta != 0.05 || !opts.ComposeAudio || opts.ModelScale != 3 {
		t.Errorf("EvaluatorOptions() = %+v", opts)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(configPath, []byte("effects:\n  mdoe: magic\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file: %v", err)
	}
	if cfg.Render.Width != 1280 {
		t.Errorf("defaults lost: width %d", cfg.Render.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"mode", func(c *Config) { c.Effects.Mode = "wobble" }, "effects.mode"},
		{"direction", func(c *Config) { c.Effects.Direction = "W" }, "effects.direction"},
		{"point scale", func(c *Config) { c.Effects.PointScale = 0 }, "effects.point_scale"},
		{"delta", func(c *Config) { c.Effects.MaxFrameDelta = 0 }, "effects.max_frame_delta"},
		{"visualization", func(c *Config) { c.Audio.Visualization = "strobe" }, "audio.visualization"},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
		{"source", func(c *Config) { c.Field.Source = "mesh" }, "field.source"},
		{"image", func(c *Config) { c.Field.Source = SourceImage }, "field.image"},
		{"plane", func(c *Config) { c.Field.Source = SourcePlane; c.Field.Width = 0 }, "plane size"},
		{"workers", func(c *Config) { c.Render.Workers = -2 }, "render.workers"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "splatfx.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find splatfx.yaml in current directory")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Effects.Mode = "rain"
	cfg.Effects.MaxFrameDelta = 250 * time.Millisecond

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Effects.Mode != "rain" || loaded.Effects.MaxFrameDelta != 250*time.Millisecond {
		t.Errorf("loaded effects = %+v", loaded.Effects)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Render.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "image flag implies image source",
			setup: func() { *flagImage = "cat.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Field.Source != SourceImage || cfg.Field.Image != "cat.png" {
					t.Errorf("field = %+v", cfg.Field)
				}
			},
			teardown: func() { *flagImage = "" },
		},
		{
			name: "mode and direction flags",
			setup: func() {
				*flagMode = "magic"
				*flagDirection = "x"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Effects.Mode != "magic" || cfg.Effects.Direction != "x" {
					t.Errorf("effects = %+v", cfg.Effects)
				}
			},
			teardown: func() {
				*flagMode = ""
				*flagDirection = ""
			},
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Workers != 0 {
					t.Errorf("expected workers 0, got %d", cfg.Render.Workers)
				}
			},
			teardown: func() { *flagWorkers = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
render:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("effects:\n  mode: wobble\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected validation error, got nil")
	}
}

func TestCaptureStateSaveRoundTrip(t *testing.T) {
	s := session.Initial()
	s.Mode = effect.ModeTwister
	s.Direction = effect.DirZ
	s.PointScale = 1.25
	s.GlobalScale = 0.5
	s.Visualization = audio.VisExplode
	s.Clock = 3
	s.Version = 7

	cfg := Default()
	cfg.CaptureState(s)
	if cfg.Effects.PointScale != 100 {
		t.Errorf("point_scale = %v, want 100", cfg.Effects.PointScale)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	got := loaded.InitialState()
	if got.Mode != s.Mode || got.Direction != s.Direction || got.Visualization != s.Visualization {
		t.Errorf("restored %v/%v/%v, want %v/%v/%v",
			got.Mode, got.Direction, got.Visualization, s.Mode, s.Direction, s.Visualization)
	}
	if got.PointScale != s.PointScale || got.GlobalScale != s.GlobalScale {
		t.Errorf("restored scales %v/%v, want %v/%v", got.PointScale, got.GlobalScale, s.PointScale, s.GlobalScale)
	}
	if got.Clock != 0 {
		t.Errorf("restored clock = %v, want 0", got.Clock)
	}
}
