package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMode       = flag.String("mode", "", "Initial effect mode (none, magic, spread, unroll, twister, rain)")
	flagDirection  = flag.String("direction", "", "Effect direction (X, Y or Z)")
	flagSource     = flag.String("source", "", "Field source (sphere, plane, image)")
	flagImage      = flag.String("image", "", "Image to build the field from; implies -source image")
	flagAudio      = flag.String("audio", "", "WAV file to play")
	flagWorkers    = flag.Int("workers", -1, "Evaluator goroutines (0 = all CPUs)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Render.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Render.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagMode != "" {
		cfg.Effects.Mode = *flagMode
	}
	if *flagDirection != "" {
		cfg.Effects.Direction = *flagDirection
	}
	if *flagSource != "" {
		cfg.Field.Source = *flagSource
	}
	if *flagImage != "" {
		cfg.Field.Image = *flagImage
		cfg.Field.Source = SourceImage
	}
	if *flagAudio != "" {
		cfg.Audio.File = *flagAudio
	}
	if *flagWorkers >= 0 {
		cfg.Render.Workers = *flagWorkers
	}
}
