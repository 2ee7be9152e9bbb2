// splatfx is a headless host for the splat effect engine: it replays an
// effect session without a window and reports per-frame statistics or a
// digest of the final working buffer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/config"
	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "checksum", "sum":
		cmdChecksum(args)
	case "modes":
		cmdModes()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`splatfx - headless splat effect replay

Usage:
  splatfx <command> [options]

Commands:
  run [options]        Simulate frames and log statistics
  checksum [options]   Print a digest of the working buffer after N frames
  modes                List effect modes, directions and visualizations

Options (run, checksum):
  -config <file>       Config file (defaults otherwise)
  -mode <name>         Effect mode
  -dir <X|Y|Z>         Effect direction
  -vis <name>          Audio visualization
  -audio <file.wav>    Replay a WAV track through the analyzer
  -frames <n>          Frames to simulate
  -fps <n>             Simulated frame rate
  -workers <n>         Evaluator goroutines (0 = all CPUs)

Examples:
  splatfx run -mode magic -frames 300
  splatfx checksum -mode twister -dir Z -frames 120
  splatfx run -mode spread -vis pulse -audio song.wav`)
}

// parseSim parses the shared simulation flags and loads the config.
func parseSim(name string, args []string) (*config.Config, simOptions, int) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file")
	mode := fs.String("mode", "", "Effect mode")
	dir := fs.String("dir", "", "Effect direction")
	vis := fs.String("vis", "", "Audio visualization")
	track := fs.String("audio", "", "WAV file to replay")
	frames := fs.Int("frames", 300, "Frames to simulate")
	fps := fs.Int("fps", 60, "Simulated frame rate")
	workers := fs.Int("workers", -1, "Evaluator goroutines (0 = all CPUs)")
	every := fs.Int("every", 60, "Log statistics every N frames (run only)")
	fs.Parse(args)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.LoadFile(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
	}
	if *mode != "" {
		cfg.Effects.Mode = *mode
	}
	if *dir != "" {
		cfg.Effects.Direction = *dir
	}
	if *vis != "" {
		cfg.Audio.Visualization = *vis
	}
	if *track != "" {
		cfg.Audio.File = *track
	}
	if *workers >= 0 {
		cfg.Render.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}
	if *frames <= 0 || *fps <= 0 {
		fmt.Fprintln(os.Stderr, "frames and fps must be positive")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	return cfg, simOptions{Frames: *frames, FPS: *fps}, *every
}

func cmdRun(args []string) {
	cfg, opts, every := parseSim("run", args)
	defer logger.Sync()

	if every > 0 {
		opts.OnFrame = func(n int, st stats) {
			if n%every == 0 || n == opts.Frames {
				logger.Info("frame", st.fields(n)...)
			}
		}
	}

	res, err := simulate(cfg, opts, logger.Named("sim"))
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("simulation complete",
		zap.Uint64("frames", res.Frames),
		zap.Float32("clock", res.Clock),
		zap.Int("splats", res.Splats),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("frames_per_second", float64(res.Frames)/res.Elapsed.Seconds()))
}

func cmdChecksum(args []string) {
	cfg, opts, _ := parseSim("checksum", args)
	defer logger.Sync()

	res, err := simulate(cfg, opts, logger.Named("sim"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%016x  %s %s %d frames @ %d fps, %d splats\n",
		res.Digest, cfg.Effects.Mode, cfg.Effects.Direction, opts.Frames, opts.FPS, res.Splats)
}

func cmdModes() {
	fmt.Println("Modes:")
	for _, m := range effect.Modes() {
		scale, flip := effect.ObjectTransform(m)
		fmt.Printf("  %-8s scale %.1f flip %-5v directional %v\n", m, scale, flip, m.Directional())
	}
	fmt.Println()
	fmt.Println("Directions:")
	for _, d := range []effect.Direction{effect.DirX, effect.DirY, effect.DirZ} {
		fmt.Printf("  %s\n", d)
	}
	fmt.Println()
	fmt.Println("Visualizations:")
	for v := audio.VisNone; v <= audio.VisExplode; v++ {
		fmt.Printf("  %s\n", v)
	}
}
