// Package viewer implements the interactive host: it owns the window, feeds
// input to the effect session, and draws every evaluated frame.
package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/config"
	"github.com/Faultbox/splatfx/internal/engine/camera"
	"github.com/Faultbox/splatfx/internal/engine/input"
	"github.com/Faultbox/splatfx/internal/engine/renderer"
	"github.com/Faultbox/splatfx/internal/engine/screenshot"
	"github.com/Faultbox/splatfx/internal/engine/vertex"
	"github.com/Faultbox/splatfx/internal/engine/window"
	"github.com/Faultbox/splatfx/internal/evaluator"
	"github.com/Faultbox/splatfx/internal/session"
	"github.com/Faultbox/splatfx/internal/splat"
	"github.com/Faultbox/splatfx/pkg/math"
)

const title = "splatfx"

// Viewer is the main viewer instance.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	eval     *evaluator.Evaluator
	player   *audio.Player
	shots    *screenshot.Capture
	capture  bool
	save     bool
	version  uint64
	log      *zap.Logger
}

// New creates the window, renderer, evaluator and audio player. field may
// be nil; a field can be dropped onto the window later.
func New(cfg *config.Config, field *splat.Field, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.Bool("fullscreen", cfg.Render.Fullscreen),
	)

	v := &Viewer{cfg: cfg, log: log}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: cfg.Render.Fullscreen,
		VSync:      cfg.Render.VSync,
		Samples:    4,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := v.window.DrawableSize()
	rcfg := renderer.DefaultConfig(w, h)
	if cfg.Render.PointSizePx > 0 {
		rcfg.PointSizePx = cfg.Render.PointSizePx
	}
	v.renderer, err = renderer.New(rcfg, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.shots = screenshot.New(cfg.Render.ScreenshotDir, title)
	v.camera = camera.NewOrbitCamera(v.fps())
	v.eval = evaluator.New(cfg.InitialState(), cfg.EvaluatorOptions(), log.Named("evaluator"))
	if field != nil {
		v.setField(field)
	}

	if cfg.Audio.File != "" {
		v.startAudio()
	}

	log.Info("viewer initialized successfully")
	return v, nil
}

func (v *Viewer) fps() int {
	if v.cfg.Render.FPSLimit > 0 {
		return v.cfg.Render.FPSLimit
	}
	return 60
}

// startAudio failures are not fatal: the viewer runs silent.
func (v *Viewer) startAudio() {
	v.player = audio.NewPlayer(v.log.Named("audio"))
	if err := v.player.Init(); err != nil {
		v.log.Warn("audio disabled", zap.Error(err))
		v.player = nil
		return
	}
	vol := float64(v.cfg.Audio.Volume)
	if v.cfg.Audio.Muted {
		vol = 0
	}
	v.player.SetVolume(vol)
	if err := v.player.Load(v.cfg.Audio.File, v.cfg.Audio.Loop); err != nil {
		v.log.Warn("failed to play audio", zap.String("file", v.cfg.Audio.File), zap.Error(err))
	}
}

func (v *Viewer) setField(f *splat.Field) {
	v.eval.LoadField(f)
	lo, hi := f.Bounds()
	radius := hi.Sub(lo).Length() / 2 * v.cfg.Effects.ModelScale
	v.camera.FitRadius(radius)
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	last := window.Ticks()
	frameCount := 0
	fpsTimer := last
	frameBudget := 1.0 / float64(v.fps())

	v.log.Info("starting viewer loop")

	for v.running {
		now := window.Ticks()
		dt := now - last
		last = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents(v.input.Events())

		// 2. Evaluate
		var sample *audio.Bands
		if v.player != nil {
			sample = v.player.Sample()
		}
		fr := v.eval.Frame(float32(dt), sample)
		v.camera.Update()

		// 3. Render
		v.render(fr)
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		if v.save {
			v.save = false
			v.saveConfig(fr.State)
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		if fr.State.Version != v.version {
			v.version = fr.State.Version
			v.window.SetTitle(fmt.Sprintf("%s - %s %s - %s", title, fr.State.Mode, fr.State.Direction, fr.State.Visualization))
		}

		frameCount++
		if now-fpsTimer >= 1 {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("splats", v.renderer.Drawn()),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = now
		}

		if v.cfg.Render.FPSLimit > 0 && !v.cfg.Render.VSync {
			if spent := window.Ticks() - now; spent < frameBudget {
				sdl.Delay(uint32((frameBudget - spent) * 1000))
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents(events []input.Event) {
	for _, ev := range events {
		switch ev.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
		case input.EventMouseDrag:
			v.camera.HandleDrag(ev.DX, ev.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(ev.DY)
		case input.EventFileDrop:
			v.loadDropped(ev.Path)
		case input.EventKeyDown:
			b, ok := Bind(ev.Key)
			if !ok {
				continue
			}
			if b.Command != nil {
				v.eval.Submit(b.Command)
			}
			switch b.Action {
			case ActionQuit:
				v.running = false
			case ActionTogglePause:
				if v.player != nil {
					v.player.TogglePause()
				}
			case ActionView:
				v.camera.SetView(b.View)
			case ActionScreenshot:
				v.capture = true
			case ActionSaveConfig:
				v.save = true
			}
		}
	}
}

// loadDropped builds an image field from a dropped file or, for a WAV
// file, switches the music track.
func (v *Viewer) loadDropped(path string) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		v.cfg.Audio.File = path
		if v.player == nil {
			v.startAudio()
		} else if err := v.player.Load(path, v.cfg.Audio.Loop); err != nil {
			v.log.Warn("failed to play dropped audio", zap.String("file", path), zap.Error(err))
		}
		return
	}

	f, err := v.cfg.Field.BuildImage(path)
	if err != nil {
		v.log.Warn("ignoring dropped file", zap.String("file", path), zap.Error(err))
		return
	}
	v.setField(f)
}

func (v *Viewer) render(fr evaluator.Frame) {
	var origin math.Vec3
	if !v.cfg.Effects.Recenter {
		origin = fr.Centroid
	}
	v.camera.Target = vertex.ModelMatrix(fr.ModelScale, fr.FlipX).TransformPoint(origin)

	v.renderer.Begin()
	v.renderer.Draw(fr, v.camera.ViewMatrix())
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.Save(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// saveConfig persists the current mode, direction, scales and
// visualization so the next start resumes from them.
func (v *Viewer) saveConfig(s session.State) {
	v.cfg.CaptureState(s)
	if err := v.cfg.Save(); err != nil {
		v.log.Warn("failed to save config", zap.Error(err))
		return
	}
	v.log.Info("config saved",
		zap.String("mode", s.Mode.String()),
		zap.String("direction", s.Direction.String()),
		zap.Float32("point_scale", v.cfg.Effects.PointScale))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.player != nil {
		v.player.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
