package evaluator

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/session"
	"github.com/Faultbox/splatfx/internal/splat"
	"github.com/Faultbox/splatfx/pkg/math"
)

// Frame is the output of one evaluation step.
type Frame struct {
	// Splats is the working buffer of the current field. It is overwritten
	// by the next Frame call and is nil when no field is loaded.
	Splats   []splat.Splat
	Centroid math.Vec3

	State session.State
	Audio audio.Bands

	// Object-level transform for the renderer: uniform scale and an
	// optional half turn about X.
	ModelScale float32
	FlipX      bool
}

// Evaluator drives the session machine, the audio modulator and the splat
// pass once per frame. Frame must be called from a single goroutine;
// Submit and LoadField may be called from any goroutine.
type Evaluator struct {
	opts    Options
	machine *session.Machine
	queue   session.Queue
	mod     audio.Modulator
	field   atomic.Pointer[splat.Field]
	frames  uint64
	log     *zap.Logger
}

// New creates an evaluator starting from the given session state.
func New(initial session.State, opts Options, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{
		opts:    opts.withDefaults(),
		machine: session.NewMachine(initial, log.Named("session")),
		log:     log,
	}
}

// Submit queues a command for the next frame boundary.
func (e *Evaluator) Submit(c session.Command) {
	e.queue.Submit(c)
}

// LoadField swaps in a new field. It becomes visible at the next Frame.
func (e *Evaluator) LoadField(f *splat.Field) {
	old := e.field.Swap(f)
	e.log.Info("field loaded",
		zap.Int("splats", f.Len()),
		zap.Int("previous", old.Len()))
}

// State returns the session state as of the last frame boundary.
func (e *Evaluator) State() session.State {
	return e.machine.Snapshot()
}

// Frames returns the number of frames evaluated.
func (e *Evaluator) Frames() uint64 {
	return e.frames
}

// Frame applies queued commands, advances the clock by dt, resolves the
// audio state from sample (nil when no sample arrived) and evaluates the
// loaded field.
//
// dt is clamped to [0, Options.MaxDelta] before it reaches the clock. When
// the host runs slower than 1/MaxDelta frames per second (10 fps with the
// default 0.1s), the effect clock advances slower than wall time and
// animations stretch out instead of jumping ahead.
func (e *Evaluator) Frame(dt float32, sample *audio.Bands) Frame {
	e.queue.Drain(e.machine)

	dt = e.clampDelta(dt)
	e.machine.Tick(dt)
	s := e.machine.Snapshot()

	if s.Visualization == audio.VisNone {
		sample = nil
	}
	bands := e.mod.Update(sample, dt)

	objScale, flip := effect.ObjectTransform(s.Mode)
	out := Frame{
		State:      s,
		Audio:      bands,
		ModelScale: e.opts.ModelScale * s.GlobalScale * objScale * s.Visualization.ScaleFactor(bands.Bass),
		FlipX:      flip,
	}
	e.frames++

	f := e.field.Load()
	if f.Empty() {
		return out
	}
	Evaluate(f, s, bands, e.opts)
	out.Splats = f.Working()
	out.Centroid = f.Centroid()
	return out
}

func (e *Evaluator) clampDelta(dt float32) float32 {
	if !(dt > 0) {
		return 0
	}
	if dt > e.opts.MaxDelta {
		if dt > 4*e.opts.MaxDelta {
			e.log.Debug("frame delta clamped", zap.Float32("dt", dt))
		}
		return e.opts.MaxDelta
	}
	return dt
}
