// Package evaluator runs the per-frame pass that maps every base splat of a
// field through the active effect kernel into the field's working buffer.
package evaluator

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/session"
	"github.com/Faultbox/splatfx/internal/splat"
	"github.com/Faultbox/splatfx/pkg/math"
)

// Options tunes the evaluator. The zero value is usable; DefaultOptions
// documents the defaults.
type Options struct {
	// Workers caps the goroutines used for one pass. 0 means GOMAXPROCS.
	Workers int
	// MinPartition is the smallest index range handed to one goroutine.
	MinPartition int
	// MaxDelta caps the clock advance per frame in seconds.
	MaxDelta float32
	// ModelScale is the object-level scale before effect and audio factors.
	ModelScale float32
	// Recenter keeps outputs relative to the centroid. When false the
	// centroid is added back.
	Recenter bool
	// ComposeAudio applies the audio displacement on top of effect kernels
	// as well, not only in ModeNone.
	ComposeAudio bool
}

// DefaultOptions returns the options used by the viewer.
func DefaultOptions() Options {
	return Options{
		MinPartition: 4096,
		MaxDelta:     0.1,
		ModelScale:   2.5,
		Recenter:     true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MinPartition <= 0 {
		o.MinPartition = d.MinPartition
	}
	if !(o.MaxDelta > 0) {
		o.MaxDelta = d.MaxDelta
	}
	if !(o.ModelScale > 0) {
		o.ModelScale = d.ModelScale
	}
	return o
}

// pass is the read-only per-frame input shared by all partitions.
type pass struct {
	kernel   effect.Kernel
	params   effect.Params
	centroid math.Vec3
	recenter bool
}

func newPass(f *splat.Field, s session.State, bands audio.Bands, opts Options) pass {
	k := effect.Lookup(s.Mode)
	if opts.ComposeAudio && !s.Idle() {
		k = effect.WithAudio(k)
	}
	return pass{
		kernel: k,
		params: effect.Params{
			T:          s.Clock,
			PointScale: s.PointScale,
			Dir:        s.Direction.Normalize(),
			Audio:      bands.Clamp(),
		},
		centroid: f.Centroid(),
		recenter: opts.Recenter,
	}
}

func (p *pass) run(dst, src []splat.Splat) {
	dir := p.params.Dir
	for i := range src {
		b := &src[i]
		a := effect.Attrs{
			Pos:   effect.ToCanonical(b.Center.Sub(p.centroid), dir),
			Scale: effect.ToCanonical(b.Scale.Scale(p.params.PointScale), dir),
			Rot:   b.Rotation,
			Color: b.Color,
		}
		a = effect.Finish(p.kernel(a, p.params))

		pos := effect.FromCanonical(a.Pos, dir)
		if !p.recenter {
			pos = pos.Add(p.centroid)
		}
		dst[i] = splat.Splat{
			Center:   pos,
			Scale:    effect.FromCanonical(a.Scale, dir),
			Rotation: a.Rot,
			Color:    a.Color,
		}
	}
}

// Evaluate writes one frame of f into f.Working(). The result depends only
// on the base splats, s, bands and opts, and is bit-identical for any worker
// count. An empty field is a no-op.
func Evaluate(f *splat.Field, s session.State, bands audio.Bands, opts Options) {
	if f.Empty() {
		return
	}
	opts = opts.withDefaults()
	p := newPass(f, s, bands, opts)

	src, dst := f.BaseSlice(), f.Working()
	n := len(src)

	parts := min(opts.Workers, (n+opts.MinPartition-1)/opts.MinPartition)
	if parts <= 1 {
		p.run(dst, src)
		return
	}

	chunk := (n + parts - 1) / parts
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			p.run(dst[lo:hi], src[lo:hi])
			return nil
		})
	}
	_ = g.Wait()
}
