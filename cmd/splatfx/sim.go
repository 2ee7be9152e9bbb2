package main

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/config"
	"github.com/Faultbox/splatfx/internal/evaluator"
	"github.com/Faultbox/splatfx/internal/splat"
)

// visibleAlpha is the alpha below which the renderer discards a splat.
const visibleAlpha = 0.004

type simOptions struct {
	Frames  int
	FPS     int
	OnFrame func(n int, st stats) // n counts from 1
}

type simResult struct {
	Digest  uint64
	Splats  int
	Frames  uint64  // frames the evaluator ran
	Clock   float32 // session clock after the last frame
	Elapsed time.Duration
}

// stats summarizes one evaluated frame.
type stats struct {
	Clock      float32
	Version    uint64
	Audio      audio.Bands
	ModelScale float32
	Visible    int
	MeanRadius float32 // mean distance of visible splats from the effect origin
}

func (s stats) fields(n int) []zap.Field {
	return []zap.Field{
		zap.Int("frame", n),
		zap.Float32("clock", s.Clock),
		zap.Uint64("version", s.Version),
		zap.Int("visible", s.Visible),
		zap.Float32("mean_radius", s.MeanRadius),
		zap.Float32("model_scale", s.ModelScale),
		zap.Float32("bass", s.Audio.Bass),
		zap.Float32("mid", s.Audio.Mid),
		zap.Float32("high", s.Audio.High),
	}
}

// simulate replays cfg's session for opts.Frames fixed-step frames.
func simulate(cfg *config.Config, opts simOptions, log *zap.Logger) (simResult, error) {
	field, err := cfg.Field.Build()
	if err != nil {
		return simResult{}, fmt.Errorf("build field: %w", err)
	}

	var replay *audio.Replay
	if cfg.Audio.File != "" {
		replay, err = audio.OpenReplay(cfg.Audio.File)
		if err != nil {
			return simResult{}, err
		}
		defer replay.Close()
	}

	eopts := cfg.EvaluatorOptions()
	ev := evaluator.New(cfg.InitialState(), eopts, log)
	ev.LoadField(field)

	dt := 1 / float32(opts.FPS)
	start := time.Now()
	var fr evaluator.Frame
	for n := 1; n <= opts.Frames; n++ {
		var sample *audio.Bands
		if replay != nil {
			sample = replay.Advance(dt)
		}
		fr = ev.Frame(dt, sample)
		if opts.OnFrame != nil {
			opts.OnFrame(n, frameStats(fr, eopts.Recenter))
		}
	}

	return simResult{
		Digest:  digest(fr.Splats),
		Splats:  len(fr.Splats),
		Frames:  ev.Frames(),
		Clock:   ev.State().Clock,
		Elapsed: time.Since(start),
	}, nil
}

func frameStats(fr evaluator.Frame, recentered bool) stats {
	st := stats{
		Clock:      fr.State.Clock,
		Version:    fr.State.Version,
		Audio:      fr.Audio,
		ModelScale: fr.ModelScale,
	}
	var sum float64
	for _, s := range fr.Splats {
		if s.Color.W < visibleAlpha {
			continue
		}
		c := s.Center
		if !recentered {
			c = c.Sub(fr.Centroid)
		}
		sum += float64(c.Length())
		st.Visible++
	}
	if st.Visible > 0 {
		st.MeanRadius = float32(sum / float64(st.Visible))
	}
	return st
}

// digest hashes the bit patterns of every splat attribute in buffer order.
func digest(splats []splat.Splat) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 14*4)
	for _, s := range splats {
		buf = buf[:0]
		for _, v := range [...]float32{
			s.Center.X, s.Center.Y, s.Center.Z,
			s.Scale.X, s.Scale.Y, s.Scale.Z,
			s.Rotation.X, s.Rotation.Y, s.Rotation.Z, s.Rotation.W,
			s.Color.X, s.Color.Y, s.Color.Z, s.Color.W,
		} {
			buf = binary.LittleEndian.AppendUint32(buf, gomath.Float32bits(v))
		}
		h.Write(buf)
	}
	return h.Sum64()
}
