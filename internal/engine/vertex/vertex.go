// Package vertex packs splats into the interleaved vertex layout the splat
// renderer uploads every frame.
package vertex

import (
	gomath "math"

	"github.com/Faultbox/splatfx/internal/splat"
	"github.com/Faultbox/splatfx/pkg/math"
)

// Layout of one vertex: position xyz, color rgba, size.
const (
	PositionOffset = 0
	ColorOffset    = 3
	SizeOffset     = 7
	Floats         = 8
	Stride         = Floats * 4 // bytes
)

// Pack writes splats into dst, growing it as needed, and returns the packed
// slice. Colors are clamped to [0, 1]; the size is the largest scale
// component. Splats with zero alpha or zero size are skipped, so the
// returned vertex count can be lower than len(splats).
func Pack(dst []float32, splats []splat.Splat) []float32 {
	dst = dst[:0]
	for i := range splats {
		s := &splats[i]
		c := s.Color.Clamp01()
		size := s.Scale.MaxComponent()
		if c.W == 0 || !(size > 0) || !s.Center.IsFinite() {
			continue
		}
		dst = append(dst,
			s.Center.X, s.Center.Y, s.Center.Z,
			c.X, c.Y, c.Z, c.W,
			size,
		)
	}
	return dst
}

// Count returns the number of vertices in a packed slice.
func Count(packed []float32) int {
	return len(packed) / Floats
}

// ModelMatrix builds the object transform for a frame: a uniform scale and
// an optional half turn about X.
func ModelMatrix(scale float32, flipX bool) math.Mat4 {
	m := math.UniformScale(scale)
	if flipX {
		m = m.Mul(math.RotateX(gomath.Pi))
	}
	return m
}
