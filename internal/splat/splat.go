// Package splat holds the splat field: the immutable base attributes of a
// point cloud, its centroid, and the per-frame working buffer the effect
// evaluator writes into.
package splat

import (
	"errors"

	"github.com/Faultbox/splatfx/pkg/math"
)

// ErrEmptyField is returned by builders asked to produce zero splats.
var ErrEmptyField = errors.New("splat: empty field")

// Splat is one oriented, colored, anisotropic point primitive.
type Splat struct {
	Center   math.Vec3
	Scale    math.Vec3 // per-axis extent, non-negative
	Rotation math.Quat // unit length
	Color    math.Vec4 // RGBA, may exceed 1 transiently for additive glow
}

// Field is an ordered set of splats loaded from one artifact.
// Base attributes and the centroid never change after NewField returns;
// only the working buffer is rewritten every frame.
type Field struct {
	base     []Splat
	working  []Splat
	centroid math.Vec3
}

// NewField copies splats into a new field and computes its centroid.
// Rotations are renormalized and negative scales are clamped to zero.
func NewField(splats []Splat) *Field {
	f := &Field{
		base:    make([]Splat, len(splats)),
		working: make([]Splat, len(splats)),
	}

	var sx, sy, sz float64
	for i, s := range splats {
		s.Rotation = s.Rotation.Normalize()
		s.Scale = s.Scale.Max(math.Vec3{})
		f.base[i] = s
		sx += float64(s.Center.X)
		sy += float64(s.Center.Y)
		sz += float64(s.Center.Z)
	}
	if n := float64(len(splats)); n > 0 {
		f.centroid = math.Vec3{X: float32(sx / n), Y: float32(sy / n), Z: float32(sz / n)}
	}
	copy(f.working, f.base)
	return f
}

// Len returns the number of splats. A nil field has length 0.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.base)
}

// Empty reports whether the field is nil or has no splats.
func (f *Field) Empty() bool {
	return f.Len() == 0
}

// Centroid returns the arithmetic mean of the base centers.
func (f *Field) Centroid() math.Vec3 {
	return f.centroid
}

// Base returns the i-th base splat.
func (f *Field) Base(i int) Splat {
	return f.base[i]
}

// BaseSlice exposes the base attributes read-only by convention.
// Callers must not modify the returned slice.
func (f *Field) BaseSlice() []Splat {
	return f.base
}

// Working returns the working buffer. Its contents are valid until the next
// evaluation pass over this field.
func (f *Field) Working() []Splat {
	return f.working
}

// Bounds returns the axis-aligned bounds of the base centers.
func (f *Field) Bounds() (lo, hi math.Vec3) {
	if f.Empty() {
		return
	}
	lo, hi = f.base[0].Center, f.base[0].Center
	for _, s := range f.base[1:] {
		c := s.Center
		lo = math.Vec3{X: min(lo.X, c.X), Y: min(lo.Y, c.Y), Z: min(lo.Z, c.Z)}
		hi = math.Vec3{X: max(hi.X, c.X), Y: max(hi.Y, c.Y), Z: max(hi.Z, c.Z)}
	}
	return lo, hi
}
