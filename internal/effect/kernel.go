package effect

import (
	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/pkg/math"
)

// Attrs are one splat's attributes in canonical space. Pos is relative to the
// field centroid and Scale already includes the point scale factor.
// Rot and Color are not direction-dependent and stay in world terms.
type Attrs struct {
	Pos   math.Vec3
	Scale math.Vec3
	Rot   math.Quat
	Color math.Vec4
}

// Params is the per-frame input shared by every splat.
type Params struct {
	T          float32 // effect clock, seconds since the last reset
	PointScale float32
	Dir        Direction
	Audio      audio.Bands
}

// Kernel transforms one splat. Kernels are pure: the result depends only on
// the arguments, so any partitioning of the field gives identical output.
type Kernel func(a Attrs, p Params) Attrs

// Size of a collapsed splat, relative to the point scale. Collapsed splats
// stay tiny rather than zero so they still rasterize as specks.
const (
	hiddenScale     = 0.002
	rainHiddenScale = 0.005
)

var kernels = [...]Kernel{
	ModeNone:    AudioOnly,
	ModeMagic:   Magic,
	ModeSpread:  Spread,
	ModeUnroll:  Unroll,
	ModeTwister: Twister,
	ModeRain:    Rain,
}

// Lookup returns the kernel for m. Unknown modes get the audio-only kernel.
func Lookup(m Mode) Kernel {
	return kernels[m.Normalize()]
}

// WithAudio composes k with the audio displacement applied afterwards.
func WithAudio(k Kernel) Kernel {
	return func(a Attrs, p Params) Attrs {
		a = k(a, p)
		a.Pos = audioDisplace(a.Pos, p.Audio)
		return a
	}
}

// Finish enforces the output invariants every kernel result must satisfy:
// non-negative scale and a unit rotation.
func Finish(a Attrs) Attrs {
	a.Scale = a.Scale.Max(math.Vec3{})
	a.Rot = a.Rot.Normalize()
	return a
}

func hidden(p Params, size float32) math.Vec3 {
	return math.Splat3(size * p.PointScale)
}

// spin composes a rotation of angle radians about the configured axis onto q.
func spin(q math.Quat, angle float32, d Direction) math.Quat {
	return math.QuatFromAxisAngle(SpinAxis(d), angle).Mul(q).Normalize()
}
