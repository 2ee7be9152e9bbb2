package effect

import (
	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/pkg/math"
)

// explodeEpsilon keeps the explode direction defined for a splat sitting on
// the centroid.
const explodeEpsilon = 0.001

// AudioOnly is the kernel for ModeNone: no time-based animation, only the
// bass wave and mid-band explosion displacements.
func AudioOnly(a Attrs, p Params) Attrs {
	a.Pos = audioDisplace(a.Pos, p.Audio)
	return a
}

// audioDisplace ripples pos along the canonical axis with the bass level and
// pushes it away from the centroid with the mid level.
func audioDisplace(pos math.Vec3, b audio.Bands) math.Vec3 {
	b = b.Clamp()
	if b.Bass > 0.01 {
		r := pos.XZ().Length()
		pos.Y += math.Sin(r*3-b.Bass*10) * b.Bass * 0.3
	}
	if b.Mid > 0 {
		dir := pos.Add(math.Splat3(explodeEpsilon)).Normalize()
		pos = pos.Add(dir.Scale(b.Mid * 2))
	}
	return pos
}
