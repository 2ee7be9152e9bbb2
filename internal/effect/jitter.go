package effect

import (
	gomath "math"

	"github.com/Faultbox/splatfx/pkg/math"
)

// Products below are wrapped in float32 conversions. Go may otherwise fuse
// x*y+z into one FMA on some architectures, and the hash must produce the
// same bits everywhere.

// Hash3 maps a position to a pseudo-random vector in [0,1)³. It is a pure
// function of p.
func Hash3(p math.Vec3) math.Vec3 {
	x := math.Fract(float32(p.X*0.3183099)+0.1) * 17
	y := math.Fract(float32(p.Y*0.3183099)+0.1) * 17
	z := math.Fract(float32(p.Z*0.3183099)+0.1) * 17
	return math.Vec3{
		X: math.Fract(float32(x*y) * z),
		Y: math.Fract(x + float32(y*z)),
		Z: math.Fract(float32(x*y) + z),
	}
}

// Noise3 is value noise: Hash3 at the eight lattice corners around p,
// blended trilinearly with a 3t²-2t³ ease per axis.
func Noise3(p math.Vec3) math.Vec3 {
	ix, iy, iz := floor(p.X), floor(p.Y), floor(p.Z)
	fx, fy, fz := ease(p.X-ix), ease(p.Y-iy), ease(p.Z-iz)

	corner := func(dx, dy, dz float32) math.Vec3 {
		return Hash3(math.Vec3{X: ix + dx, Y: iy + dy, Z: iz + dz})
	}

	x0 := math.MixVec3(corner(0, 0, 0), corner(1, 0, 0), fx)
	x1 := math.MixVec3(corner(0, 1, 0), corner(1, 1, 0), fx)
	x2 := math.MixVec3(corner(0, 0, 1), corner(1, 0, 1), fx)
	x3 := math.MixVec3(corner(0, 1, 1), corner(1, 1, 1), fx)

	y0 := math.MixVec3(x0, x1, fy)
	y1 := math.MixVec3(x2, x3, fy)

	return math.MixVec3(y0, y1, fz)
}

func floor(x float32) float32 {
	return float32(gomath.Floor(float64(x)))
}

func ease(t float32) float32 {
	return float32(t*t) * (3 - float32(2*t))
}
