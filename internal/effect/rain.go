package effect

import "github.com/Faultbox/splatfx/pkg/math"

// rainFloor is the canonical height splats fall from.
const rainFloor = -10

// Rain drops splats into place along the canonical axis. A hash-shaped front
// sweeps outward from the axis; each splat's height is capped by a ceiling
// that rises from rainFloor as the front passes, its cross-plane position
// expands from a contracted column, and the whole column rotates slowly.
// Size and alpha grow with how far the splat has come back up to its own
// height, so splats fade in as they land.
func Rain(a Attrs, p Params) Attrs {
	t := p.T
	pos := a.Pos
	h := Hash3(pos)

	r := pos.XZ().Length()
	s := math.Pow(math.Smoothstep(0, 5, t*t*0.1-r*2+1), 0.5+h.X)

	home := pos.Y
	pos.Y = min(rainFloor+s*15, pos.Y)
	xz := pos.XZ().Scale(0.3).Mix(pos.XZ(), s)
	pos = pos.WithXZ(xz.Rotate(t * 0.3))
	a.Pos = pos

	landed := math.Smoothstep(rainFloor, home, pos.Y)
	a.Scale = math.MixVec3(hidden(p, rainHiddenScale), a.Scale, math.Pow(landed, 30))
	a.Color.W *= landed
	a.Rot = spin(a.Rot, -t*0.3, p.Dir)
	return a
}
