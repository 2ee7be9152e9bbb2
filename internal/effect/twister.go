package effect

import "github.com/Faultbox/splatfx/pkg/math"

// twisterSink is the canonical height small splats are pulled down to before
// they become visible.
const twisterSink = -10

// Twister is a continuous vortex. A per-splat visibility s rises with t² and
// falls with cross-plane radius; below full visibility splats are drawn toward
// the axis, small ones are sunk far down the axis, and the cross plane swirls
// by an angle that grows with time and height. Splats also spin about the
// configured axis until they settle.
func Twister(a Attrs, p Params) Attrs {
	t := p.T
	pos := a.Pos
	h := Hash3(pos)

	r := pos.XZ().Length()
	s := math.Smoothstep(0, 8, t*t*0.1-r*2+2)
	pull := math.Pow(s, 2*h.X)

	if a.Scale.Length() < 0.05 {
		pos.Y = math.Mix(twisterSink, pos.Y, pull)
	}
	xz := pos.XZ().Scale(0.5).Mix(pos.XZ(), pull)
	angle := t*(1-s)*0.2 + pos.Y*20*(1-s)*math.Exp(-xz.Length())
	pos = pos.WithXZ(xz.Rotate(angle))
	a.Pos = pos

	visible := s * s * s * s
	a.Scale = math.MixVec3(hidden(p, hiddenScale), a.Scale, math.Pow(visible, 12))
	a.Rot = spin(a.Rot, -t*0.3*(1-visible), p.Dir)
	return a
}
