package effect

import "github.com/Faultbox/splatfx/pkg/math"

// Unroll curls the cross plane by an angle that depends on the canonical
// height and relaxes as exp(-t), while the whole cloud expands from an
// inverted, compressed state. Splats stay invisible until the unrolling edge
// passes their height.
func Unroll(a Attrs, p Params) Attrs {
	t := p.T
	relax := math.Exp(-t)

	pos := a.Pos
	pos = pos.WithXZ(pos.XZ().Rotate((pos.Y*50 - 20) * relax))
	pos = pos.Scale(1 - relax*2)
	a.Pos = pos

	a.Scale = math.MixVec3(hidden(p, hiddenScale), a.Scale, math.Smoothstep(0.3, 0.7, t+pos.Y-2))
	a.Color = a.Color.Scale(math.Step(0, t*0.5+pos.Y-0.5))
	return a
}
