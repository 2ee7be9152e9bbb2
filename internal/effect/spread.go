package effect

import "github.com/Faultbox/splatfx/pkg/math"

var spreadGray = math.Splat4(0.3)

// Spread blooms the cloud outward from a contracted core. Progress grows
// quadratically with time; each splat appears once progress passes a
// threshold proportional to its cross-plane radius, first as a small seed
// and then at full size, while its color fades in from flat gray.
func Spread(a Attrs, p Params) Attrs {
	t := p.T
	progress := t*t*0.4 + 0.5
	r := a.Pos.XZ().Length()

	contraction := min(1, 0.3+max(0, progress*0.05))
	a.Pos = a.Pos.WithXZ(a.Pos.XZ().Scale(contraction))

	full := math.Clamp(progress-7-r*2.5, 0, 1)
	seed := math.Clamp(progress-1-r*2, 0, 1)
	a.Scale = a.Scale.Scale(full).Max(a.Scale.Scale(0.2 * seed))

	a.Color = spreadGray.Mix(a.Color, math.Clamp(progress-r*2.5-3, 0, 1))
	return a
}
