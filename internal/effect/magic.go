package effect

import (
	gomath "math"

	"github.com/Faultbox/splatfx/pkg/math"
)

// Magic timing. The reveal front starts moving after magicDelay seconds and
// stops at magicMaxRadius; the angular sweep trails the clock by sweepLag.
const (
	magicDelay     = 4.5
	magicMaxRadius = 10.0
	sweepLag       = 2.1416
)

// Magic reveals the cloud with an expanding circular front in the canonical
// cross plane combined with an angular sweep. Splats ahead of the front are
// collapsed and jittered; splats at the front snap inward and glow.
func Magic(a Attrs, p Params) Attrs {
	t := p.T
	front := math.Smoothstep(0, magicMaxRadius, t-magicDelay) * magicMaxRadius

	r := a.Pos.XZ().Length()
	border := math.Abs(front - r - 0.5)
	snap := math.Exp(-20 * border)
	pos := a.Pos.Scale(1 - 0.2*snap)

	ahead := math.Smoothstep(front-0.5, front, r+0.5)
	a.Scale = math.MixVec3(a.Scale, hidden(p, hiddenScale), ahead)

	// jitter is sampled in world space so it does not depend on the direction
	world := FromCanonical(pos, p.Dir)
	n := Noise3(world.Scale(2).Add(math.Splat3(t * 0.5)))
	a.Pos = pos.Add(ToCanonical(n, p.Dir).Scale(0.1 * ahead))

	angle := math.Atan2(pos.X, pos.Z)/gomath.Pi + 1
	glow := snap + 0.5*math.Exp(-50*math.Abs(t-angle-sweepLag))
	a.Color = a.Color.Scale(math.Step(angle, t-sweepLag)).AddScalar(glow)
	return a
}
