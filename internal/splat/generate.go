package splat

import (
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/splatfx/pkg/math"
)

// Perlin parameters for relief and color variation.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// GenOptions controls the procedural field builders.
type GenOptions struct {
	Seed   int64
	Extent float32 // splat scale; 0 picks a size from the point spacing
	Relief float32 // Perlin displacement amplitude
}

// DefaultGenOptions returns the options used by the viewer's demo fields.
func DefaultGenOptions() GenOptions {
	return GenOptions{Seed: 1, Relief: 0.15}
}

// Sphere builds n splats on a Fibonacci sphere of the given radius, with the
// radius displaced by Perlin noise and colors drawn from a noise-driven hue.
func Sphere(n int, radius float32, opts GenOptions) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sphere with %d points: %w", n, ErrEmptyField)
	}
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, opts.Seed)
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0x5eed))

	extent := opts.Extent
	if extent <= 0 {
		// mean spacing on the sphere surface
		extent = radius * float32(gomath.Sqrt(4*gomath.Pi/float64(n))) * 0.5
	}

	golden := gomath.Pi * (3 - gomath.Sqrt(5))
	splats := make([]Splat, n)
	for i := range splats {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := gomath.Sqrt(1 - y*y)
		theta := golden * float64(i)
		dir := math.Vec3{
			X: float32(gomath.Cos(theta) * r),
			Y: float32(y),
			Z: float32(gomath.Sin(theta) * r),
		}
		nv := noise.Noise3D(float64(dir.X)*2, float64(dir.Y)*2, float64(dir.Z)*2)
		rr := radius * (1 + opts.Relief*float32(nv))

		splats[i] = Splat{
			Center:   dir.Scale(rr),
			Scale:    math.Splat3(extent),
			Rotation: randomRotation(rng),
			Color:    hsv(float32(0.55+0.5*nv), 0.65, 0.95),
		}
	}
	return NewField(splats), nil
}

// Plane builds a w×h grid in the XY plane spanning [-1,1] on its longer side,
// displaced along Z by Perlin relief.
func Plane(w, h int, opts GenOptions) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("plane %dx%d: %w", w, h, ErrEmptyField)
	}
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, opts.Seed)

	spacing := 2 / float32(max(w, h))
	extent := opts.Extent
	if extent <= 0 {
		extent = spacing * 0.6
	}

	splats := make([]Splat, 0, w*h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x := (float32(px) - float32(w-1)/2) * spacing
			y := (float32(h-1)/2 - float32(py)) * spacing
			nv := float32(noise.Noise2D(float64(x)*1.5, float64(y)*1.5))
			splats = append(splats, Splat{
				Center:   math.Vec3{X: x, Y: y, Z: opts.Relief * nv},
				Scale:    math.Vec3{X: extent, Y: extent, Z: extent * 0.3},
				Rotation: math.QuatIdentity(),
				Color:    hsv(0.6+0.3*nv, 0.5, 0.6+0.4*(y*0.5+0.5)),
			})
		}
	}
	return NewField(splats), nil
}

// randomRotation draws a uniformly distributed unit quaternion (Shoemake).
func randomRotation(rng *rand.Rand) math.Quat {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := gomath.Sqrt(1-u1), gomath.Sqrt(u1)
	return math.Quat{
		X: float32(a * gomath.Sin(2*gomath.Pi*u2)),
		Y: float32(a * gomath.Cos(2*gomath.Pi*u2)),
		Z: float32(b * gomath.Sin(2*gomath.Pi*u3)),
		W: float32(b * gomath.Cos(2*gomath.Pi*u3)),
	}.Normalize()
}

// hsv converts hue/saturation/value in [0,1] to an opaque RGBA color.
func hsv(h, s, v float32) math.Vec4 {
	h = math.Fract(h) * 6
	i := int(h)
	f := h - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i {
	case 0:
		return math.Vec4{X: v, Y: t, Z: p, W: 1}
	case 1:
		return math.Vec4{X: q, Y: v, Z: p, W: 1}
	case 2:
		return math.Vec4{X: p, Y: v, Z: t, W: 1}
	case 3:
		return math.Vec4{X: p, Y: q, Z: v, W: 1}
	case 4:
		return math.Vec4{X: t, Y: p, Z: v, W: 1}
	default:
		return math.Vec4{X: v, Y: p, Z: q, W: 1}
	}
}
