package effect

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func nearVec3(a, b math.Vec3, eps float32) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

func baseAttrs(pos math.Vec3) Attrs {
	return Attrs{
		Pos:   pos,
		Scale: math.Splat3(0.1),
		Rot:   math.QuatIdentity(),
		Color: math.Vec4{X: 0.8, Y: 0.4, Z: 0.2, W: 1},
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"magic", ModeMagic, true},
		{"  Twister ", ModeTwister, true},
		{"RAIN", ModeRain, true},
		{"none", ModeNone, true},
		{"wobble", ModeNone, false},
		{"", ModeNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModeStringUnknown(t *testing.T) {
	if got := Mode(42).String(); got != "None" {
		t.Errorf("Mode(42).String() = %q, want None", got)
	}
	if Lookup(Mode(-3)) == nil {
		t.Error("Lookup of unknown mode returned nil")
	}
}

func TestObjectTransform(t *testing.T) {
	if s, flip := ObjectTransform(ModeUnroll); s != 1.5 || !flip {
		t.Errorf("Unroll transform = %v, %v", s, flip)
	}
	if s, flip := ObjectTransform(ModeRain); s != 0.8 || !flip {
		t.Errorf("Rain transform = %v, %v", s, flip)
	}
	if s, flip := ObjectTransform(ModeSpread); s != 1 || flip {
		t.Errorf("Spread transform = %v, %v", s, flip)
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection("x"); d != DirX || !ok {
		t.Errorf("ParseDirection(x) = %v, %v", d, ok)
	}
	if d, ok := ParseDirection("w"); d != DirY || ok {
		t.Errorf("ParseDirection(w) = %v, %v", d, ok)
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	v := math.Vec3{X: 1.25, Y: -3.5, Z: 7}
	for _, d := range []Direction{DirX, DirY, DirZ, Direction(9)} {
		if got := FromCanonical(ToCanonical(v, d), d); got != v {
			t.Errorf("round trip for %v = %v, want %v", d, got, v)
		}
	}

	if got := ToCanonical(v, DirX); got != (math.Vec3{X: -3.5, Y: 1.25, Z: 7}) {
		t.Errorf("ToCanonical X = %v", got)
	}
	if got := ToCanonical(v, DirZ); got != (math.Vec3{X: 1.25, Y: 7, Z: -3.5}) {
		t.Errorf("ToCanonical Z = %v", got)
	}
}

func TestHash3Deterministic(t *testing.T) {
	for x := float32(-3); x <= 3; x += 0.37 {
		for y := float32(-3); y <= 3; y += 0.53 {
			p := math.Vec3{X: x, Y: y, Z: x * y}
			a, b := Hash3(p), Hash3(p)
			if a != b {
				t.Fatalf("Hash3(%v) not deterministic: %v vs %v", p, a, b)
			}
			for _, c := range []float32{a.X, a.Y, a.Z} {
				if c < 0 || c > 1 {
					t.Fatalf("Hash3(%v) = %v out of range", p, a)
				}
			}
		}
	}
}

func TestNoise3MatchesHashAtLattice(t *testing.T) {
	p := math.Vec3{X: 2, Y: -1, Z: 5}
	if got, want := Noise3(p), Hash3(p); !nearVec3(got, want, 1e-6) {
		t.Errorf("Noise3 at lattice point = %v, want %v", got, want)
	}
}

func TestNoise3Deterministic(t *testing.T) {
	points := []math.Vec3{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 1.37, Y: -2.91, Z: 0.08},
		{X: -0.001, Y: 3.999, Z: -7.25},
		{X: 12.3456, Y: 0.7071, Z: -0.3333},
		{X: 2.25, Y: 4.75, Z: 10.5},
		{X: -5.5, Y: -5.5, Z: 5.5},
	}
	sweep := func() []math.Vec3 {
		out := make([]math.Vec3, 0, len(points)*4)
		for _, p := range points {
			for step := range 4 {
				// same offset Magic applies as the clock advances
				out = append(out, Noise3(p.Scale(2).Add(math.Splat3(float32(step)*0.5))))
			}
		}
		return out
	}

	first, second := sweep(), sweep()
	for i := range first {
		a, b := first[i], second[i]
		if gomath.Float32bits(a.X) != gomath.Float32bits(b.X) ||
			gomath.Float32bits(a.Y) != gomath.Float32bits(b.Y) ||
			gomath.Float32bits(a.Z) != gomath.Float32bits(b.Z) {
			t.Errorf("sample %d: Noise3 changed between sweeps: %v vs %v", i, a, b)
		}
		for _, c := range []float32{a.X, a.Y, a.Z} {
			if c < 0 || c > 1 {
				t.Errorf("sample %d: Noise3 = %v out of [0,1]", i, a)
			}
		}
	}
}

func TestMagicHiddenAtStart(t *testing.T) {
	a := Magic(baseAttrs(math.Vec3{X: 5}), Params{T: 0, PointScale: 1})
	if a.Color.W > 1e-6 {
		t.Errorf("alpha at t=0 = %v, want ~0", a.Color.W)
	}
	if !nearVec3(a.Scale, math.Splat3(hiddenScale), 1e-6) {
		t.Errorf("scale at t=0 = %v, want collapsed", a.Scale)
	}
}

func TestMagicSettles(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 0.6, Y: 0.3, Z: 0.8})
	a := Magic(in, Params{T: 100, PointScale: 1})
	if !nearVec3(a.Pos, in.Pos, 1e-5) {
		t.Errorf("pos = %v, want %v", a.Pos, in.Pos)
	}
	if !nearVec3(a.Scale, in.Scale, 1e-6) {
		t.Errorf("scale = %v, want %v", a.Scale, in.Scale)
	}
	if !near(a.Color.W, 1, 1e-5) || !near(a.Color.X, 0.8, 1e-5) {
		t.Errorf("color = %v, want %v", a.Color, in.Color)
	}
}

func TestSpreadProgression(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 1, Z: 0})

	start := Spread(in, Params{T: 0, PointScale: 1})
	if start.Scale != (math.Vec3{}) {
		t.Errorf("scale at t=0 = %v, want 0", start.Scale)
	}
	if !near(start.Pos.X, 0.325, 1e-6) {
		t.Errorf("contracted x at t=0 = %v, want 0.325", start.Pos.X)
	}
	if start.Color != math.Splat4(0.3) {
		t.Errorf("color at t=0 = %v, want flat gray", start.Color)
	}

	end := Spread(in, Params{T: 20, PointScale: 1})
	if !nearVec3(end.Scale, in.Scale, 1e-6) {
		t.Errorf("scale at t=20 = %v, want %v", end.Scale, in.Scale)
	}
	if end.Pos != in.Pos {
		t.Errorf("pos at t=20 = %v, want %v", end.Pos, in.Pos)
	}
	if !near(end.Color.X, in.Color.X, 1e-6) || !near(end.Color.W, in.Color.W, 1e-6) {
		t.Errorf("color at t=20 = %v, want %v", end.Color, in.Color)
	}
}

func TestSpreadScaleNonNegative(t *testing.T) {
	for _, r := range []float32{0, 0.5, 2, 10} {
		for ts := float32(0); ts < 8; ts += 0.25 {
			a := Spread(baseAttrs(math.Vec3{X: r}), Params{T: ts, PointScale: 1})
			if a.Scale.X < 0 {
				t.Fatalf("negative scale %v at r=%v t=%v", a.Scale.X, r, ts)
			}
		}
	}
}

func TestUnrollInvisibleAtStart(t *testing.T) {
	a := Unroll(baseAttrs(math.Vec3{X: 1, Y: 0.2}), Params{T: 0, PointScale: 1})
	if a.Color.W != 0 {
		t.Errorf("alpha at t=0 = %v, want 0", a.Color.W)
	}
	if !near(a.Pos.Y, -0.2, 1e-6) {
		t.Errorf("y at t=0 = %v, want inverted -0.2", a.Pos.Y)
	}
}

func TestUnrollSettles(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 1, Y: 0.2, Z: -0.5})
	a := Unroll(in, Params{T: 30, PointScale: 1})
	if !nearVec3(a.Pos, in.Pos, 1e-4) {
		t.Errorf("pos = %v, want %v", a.Pos, in.Pos)
	}
	if a.Color != in.Color {
		t.Errorf("color = %v, want %v", a.Color, in.Color)
	}
}

func TestTwisterSettles(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 0.4, Y: 0.1, Z: 0.3})
	a := Finish(Twister(in, Params{T: 100, PointScale: 1}))
	if !nearVec3(a.Pos, in.Pos, 1e-5) {
		t.Errorf("pos = %v, want %v", a.Pos, in.Pos)
	}
	if !nearVec3(a.Scale, in.Scale, 1e-6) {
		t.Errorf("scale = %v, want %v", a.Scale, in.Scale)
	}
	if !near(a.Rot.W, 1, 1e-5) {
		t.Errorf("rot = %v, want identity", a.Rot)
	}
}

func TestTwisterSinksSmallSplats(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 3, Y: 0.5})
	in.Scale = math.Splat3(0.01)
	a := Twister(in, Params{T: 0, PointScale: 1})
	if a.Pos.Y != twisterSink {
		t.Errorf("y = %v, want %v", a.Pos.Y, twisterSink)
	}
}

func TestRainFallsThenLands(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 1, Y: 0.5})

	start := Rain(in, Params{T: 0, PointScale: 1})
	if start.Pos.Y != rainFloor {
		t.Errorf("y at t=0 = %v, want %v", start.Pos.Y, rainFloor)
	}
	if start.Color.W != 0 {
		t.Errorf("alpha at t=0 = %v, want 0", start.Color.W)
	}

	end := Rain(in, Params{T: 100, PointScale: 1})
	if end.Pos.Y != in.Pos.Y {
		t.Errorf("y at t=100 = %v, want %v", end.Pos.Y, in.Pos.Y)
	}
	if end.Color.W != 1 {
		t.Errorf("alpha at t=100 = %v, want 1", end.Color.W)
	}
	if !near(end.Pos.XZ().Length(), 1, 1e-5) {
		t.Errorf("radius at t=100 = %v, want 1", end.Pos.XZ().Length())
	}
}

func TestKernelsKeepUnitRotation(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 0.3, Y: -0.2, Z: 0.7})
	in.Rot = math.QuatFromAxisAngle(math.Vec3{X: 1}, 0.7)
	for _, m := range Modes() {
		for _, d := range []Direction{DirX, DirY, DirZ} {
			for ts := float32(0); ts < 12; ts += 1.5 {
				a := Finish(Lookup(m)(in, Params{T: ts, PointScale: 1, Dir: d}))
				if !near(a.Rot.Length(), 1, 1e-5) {
					t.Fatalf("%v/%v t=%v: |rot| = %v", m, d, ts, a.Rot.Length())
				}
				if a.Scale.X < 0 || a.Scale.Y < 0 || a.Scale.Z < 0 {
					t.Fatalf("%v/%v t=%v: negative scale %v", m, d, ts, a.Scale)
				}
			}
		}
	}
}

func TestAudioOnly(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 1, Y: 0, Z: 0})

	if got := AudioOnly(in, Params{}); got != in {
		t.Errorf("silent AudioOnly changed attrs: %v", got)
	}

	a := AudioOnly(in, Params{Audio: audio.Bands{Mid: 0.5}})
	if a.Pos.X <= in.Pos.X {
		t.Errorf("mid band should push outward, x = %v", a.Pos.X)
	}

	b := AudioOnly(in, Params{Audio: audio.Bands{Bass: 0.5}})
	want := math.Sin(3-5) * 0.5 * 0.3
	if !near(b.Pos.Y, want, 1e-6) {
		t.Errorf("bass wave y = %v, want %v", b.Pos.Y, want)
	}
}

func TestWithAudioComposes(t *testing.T) {
	in := baseAttrs(math.Vec3{X: 1, Z: 0})
	p := Params{T: 20, PointScale: 1, Audio: audio.Bands{Mid: 1}}
	plain := Spread(in, p)
	composed := WithAudio(Spread)(in, p)
	if composed.Pos.X <= plain.Pos.X {
		t.Errorf("composed x = %v, want > %v", composed.Pos.X, plain.Pos.X)
	}
}
