package math

// Vec4 is a 4-component vector. Splat colors use it as RGBA.
type Vec4 struct {
	X, Y, Z, W float32
}

// Splat4 returns a vector with all components set to s.
func Splat4(s float32) Vec4 {
	return Vec4{s, s, s, s}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// AddScalar adds s to every component.
func (v Vec4) AddScalar(s float32) Vec4 {
	return Vec4{v.X + s, v.Y + s, v.Z + s, v.W + s}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Mix linearly interpolates between v and other.
func (v Vec4) Mix(other Vec4, t float32) Vec4 {
	return Vec4{
		Mix(v.X, other.X, t),
		Mix(v.Y, other.Y, t),
		Mix(v.Z, other.Z, t),
		Mix(v.W, other.W, t),
	}
}

// Clamp01 clamps every component to [0, 1].
func (v Vec4) Clamp01() Vec4 {
	return Vec4{Clamp(v.X, 0, 1), Clamp(v.Y, 0, 1), Clamp(v.Z, 0, 1), Clamp(v.W, 0, 1)}
}
