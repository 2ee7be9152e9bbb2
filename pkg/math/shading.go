package math

import "math"

// Scalar helpers with the semantics of their GLSL namesakes, so effect code
// reads like the shader math it was tuned against.

// Fract returns x - floor(x).
func Fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 {
	return a + float32((b-a)*t)
}

// MixVec3 linearly interpolates between a and b component-wise.
func MixVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{Mix(a.X, b.X, t), Mix(a.Y, b.Y, t), Mix(a.Z, b.Z, t)}
}

// Clamp limits x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float32) float32 {
	if x >= lo && x <= hi {
		return x
	}
	if x > hi {
		return hi
	}
	return lo
}

// Step returns 0 when x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Smoothstep performs Hermite interpolation between edge0 and edge1.
// Degenerate or inverted edges fall back to Step(edge1, x).
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		return Step(edge1, x)
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Exp returns e**x.
func Exp(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// Pow returns x**y. Negative bases are clamped to 0.
func Pow(x, y float32) float32 {
	if x <= 0 {
		if y == 0 {
			return 1
		}
		return 0
	}
	return float32(math.Pow(float64(x), float64(y)))
}

// Sin returns the sine of x radians.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Atan2 returns the arc tangent of y/x.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Abs returns |x|.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
