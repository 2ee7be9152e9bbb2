package effect

import (
	"strings"

	"github.com/Faultbox/splatfx/pkg/math"
)

// Direction is the world axis an effect animates along. Kernels are written
// for Y; ToCanonical and FromCanonical remap the other axes onto it.
type Direction int

const (
	DirY Direction = iota
	DirX
	DirZ
)

func (d Direction) String() string {
	switch d {
	case DirX:
		return "X"
	case DirZ:
		return "Z"
	default:
		return "Y"
	}
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirX || d == DirY || d == DirZ
}

// Normalize maps unknown directions to DirY.
func (d Direction) Normalize() Direction {
	if !d.Valid() {
		return DirY
	}
	return d
}

// ParseDirection maps "X", "Y" or "Z" (any case) to a Direction. Unknown
// input yields DirY and ok=false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return DirX, true
	case "Y":
		return DirY, true
	case "Z":
		return DirZ, true
	default:
		return DirY, false
	}
}

// ToCanonical remaps v so the configured axis becomes Y.
// X swaps x and y, Z swaps y and z, anything else is the identity.
func ToCanonical(v math.Vec3, d Direction) math.Vec3 {
	switch d {
	case DirX:
		return math.Vec3{X: v.Y, Y: v.X, Z: v.Z}
	case DirZ:
		return math.Vec3{X: v.X, Y: v.Z, Z: v.Y}
	default:
		return v
	}
}

// FromCanonical undoes ToCanonical. Each swap is its own inverse.
func FromCanonical(v math.Vec3, d Direction) math.Vec3 {
	return ToCanonical(v, d)
}

// SpinAxis returns the world axis kernels spin splats about.
func SpinAxis(d Direction) math.Vec3 {
	switch d {
	case DirX:
		return math.Vec3{X: 1}
	case DirZ:
		return math.Vec3{Z: 1}
	default:
		return math.Vec3{Y: 1}
	}
}
