// Package effect implements the per-splat procedural effect kernels, the axis
// canonicalization that lets one kernel serve every effect direction, and the
// stateless spatial hash the kernels use for per-point jitter.
package effect

import "strings"

// Mode selects the effect kernel applied to every splat.
type Mode int

const (
	ModeNone Mode = iota
	ModeMagic
	ModeSpread
	ModeUnroll
	ModeTwister
	ModeRain
)

var modeNames = [...]string{"None", "Magic", "Spread", "Unroll", "Twister", "Rain"}

// Modes lists every mode in selection order.
func Modes() []Mode {
	return []Mode{ModeNone, ModeMagic, ModeSpread, ModeUnroll, ModeTwister, ModeRain}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeNone && int(m) < len(modeNames)
}

// Normalize maps unknown modes to ModeNone.
func (m Mode) Normalize() Mode {
	if !m.Valid() {
		return ModeNone
	}
	return m
}

func (m Mode) String() string {
	return modeNames[m.Normalize()]
}

// Directional reports whether the mode runs entirely in canonical space and
// spins splats about the configured axis.
func (m Mode) Directional() bool {
	return m == ModeUnroll || m == ModeTwister || m == ModeRain
}

// ParseMode maps a case-insensitive name to a Mode. Unknown names yield
// ModeNone and ok=false.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), true
		}
	}
	return ModeNone, false
}

// ObjectTransform returns the object-level scale multiplier and whether the
// whole cloud is flipped half a turn about X while the mode is active.
func ObjectTransform(m Mode) (scale float32, flipX bool) {
	switch m.Normalize() {
	case ModeTwister, ModeRain:
		return 0.8, true
	case ModeUnroll:
		return 1.5, true
	default:
		return 1, false
	}
}
