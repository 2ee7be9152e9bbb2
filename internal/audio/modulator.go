// Package audio turns band energies into the smoothed values the effect
// kernels consume, and provides the playback and analysis front end that
// produces those energies from a music file.
package audio

import (
	gomath "math"
	"strings"
)

const (
	// DecayFactor is applied to every channel per update without a sample.
	DecayFactor float32 = 0.92
	// SilenceThreshold is the level all channels must decay below before the
	// state snaps to exactly 0.
	SilenceThreshold float32 = 0.001
)

// Bands holds normalized band energies in [0, 1].
type Bands struct {
	Bass, Mid, High float32
}

// Clamp returns b with every channel limited to [0, 1]; NaN becomes 0.
func (b Bands) Clamp() Bands {
	return Bands{Bass: clamp01(b.Bass), Mid: clamp01(b.Mid), High: clamp01(b.High)}
}

// Silent reports whether all channels are exactly zero.
func (b Bands) Silent() bool {
	return b.Bass == 0 && b.Mid == 0 && b.High == 0
}

func clamp01(v float32) float32 {
	if v >= 0 && v <= 1 {
		return v
	}
	if v > 1 {
		return 1
	}
	return 0
}

// Modulator smooths band samples between frames. The zero value is silent
// and ready to use.
type Modulator struct {
	state Bands
}

// Update advances the modulator by one evaluation step. A non-nil sample
// replaces the state after clamping; a nil sample decays every channel
// geometrically until all three are below SilenceThreshold, at which point
// the state becomes exactly zero. Decay is per call; dt is currently unused.
func (m *Modulator) Update(sample *Bands, dt float32) Bands {
	if sample != nil {
		m.state = sample.Clamp()
		return m.state
	}
	if !m.state.Silent() {
		m.state = decay(m.state)
	}
	return m.state
}

// Reset silences the modulator immediately.
func (m *Modulator) Reset() {
	m.state = Bands{}
}

func decay(b Bands) Bands {
	b = Bands{
		Bass: b.Bass * DecayFactor,
		Mid:  b.Mid * DecayFactor,
		High: b.High * DecayFactor,
	}
	if b.Bass < SilenceThreshold && b.Mid < SilenceThreshold && b.High < SilenceThreshold {
		return Bands{}
	}
	return b
}

// Visualization selects how band energy scales the whole cloud.
type Visualization int

const (
	VisNone Visualization = iota
	VisPulse
	VisWave
	VisExplode
)

var visualizationNames = [...]string{"none", "pulse", "wave", "explode"}

func (v Visualization) String() string {
	if v < 0 || int(v) >= len(visualizationNames) {
		return "none"
	}
	return visualizationNames[v]
}

// ParseVisualization maps a name to a Visualization. Unknown names yield
// VisNone and ok=false.
func ParseVisualization(s string) (Visualization, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range visualizationNames {
		if s == name {
			return Visualization(i), true
		}
	}
	return VisNone, false
}

// Next cycles to the following visualization.
func (v Visualization) Next() Visualization {
	return Visualization((int(v) + 1) % len(visualizationNames))
}

// ScaleFactor returns the global scale multiplier for the given bass level.
func (v Visualization) ScaleFactor(bass float32) float32 {
	bass = clamp01(bass)
	switch v {
	case VisPulse:
		return 1 + bass*1.2
	case VisExplode:
		return 1 + bass*1.0
	default:
		return 1
	}
}

// finite reports whether f is neither NaN nor infinite.
func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
