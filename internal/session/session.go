// Package session owns the effect session state: the selected mode and
// direction, the animation clock, and the scale and visualization settings.
// State changes only through a Machine, which the frame loop drives.
package session

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
)

// State is an immutable snapshot of the session handed to the evaluator.
type State struct {
	Mode          effect.Mode
	Direction     effect.Direction
	Clock         float32 // seconds since the last reset, never negative
	PointScale    float32
	GlobalScale   float32
	Visualization audio.Visualization

	// Version increases on every command that changed the state. Clock
	// advancement does not bump it.
	Version uint64
}

// Idle reports whether no time-based effect is active.
func (s State) Idle() bool {
	return s.Mode == effect.ModeNone
}

// Initial returns the startup state: idle, direction Y, unit scales.
func Initial() State {
	return State{
		Mode:        effect.ModeNone,
		Direction:   effect.DirY,
		PointScale:  1,
		GlobalScale: 1,
	}
}

// Machine is the single writer of the session state. It is not safe for
// concurrent use; other goroutines submit commands through a Queue.
type Machine struct {
	state State
	clock float64
	log   *zap.Logger
}

// NewMachine creates a machine starting from initial. Mode, direction and
// scales are sanitized; the clock always starts at zero.
func NewMachine(initial State, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Machine{state: Initial(), log: log}
	m.state.Mode = initial.Mode.Normalize()
	m.state.Direction = initial.Direction.Normalize()
	m.state.Visualization = initial.Visualization
	if validScale(initial.PointScale) {
		m.state.PointScale = initial.PointScale
	}
	if validScale(initial.GlobalScale) {
		m.state.GlobalScale = initial.GlobalScale
	}
	return m
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() State {
	s := m.state
	s.Clock = float32(m.clock)
	return s
}

// Idle reports whether the machine is in the idle state.
func (m *Machine) Idle() bool {
	return m.state.Idle()
}

// SetMode selects a mode and direction. Changing either restarts the clock;
// selecting the current pair is a no-op. Unknown values fall back to
// ModeNone and DirY.
func (m *Machine) SetMode(mode effect.Mode, dir effect.Direction) {
	if !mode.Valid() {
		m.log.Warn("unknown mode, falling back to none", zap.Int("mode", int(mode)))
	}
	if !dir.Valid() {
		m.log.Warn("unknown direction, falling back to Y", zap.Int("direction", int(dir)))
	}
	mode, dir = mode.Normalize(), dir.Normalize()
	if mode == m.state.Mode && dir == m.state.Direction {
		return
	}

	m.log.Info("mode changed",
		zap.Stringer("from", m.state.Mode),
		zap.Stringer("to", mode),
		zap.Stringer("direction", dir))

	m.state.Mode = mode
	m.state.Direction = dir
	m.clock = 0
	m.state.Version++
}

// SetDirection changes the direction while keeping the mode.
func (m *Machine) SetDirection(dir effect.Direction) {
	m.SetMode(m.state.Mode, dir)
}

// Reset restarts the current effect from t=0.
func (m *Machine) Reset() {
	m.log.Debug("clock reset", zap.Stringer("mode", m.state.Mode))
	m.clock = 0
	m.state.Version++
}

// Tick advances the clock by dt seconds. It does nothing while idle or for
// a negative or non-finite dt.
func (m *Machine) Tick(dt float32) {
	if m.Idle() || !(dt > 0) || gomath.IsInf(float64(dt), 0) {
		return
	}
	m.clock += float64(dt)
}

// SetPointScale sets the per-splat scale factor. Values that are not
// positive and finite are ignored.
func (m *Machine) SetPointScale(v float32) bool {
	if !validScale(v) {
		m.log.Warn("ignoring invalid point scale", zap.Float32("value", v))
		return false
	}
	if v != m.state.PointScale {
		m.state.PointScale = v
		m.state.Version++
	}
	return true
}

// SetGlobalScale sets the object-level scale. Values that are not positive
// and finite are ignored.
func (m *Machine) SetGlobalScale(v float32) bool {
	if !validScale(v) {
		m.log.Warn("ignoring invalid global scale", zap.Float32("value", v))
		return false
	}
	if v != m.state.GlobalScale {
		m.state.GlobalScale = v
		m.state.Version++
	}
	return true
}

// SetVisualization selects how audio drives the cloud.
func (m *Machine) SetVisualization(v audio.Visualization) {
	if v == m.state.Visualization {
		return
	}
	m.log.Info("visualization changed", zap.Stringer("to", v))
	m.state.Visualization = v
	m.state.Version++
}

func validScale(v float32) bool {
	return v > 0 && !gomath.IsInf(float64(v), 0)
}
