package session

import (
	"sync"

	"github.com/Faultbox/splatfx/internal/audio"
	"github.com/Faultbox/splatfx/internal/effect"
)

// Command is a state change requested from outside the frame loop.
type Command interface {
	Apply(m *Machine)
}

// SetModeCommand selects a mode and direction.
type SetModeCommand struct {
	Mode      effect.Mode
	Direction effect.Direction
}

func (c SetModeCommand) Apply(m *Machine) { m.SetMode(c.Mode, c.Direction) }

// SelectModeCommand selects a mode and keeps the current direction.
type SelectModeCommand struct {
	Mode effect.Mode
}

func (c SelectModeCommand) Apply(m *Machine) { m.SetMode(c.Mode, m.state.Direction) }

// SetDirectionCommand changes the direction.
type SetDirectionCommand struct {
	Direction effect.Direction
}

func (c SetDirectionCommand) Apply(m *Machine) { m.SetDirection(c.Direction) }

// ResetCommand restarts the current effect.
type ResetCommand struct{}

func (ResetCommand) Apply(m *Machine) { m.Reset() }

// SetPointScaleCommand sets the point scale factor.
type SetPointScaleCommand struct {
	Value float32
}

func (c SetPointScaleCommand) Apply(m *Machine) { m.SetPointScale(c.Value) }

// ScalePointScaleCommand multiplies the point scale factor.
type ScalePointScaleCommand struct {
	Factor float32
}

func (c ScalePointScaleCommand) Apply(m *Machine) {
	m.SetPointScale(m.state.PointScale * c.Factor)
}

// SetGlobalScaleCommand sets the object-level scale.
type SetGlobalScaleCommand struct {
	Value float32
}

func (c SetGlobalScaleCommand) Apply(m *Machine) { m.SetGlobalScale(c.Value) }

// ScaleGlobalScaleCommand multiplies the object-level scale.
type ScaleGlobalScaleCommand struct {
	Factor float32
}

func (c ScaleGlobalScaleCommand) Apply(m *Machine) {
	m.SetGlobalScale(m.state.GlobalScale * c.Factor)
}

// SetVisualizationCommand selects an audio visualization.
type SetVisualizationCommand struct {
	Visualization audio.Visualization
}

func (c SetVisualizationCommand) Apply(m *Machine) { m.SetVisualization(c.Visualization) }

// CycleVisualizationCommand advances to the next visualization.
type CycleVisualizationCommand struct{}

func (CycleVisualizationCommand) Apply(m *Machine) {
	m.SetVisualization(m.state.Visualization.Next())
}

// Queue collects commands from any goroutine and hands them to the machine
// in submission order at a frame boundary.
type Queue struct {
	mu      sync.Mutex
	pending []Command
}

// Submit enqueues c. Nil commands are dropped.
func (q *Queue) Submit(c Command) {
	if c == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain applies every pending command to m and returns how many ran.
// Commands submitted while draining wait for the next call.
func (q *Queue) Drain(m *Machine) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, c := range batch {
		c.Apply(m)
	}
	return len(batch)
}
