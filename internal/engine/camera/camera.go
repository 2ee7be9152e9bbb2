// Package camera provides the orbit camera used to inspect the splat cloud.
package camera

import (
	gomath "math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/Faultbox/splatfx/pkg/math"
)

// View is a preset camera orientation.
type View int

const (
	ViewFront View = iota
	ViewLeft
	ViewRight
	ViewTop
)

var viewNames = [...]string{"front", "left", "right", "top"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "front"
	}
	return viewNames[v]
}

// ParseView maps a preset name to a View. Unknown names yield ViewFront and
// ok=false.
func ParseView(s string) (View, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range viewNames {
		if s == name {
			return View(i), true
		}
	}
	return ViewFront, false
}

// Spring tuning for camera motion: critically damped, settling in roughly
// half a second.
const (
	springFrequency = 6.0
	springDamping   = 1.0
)

// OrbitCamera orbits around a target point. Input changes the goal
// orientation; Update eases the rendered orientation toward it.
type OrbitCamera struct {
	Target math.Vec3

	// Goal spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians about +Y, 0 looks down -Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	spring harmonica.Spring
	cur    [3]float64 // distance, pitch, yaw
	vel    [3]float64
}

// NewOrbitCamera creates a camera whose easing is stepped fps times per
// second.
func NewOrbitCamera(fps int) *OrbitCamera {
	if fps <= 0 {
		fps = 60
	}
	c := &OrbitCamera{
		Distance:        4,
		MinDistance:     1,
		MaxDistance:     50,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		spring:          harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
	c.Snap()
	return c
}

// Update advances the easing by one step.
func (c *OrbitCamera) Update() {
	goal := c.goal()
	for i := range c.cur {
		c.cur[i], c.vel[i] = c.spring.Update(c.cur[i], c.vel[i], goal[i])
	}
}

// Snap jumps the rendered orientation to the goal.
func (c *OrbitCamera) Snap() {
	c.cur = c.goal()
	c.vel = [3]float64{}
}

func (c *OrbitCamera) goal() [3]float64 {
	return [3]float64{float64(c.Distance), float64(c.Pitch), float64(c.Yaw)}
}

// Position returns the rendered camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	dist, pitch, yaw := c.cur[0], c.cur[1], c.cur[2]
	return c.Target.Add(math.Vec3{
		X: float32(dist * gomath.Cos(pitch) * gomath.Sin(yaw)),
		Y: float32(dist * gomath.Sin(pitch)),
		Z: float32(dist * gomath.Cos(pitch) * gomath.Cos(yaw)),
	})
}

// ViewMatrix returns the view matrix for the rendered orientation.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// HandleDrag updates the goal orientation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates the goal distance from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// SetView moves the goal to a preset orientation, keeping the distance.
// The yaw takes the short way round from the current goal.
func (c *OrbitCamera) SetView(v View) {
	var yaw, pitch float32
	switch v {
	case ViewLeft:
		yaw = -gomath.Pi / 2
	case ViewRight:
		yaw = gomath.Pi / 2
	case ViewTop:
		pitch = c.MaxPitch
	}
	turns := float32(gomath.Round(float64(c.Yaw-yaw) / (2 * gomath.Pi)))
	c.Yaw = yaw + turns*2*gomath.Pi
	c.Pitch = pitch
}

// FitRadius sets the goal distance so a sphere of the given radius fills
// the view.
func (c *OrbitCamera) FitRadius(radius float32) {
	if !(radius > 0) {
		return
	}
	c.Distance = clamp(radius*2.5, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
