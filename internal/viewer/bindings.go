package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/splatfx/internal/effect"
	"github.com/Faultbox/splatfx/internal/engine/camera"
	"github.com/Faultbox/splatfx/internal/session"
)

// Scale steps applied per key press.
const (
	pointScaleUp    = 1.25
	pointScaleDown  = 0.8
	globalScaleUp   = 1.1
	globalScaleDown = 1 / globalScaleUp
)

// Action is a host-side effect of a key press that is not a session command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePause
	ActionView
	ActionScreenshot
	ActionSaveConfig
)

// Binding is what a key press resolves to: a session command, a host
// action, or both.
type Binding struct {
	Command session.Command
	Action  Action
	View    camera.View
}

var modeKeys = map[sdl.Scancode]effect.Mode{
	sdl.SCANCODE_0:    effect.ModeNone,
	sdl.SCANCODE_1:    effect.ModeMagic,
	sdl.SCANCODE_2:    effect.ModeSpread,
	sdl.SCANCODE_3:    effect.ModeUnroll,
	sdl.SCANCODE_4:    effect.ModeTwister,
	sdl.SCANCODE_5:    effect.ModeRain,
	sdl.SCANCODE_KP_0: effect.ModeNone,
	sdl.SCANCODE_KP_1: effect.ModeMagic,
	sdl.SCANCODE_KP_2: effect.ModeSpread,
	sdl.SCANCODE_KP_3: effect.ModeUnroll,
	sdl.SCANCODE_KP_4: effect.ModeTwister,
	sdl.SCANCODE_KP_5: effect.ModeRain,
}

var directionKeys = map[sdl.Scancode]effect.Direction{
	sdl.SCANCODE_X: effect.DirX,
	sdl.SCANCODE_Y: effect.DirY,
	sdl.SCANCODE_Z: effect.DirZ,
}

var viewKeys = map[sdl.Scancode]camera.View{
	sdl.SCANCODE_F1: camera.ViewFront,
	sdl.SCANCODE_F2: camera.ViewLeft,
	sdl.SCANCODE_F3: camera.ViewRight,
	sdl.SCANCODE_F4: camera.ViewTop,
}

// Bind resolves a key press. ok is false for unbound keys.
func Bind(key sdl.Scancode) (b Binding, ok bool) {
	if m, found := modeKeys[key]; found {
		return Binding{Command: session.SelectModeCommand{Mode: m}}, true
	}
	if d, found := directionKeys[key]; found {
		return Binding{Command: session.SetDirectionCommand{Direction: d}}, true
	}
	if v, found := viewKeys[key]; found {
		return Binding{Action: ActionView, View: v}, true
	}

	switch key {
	case sdl.SCANCODE_R:
		return Binding{Command: session.ResetCommand{}}, true
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return Binding{Command: session.ScalePointScaleCommand{Factor: pointScaleUp}}, true
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return Binding{Command: session.ScalePointScaleCommand{Factor: pointScaleDown}}, true
	case sdl.SCANCODE_RIGHTBRACKET:
		return Binding{Command: session.ScaleGlobalScaleCommand{Factor: globalScaleUp}}, true
	case sdl.SCANCODE_LEFTBRACKET:
		return Binding{Command: session.ScaleGlobalScaleCommand{Factor: globalScaleDown}}, true
	case sdl.SCANCODE_V:
		return Binding{Command: session.CycleVisualizationCommand{}}, true
	case sdl.SCANCODE_SPACE:
		return Binding{Action: ActionTogglePause}, true
	case sdl.SCANCODE_S:
		return Binding{Action: ActionSaveConfig}, true
	case sdl.SCANCODE_F12:
		return Binding{Action: ActionScreenshot}, true
	case sdl.SCANCODE_ESCAPE:
		return Binding{Action: ActionQuit}, true
	}
	return Binding{}, false
}
